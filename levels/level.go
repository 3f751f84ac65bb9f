package levels

import (
	"errors"
	"fmt"
)

// ActorPlacement is an actor the level spawns when it loads.
type ActorPlacement struct {
	Name   string
	Prefab string
	X, Y   int
	Facing string
}

// TriggerPlacement is a rectangle, in tiles, that cues a cutscene when the
// player walks into it.
type TriggerPlacement struct {
	ID       string
	Cutscene string
	X, Y     int
	W, H     int
	Once     bool
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("bad size %dx%d", l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("layer %d has %d cells, want %d", i, len(layer), l.Width*l.Height)
		}
	}
	if len(l.LayerMeta) > len(l.Layers) {
		return fmt.Errorf("%d layer_meta entries for %d layers", len(l.LayerMeta), len(l.Layers))
	}
	if _, _, ok := l.PlayerSpawn(); !ok {
		return errors.New("no player_spawn")
	}

	names := map[string]bool{}
	for _, a := range l.Actors() {
		if a.Name == "" || a.Prefab == "" {
			return fmt.Errorf("actor at %d,%d needs a name and a prefab", a.X, a.Y)
		}
		if names[a.Name] {
			return fmt.Errorf("duplicate actor %q", a.Name)
		}
		names[a.Name] = true
	}
	ids := map[string]bool{}
	for _, t := range l.Triggers() {
		if t.ID == "" || t.Cutscene == "" {
			return fmt.Errorf("trigger at %d,%d needs an id and a cutscene", t.X, t.Y)
		}
		if ids[t.ID] {
			return fmt.Errorf("duplicate trigger %q", t.ID)
		}
		ids[t.ID] = true
	}
	return nil
}

// Solid reports whether a tile blocks movement. Tiles outside the map are solid.
func (l *Level) Solid(tx, ty int) bool {
	if tx < 0 || ty < 0 || tx >= l.Width || ty >= l.Height {
		return true
	}
	idx := ty*l.Width + tx
	for i, layer := range l.Layers {
		if i < len(l.LayerMeta) && l.LayerMeta[i].Physics && layer[idx] != 0 {
			return true
		}
	}
	return false
}

func (l *Level) PlayerSpawn() (x, y int, ok bool) {
	for _, e := range l.Entities {
		if e.Type == EntityPlayerSpawn {
			return e.X, e.Y, true
		}
	}
	return 0, 0, false
}

func (l *Level) Actors() []ActorPlacement {
	var out []ActorPlacement
	for _, e := range l.Entities {
		if e.Type != EntityActor {
			continue
		}
		out = append(out, ActorPlacement{
			Name:   propString(e.Props, "name"),
			Prefab: propString(e.Props, "prefab"),
			X:      e.X,
			Y:      e.Y,
			Facing: propString(e.Props, "facing"),
		})
	}
	return out
}

func (l *Level) Triggers() []TriggerPlacement {
	var out []TriggerPlacement
	for _, e := range l.Entities {
		if e.Type != EntityTrigger {
			continue
		}
		out = append(out, TriggerPlacement{
			ID:       propString(e.Props, "id"),
			Cutscene: propString(e.Props, "cutscene"),
			X:        e.X,
			Y:        e.Y,
			W:        max(1, propInt(e.Props, "w")),
			H:        max(1, propInt(e.Props, "h")),
			Once:     propBool(e.Props, "once"),
		})
	}
	return out
}

func propString(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func propInt(props map[string]any, key string) int {
	switch v := props[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func propBool(props map[string]any, key string) bool {
	b, _ := props[key].(bool)
	return b
}
