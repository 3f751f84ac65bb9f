package game

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/milk9111/theater/common"
	"github.com/milk9111/theater/ecs"
	"github.com/milk9111/theater/ecs/component"
	"github.com/milk9111/theater/ecs/entity"
	"github.com/milk9111/theater/levels"
	"github.com/milk9111/theater/prefabs"
	"github.com/milk9111/theater/progress"
	"github.com/milk9111/theater/theater"
)

var defaultWallColor = color.RGBA{R: 0x55, G: 0x55, B: 0x66, A: 0xff}

// Stage is the actor list and current map, backed by the ECS world.
type Stage struct {
	w        *ecs.World
	tileSize float64
	store    *progress.Store
	logger   *log.Logger

	level        *levels.Level
	wallsVersion int
}

var _ theater.Stage = (*Stage)(nil)

// NewStage returns a stage with no map loaded. store may be nil.
func NewStage(w *ecs.World, tileSize float64, store *progress.Store, logger *log.Logger) *Stage {
	if logger == nil {
		logger = log.Default()
	}
	return &Stage{w: w, tileSize: tileSize, store: store, logger: logger}
}

func (s *Stage) Level() *levels.Level { return s.level }

func (s *Stage) Actor(name string) (theater.Actor, bool) {
	a, ok := entity.FindActor(s.w, name)
	if !ok {
		return nil, false
	}
	return a, true
}

func (s *Stage) AddActor(spec theater.ActorSpec) error {
	e, err := entity.BuildActor(s.w, spec.Prefab, spec.Name, spec.Pos, spec.Facing)
	if err != nil {
		return err
	}
	return ecs.Add(s.w, e, component.SpawnedTagComponent, &component.SpawnedTag{})
}

// RemoveActor destroys a named actor. The player stays on stage.
func (s *Stage) RemoveActor(name string) bool {
	a, ok := entity.FindActor(s.w, name)
	if !ok {
		return false
	}
	if ecs.Has(s.w, a.Entity(), component.PlayerTagComponent) {
		s.logger.Warn("refusing to remove the player", "name", name)
		return false
	}
	return ecs.DestroyEntity(s.w, a.Entity())
}

func (s *Stage) MapName() string {
	if s.level == nil {
		return ""
	}
	return s.level.Name
}

// ChangeMap swaps in the named level. Everything but the player and the
// camera is destroyed; the player keeps its position for the caller to set.
func (s *Stage) ChangeMap(name string) error {
	lvl, err := levels.Load(name)
	if err != nil {
		return err
	}

	for _, e := range s.w.Entities() {
		if ecs.Has(s.w, e, component.PlayerTagComponent) || ecs.Has(s.w, e, component.CameraTagComponent) {
			continue
		}
		ecs.DestroyEntity(s.w, e)
	}

	s.level = lvl
	if err := s.spawnWalls(); err != nil {
		return fmt.Errorf("change map %s: %w", name, err)
	}
	s.spawnTriggers()
	s.logger.Info("map loaded", "name", lvl.Name, "size", fmt.Sprintf("%dx%d", lvl.Width, lvl.Height))
	return s.spawnActors()
}

// RefreshActors puts the map's actors back where the level places them and
// drops any actor a cutscene spawned.
func (s *Stage) RefreshActors() error {
	if s.level == nil {
		return errors.New("refresh actors: no map loaded")
	}
	for _, e := range s.w.Query(component.NameComponent.Kind()) {
		if ecs.Has(s.w, e, component.PlayerTagComponent) {
			continue
		}
		ecs.DestroyEntity(s.w, e)
	}
	return s.spawnActors()
}

// PlayerSpawn is the level's spawn point in world units.
func (s *Stage) PlayerSpawn() common.Vec {
	if s.level == nil {
		return common.Vec{}
	}
	x, y, _ := s.level.PlayerSpawn()
	return s.tiles(x, y)
}

func (s *Stage) tiles(x, y int) common.Vec {
	return common.Vec{X: float64(x) * s.tileSize, Y: float64(y) * s.tileSize}
}

func (s *Stage) spawnWalls() error {
	lvl := s.level
	walls := &component.Walls{
		Width:    lvl.Width,
		Height:   lvl.Height,
		TileSize: s.tileSize,
		Solid:    make([]bool, lvl.Width*lvl.Height),
		Color:    defaultWallColor,
	}
	for ty := 0; ty < lvl.Height; ty++ {
		for tx := 0; tx < lvl.Width; tx++ {
			walls.Solid[ty*lvl.Width+tx] = lvl.Solid(tx, ty)
		}
	}
	for _, meta := range lvl.LayerMeta {
		if !meta.Physics || meta.Color == "" {
			continue
		}
		c, err := prefabs.ParseColor(meta.Color)
		if err != nil {
			return err
		}
		walls.Color = color.RGBAModel.Convert(c).(color.RGBA)
		break
	}
	s.wallsVersion++
	walls.Version = s.wallsVersion

	e := ecs.CreateEntity(s.w)
	if err := ecs.Add(s.w, e, component.WallTagComponent, &component.WallTag{}); err != nil {
		return err
	}
	return ecs.Add(s.w, e, component.WallsComponent, walls)
}

func (s *Stage) spawnTriggers() {
	fired := map[string]bool{}
	if s.store != nil {
		var err error
		if fired, err = s.store.FiredTriggers(s.level.Name); err != nil {
			s.logger.Error("load fired triggers", "map", s.level.Name, "err", err)
			fired = map[string]bool{}
		}
	}
	for _, tp := range s.level.Triggers() {
		e := ecs.CreateEntity(s.w)
		pos := s.tiles(tp.X, tp.Y)
		_ = ecs.Add(s.w, e, component.TransformComponent, &component.Transform{X: pos.X, Y: pos.Y})
		_ = ecs.Add(s.w, e, component.TriggerComponent, &component.Trigger{
			ID:       tp.ID,
			Cutscene: tp.Cutscene,
			Once:     tp.Once,
			Width:    float64(tp.W) * s.tileSize,
			Height:   float64(tp.H) * s.tileSize,
			Fired:    tp.Once && fired[tp.ID],
		})
	}
}

func (s *Stage) spawnActors() error {
	var errs []error
	for _, a := range s.level.Actors() {
		facing, err := common.ParseFacing(a.Facing)
		if err != nil {
			errs = append(errs, fmt.Errorf("actor %s: %w", a.Name, err))
			continue
		}
		if _, err := entity.BuildActor(s.w, a.Prefab, a.Name, s.tiles(a.X, a.Y), facing); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
