package system

import (
	"github.com/milk9111/theater/ecs"
	"github.com/milk9111/theater/ecs/component"
)

// TriggerSystem raises a cue event when the player walks into a trigger
// rectangle. Nothing fires while busy reports true.
type TriggerSystem struct {
	busy func() bool
}

func NewTriggerSystem(busy func() bool) *TriggerSystem {
	return &TriggerSystem{busy: busy}
}

func (ts *TriggerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	box, ok := actorAABB(w, player)
	if !ok {
		return
	}
	busy := ts.busy != nil && ts.busy()

	ecs.ForEach2(w, component.TriggerComponent, component.TransformComponent,
		func(_ ecs.Entity, tr *component.Trigger, t *component.Transform) {
			inside := aabbIntersects(box, aabb{x: t.X, y: t.Y, w: tr.Width, h: tr.Height})
			entered := inside && !tr.Inside
			tr.Inside = inside
			if !tr.Armed {
				tr.Armed = true
				return
			}
			if !entered || busy || (tr.Once && tr.Fired) {
				return
			}
			tr.Fired = true
			w.Events().Push(ecs.Event{
				Type: ecs.EventCueCutscene,
				Data: ecs.CutsceneCue{Trigger: tr.ID, Cutscene: tr.Cutscene, Once: tr.Once},
			})
		})
}

type aabb struct {
	x, y, w, h float64
}

func aabbIntersects(a, b aabb) bool {
	return a.x < b.x+b.w &&
		a.x+a.w > b.x &&
		a.y < b.y+b.h &&
		a.y+a.h > b.y
}

func actorAABB(w *ecs.World, e ecs.Entity) (aabb, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return aabb{}, false
	}
	col, ok := ecs.Get(w, e, component.CollisionComponent)
	if !ok || col.Width <= 0 || col.Height <= 0 {
		return aabb{}, false
	}
	return aabb{x: t.X, y: t.Y, w: col.Width, h: col.Height}, true
}
