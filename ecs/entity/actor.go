package entity

import (
	"github.com/milk9111/theater/common"
	"github.com/milk9111/theater/ecs"
	"github.com/milk9111/theater/ecs/component"
	"github.com/milk9111/theater/theater"
)

// Actor exposes an entity to cutscene commands. It is a plain value so two
// handles to the same entity compare equal.
type Actor struct {
	w *ecs.World
	e ecs.Entity
}

var _ theater.Actor = Actor{}

func NewActor(w *ecs.World, e ecs.Entity) Actor {
	return Actor{w: w, e: e}
}

func (a Actor) Entity() ecs.Entity { return a.e }
func (a Actor) Alive() bool        { return a.w.IsAlive(a.e) }

func (a Actor) Name() string {
	if n, ok := ecs.Get(a.w, a.e, component.NameComponent); ok {
		return n.Value
	}
	return ""
}

func (a Actor) Position() common.Vec {
	if t, ok := ecs.Get(a.w, a.e, component.TransformComponent); ok {
		return common.Vec{X: t.X, Y: t.Y}
	}
	return common.Vec{}
}

func (a Actor) SetPosition(p common.Vec) {
	t, ok := ecs.Get(a.w, a.e, component.TransformComponent)
	if !ok {
		return
	}
	t.X, t.Y = p.X, p.Y
}

func (a Actor) Velocity() common.Vec {
	if v, ok := ecs.Get(a.w, a.e, component.VelocityComponent); ok {
		return common.Vec{X: v.X, Y: v.Y}
	}
	return common.Vec{}
}

func (a Actor) SetVelocity(v common.Vec) {
	vel, ok := ecs.Get(a.w, a.e, component.VelocityComponent)
	if !ok {
		vel = &component.Velocity{}
		if err := ecs.Add(a.w, a.e, component.VelocityComponent, vel); err != nil {
			return
		}
	}
	vel.X, vel.Y = v.X, v.Y
}

func (a Actor) Size() common.Vec {
	if c, ok := ecs.Get(a.w, a.e, component.CollisionComponent); ok {
		return common.Vec{X: c.Width, Y: c.Height}
	}
	if s, ok := ecs.Get(a.w, a.e, component.SpriteComponent); ok {
		return common.Vec{X: s.Width, Y: s.Height}
	}
	return common.Vec{}
}

func (a Actor) Center() common.Vec {
	return a.Position().Add(a.Size().Scale(0.5))
}

func (a Actor) Facing() common.Facing {
	if f, ok := ecs.Get(a.w, a.e, component.FacingComponent); ok {
		return f.Dir
	}
	return common.FacingDown
}

func (a Actor) SetFacing(dir common.Facing) {
	f, ok := ecs.Get(a.w, a.e, component.FacingComponent)
	if !ok {
		f = &component.Facing{}
		if err := ecs.Add(a.w, a.e, component.FacingComponent, f); err != nil {
			return
		}
	}
	f.Dir = dir
}

func (a Actor) Collision() theater.CollisionFlags {
	c, ok := ecs.Get(a.w, a.e, component.CollisionComponent)
	if !ok {
		return theater.CollisionFlags{}
	}
	return theater.CollisionFlags{SolidVsStatic: c.SolidVsStatic, SolidVsDynamic: c.SolidVsDynamic}
}

func (a Actor) SetCollision(f theater.CollisionFlags) {
	c, ok := ecs.Get(a.w, a.e, component.CollisionComponent)
	if !ok {
		return
	}
	c.SolidVsStatic = f.SolidVsStatic
	c.SolidVsDynamic = f.SolidVsDynamic
}

// FindActor returns the live entity whose name component matches.
func FindActor(w *ecs.World, name string) (Actor, bool) {
	for _, e := range w.Query(component.NameComponent.Kind()) {
		n, ok := ecs.Get(w, e, component.NameComponent)
		if ok && n.Value == name {
			return NewActor(w, e), true
		}
	}
	return Actor{}, false
}
