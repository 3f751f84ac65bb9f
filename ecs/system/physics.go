package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/theater/ecs"
	"github.com/milk9111/theater/ecs/component"
)

const (
	collisionTypeActor cp.CollisionType = iota + 1
	collisionTypeSolid
)

const (
	categoryWall  uint = 1 << 0
	categoryActor uint = 1 << 1
)

// PhysicsSystem resolves actor velocities against the map's walls and each
// other. The world is top-down, so there is no gravity; transforms stay
// authoritative and are pushed into the space every frame, which lets
// commands teleport or snap actors without talking to the physics layer.
type PhysicsSystem struct {
	space *cp.Space
	// dt is the simulated milliseconds advanced per Update.
	dt float64

	entities     map[ecs.Entity]*bodyInfo
	wallShapes   []*cp.Shape
	wallsVersion int
	wallsEntity  ecs.Entity
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		dt:       dt,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.syncWalls(w)
	ps.syncEntities(w)

	ps.space.Step(1.0)

	ps.syncTransforms(w)
}

// syncWalls rebuilds the static shapes when the map's wall grid changes.
// Horizontal runs of solid tiles share one box.
func (ps *PhysicsSystem) syncWalls(w *ecs.World) {
	e, ok := w.First(component.WallsComponent.Kind())
	if !ok {
		ps.clearWalls()
		return
	}
	walls, _ := ecs.Get(w, e, component.WallsComponent)
	if e == ps.wallsEntity && walls.Version == ps.wallsVersion && ps.wallShapes != nil {
		return
	}
	ps.clearWalls()
	ps.wallsEntity = e
	ps.wallsVersion = walls.Version

	ts := walls.TileSize
	for ty := 0; ty < walls.Height; ty++ {
		for tx := 0; tx < walls.Width; {
			if !walls.At(tx, ty) {
				tx++
				continue
			}
			start := tx
			for tx < walls.Width && walls.At(tx, ty) {
				tx++
			}
			bb := cp.BB{L: float64(start) * ts, B: float64(ty) * ts, R: float64(tx) * ts, T: float64(ty+1) * ts}
			ps.addWall(cp.NewBox2(ps.space.StaticBody, bb, 0))
		}
	}

	worldW := float64(walls.Width) * ts
	worldH := float64(walls.Height) * ts
	segments := []struct{ a, b cp.Vector }{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}},
	}
	for _, seg := range segments {
		ps.addWall(cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 1))
	}
}

func (ps *PhysicsSystem) addWall(shape *cp.Shape) {
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.ShapeFilter{Categories: categoryWall, Mask: categoryWall | categoryActor})
	ps.space.AddShape(shape)
	ps.wallShapes = append(ps.wallShapes, shape)
}

func (ps *PhysicsSystem) clearWalls() {
	for _, shape := range ps.wallShapes {
		ps.space.RemoveShape(shape)
	}
	ps.wallShapes = nil
	ps.wallsEntity = 0
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach3(w, component.PhysicsBodyComponent, component.TransformComponent, component.CollisionComponent,
		func(e ecs.Entity, bodyComp *component.PhysicsBody, t *component.Transform, col *component.Collision) {
			info := ps.entities[e]
			if info == nil {
				info = ps.createBodyInfo(t, col)
				ps.entities[e] = info
				bodyComp.Body = info.body
				bodyComp.Shape = info.shape
			}
			info.shape.SetFilter(actorFilter(col))
			if info.static {
				return
			}

			info.body.SetPosition(cp.Vector{X: t.X + col.Width/2, Y: t.Y + col.Height/2})
			info.body.SetAngle(0)
			info.body.SetAngularVelocity(0)
			if vel, ok := ecs.Get(w, e, component.VelocityComponent); ok {
				info.body.SetVelocity(vel.X*ps.dt, vel.Y*ps.dt)
			} else {
				info.body.SetVelocity(0, 0)
			}
		})
}

func (ps *PhysicsSystem) createBodyInfo(t *component.Transform, col *component.Collision) *bodyInfo {
	if col.Static {
		bb := cp.BB{L: t.X, B: t.Y, R: t.X + col.Width, T: t.Y + col.Height}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: t.X + col.Width/2, Y: t.Y + col.Height/2})
	shape := cp.NewBox(body, col.Width, col.Height, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeActor)
	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

// actorFilter lets an actor pass through walls or other actors when the
// matching solidity flag is off.
func actorFilter(col *component.Collision) cp.ShapeFilter {
	var mask uint
	if col.SolidVsStatic {
		mask |= categoryWall
	}
	if col.SolidVsDynamic {
		mask |= categoryActor
	}
	category := categoryActor
	if col.Static {
		category = categoryWall
		mask = categoryWall | categoryActor
	}
	return cp.ShapeFilter{Categories: category, Mask: mask}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach3(w, component.PhysicsBodyComponent, component.TransformComponent, component.CollisionComponent,
		func(e ecs.Entity, _ *component.PhysicsBody, t *component.Transform, col *component.Collision) {
			info := ps.entities[e]
			if info == nil || info.static {
				return
			}
			pos := info.body.Position()
			t.X = pos.X - col.Width/2
			t.Y = pos.Y - col.Height/2
		})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent) {
			continue
		}
		ps.space.RemoveShape(info.shape)
		if !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}

// BodyCount reports how many actor bodies are in the space.
func (ps *PhysicsSystem) BodyCount() int {
	return len(ps.entities)
}

// WallShapeCount reports how many static wall shapes are in the space.
func (ps *PhysicsSystem) WallShapeCount() int {
	return len(ps.wallShapes)
}
