package theater

import "github.com/milk9111/theater/common"

// CollisionFlags are the solidity switches a Move may turn off while it runs.
type CollisionFlags struct {
	SolidVsStatic  bool
	SolidVsDynamic bool
}

// Focus is anything the camera can center on.
type Focus interface {
	Center() common.Vec
}

// Point is a fixed world position the camera can focus on.
type Point common.Vec

func (p Point) Center() common.Vec {
	return common.Vec(p)
}

// Actor is the slice of an entity that commands may read and write.
// Implementations must be comparable; the scheduler matches Move targets with ==.
type Actor interface {
	Focus
	Name() string
	Position() common.Vec
	SetPosition(p common.Vec)
	Velocity() common.Vec
	SetVelocity(v common.Vec)
	Size() common.Vec
	Facing() common.Facing
	SetFacing(f common.Facing)
	Collision() CollisionFlags
	SetCollision(f CollisionFlags)
}

// Camera exposes the view offset (world-space top-left), zoom and follow target.
type Camera interface {
	Position() common.Vec
	SetPosition(p common.Vec)
	// ViewSize is the visible area in world units at the current zoom.
	ViewSize() common.Vec
	Zoom() float64
	SetZoom(z float64)
	Focus() Focus
	// Follow makes the camera track f. A nil f detaches the camera.
	Follow(f Focus, smooth bool)
}

// Controls reports edge-triggered input for dialog-style commands.
type Controls interface {
	Confirm() bool
	Prev() bool
	Next() bool
}

// ActorSpec describes an actor a cutscene wants to put on the stage.
type ActorSpec struct {
	Name   string
	Prefab string
	Pos    common.Vec
	Facing common.Facing
}

// Stage is the game state that owns the actor list and the current map.
type Stage interface {
	Actor(name string) (Actor, bool)
	AddActor(spec ActorSpec) error
	RemoveActor(name string) bool
	MapName() string
	ChangeMap(name string) error
	// RefreshActors repopulates the current map's actors from its definition.
	RefreshActors() error
}

type Inventory interface {
	Give(item string, count int)
}
