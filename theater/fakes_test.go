package theater

import (
	"fmt"

	"github.com/milk9111/theater/common"
)

type fakeActor struct {
	name      string
	pos, vel  common.Vec
	size      common.Vec
	facing    common.Facing
	collision CollisionFlags
}

func newFakeActor(name string, x, y float64) *fakeActor {
	return &fakeActor{
		name:      name,
		pos:       common.Vec{X: x, Y: y},
		size:      common.Vec{X: 16, Y: 16},
		collision: CollisionFlags{SolidVsStatic: true, SolidVsDynamic: true},
	}
}

func (a *fakeActor) Name() string                  { return a.name }
func (a *fakeActor) Center() common.Vec            { return a.pos.Add(a.size.Scale(0.5)) }
func (a *fakeActor) Position() common.Vec          { return a.pos }
func (a *fakeActor) SetPosition(p common.Vec)      { a.pos = p }
func (a *fakeActor) Velocity() common.Vec          { return a.vel }
func (a *fakeActor) SetVelocity(v common.Vec)      { a.vel = v }
func (a *fakeActor) Size() common.Vec              { return a.size }
func (a *fakeActor) Facing() common.Facing         { return a.facing }
func (a *fakeActor) SetFacing(f common.Facing)     { a.facing = f }
func (a *fakeActor) Collision() CollisionFlags     { return a.collision }
func (a *fakeActor) SetCollision(f CollisionFlags) { a.collision = f }

// integrate stands in for the physics step.
func (a *fakeActor) integrate(dt float64) {
	a.pos = a.pos.Add(a.vel.Scale(dt))
}

type fakeCamera struct {
	pos    common.Vec
	view   common.Vec
	zoom   float64
	focus  Focus
	smooth bool
	calls  []Focus
}

func newFakeCamera() *fakeCamera {
	return &fakeCamera{view: common.Vec{X: 320, Y: 180}, zoom: 1}
}

func (c *fakeCamera) Position() common.Vec     { return c.pos }
func (c *fakeCamera) SetPosition(p common.Vec) { c.pos = p }
func (c *fakeCamera) ViewSize() common.Vec     { return c.view.Scale(1 / c.zoom) }
func (c *fakeCamera) Zoom() float64            { return c.zoom }
func (c *fakeCamera) SetZoom(z float64)        { c.zoom = z }
func (c *fakeCamera) Focus() Focus             { return c.focus }

func (c *fakeCamera) Follow(f Focus, smooth bool) {
	c.focus = f
	c.smooth = smooth
	c.calls = append(c.calls, f)
}

// fakeControls holds this frame's edges. Tests set them before a tick and
// release them after.
type fakeControls struct {
	confirm, prev, next bool
}

func (c *fakeControls) Confirm() bool { return c.confirm }
func (c *fakeControls) Prev() bool    { return c.prev }
func (c *fakeControls) Next() bool    { return c.next }

func (c *fakeControls) release() {
	*c = fakeControls{}
}

type fakeStage struct {
	mapName string
	actors  map[string]*fakeActor
	added   []ActorSpec
	maps    []string
	fail    error
}

func newFakeStage(actors ...*fakeActor) *fakeStage {
	s := &fakeStage{mapName: "town", actors: map[string]*fakeActor{}}
	for _, a := range actors {
		s.actors[a.name] = a
	}
	return s
}

func (s *fakeStage) Actor(name string) (Actor, bool) {
	a, ok := s.actors[name]
	if !ok {
		return nil, false
	}
	return a, true
}

func (s *fakeStage) AddActor(spec ActorSpec) error {
	if s.fail != nil {
		return s.fail
	}
	s.added = append(s.added, spec)
	s.actors[spec.Name] = newFakeActor(spec.Name, spec.Pos.X, spec.Pos.Y)
	return nil
}

func (s *fakeStage) RemoveActor(name string) bool {
	if _, ok := s.actors[name]; !ok {
		return false
	}
	delete(s.actors, name)
	return true
}

func (s *fakeStage) MapName() string { return s.mapName }

func (s *fakeStage) ChangeMap(name string) error {
	if s.fail != nil {
		return s.fail
	}
	s.mapName = name
	s.maps = append(s.maps, name)
	return nil
}

func (s *fakeStage) RefreshActors() error { return nil }

type fakeInventory map[string]int

func (f fakeInventory) Give(item string, count int) { f[item] += count }

// tracer records its lifecycle into a shared log.
type tracer struct {
	Base

	name   string
	ticks  int
	limit  int
	log    *[]string
	onTick func(in Inserter, n int)
}

func newTracer(name string, limit int, log *[]string) *tracer {
	return &tracer{name: name, limit: limit, log: log}
}

func (tr *tracer) Kind() Kind { return KindWait }

func (tr *tracer) Start(in Inserter) {
	*tr.log = append(*tr.log, tr.name+":start")
	if tr.limit == 0 {
		tr.Complete(in)
	}
}

func (tr *tracer) Tick(in Inserter, _ float64) {
	tr.ticks++
	*tr.log = append(*tr.log, fmt.Sprintf("%s:tick%d", tr.name, tr.ticks))
	if tr.onTick != nil {
		tr.onTick(in, tr.ticks)
	}
	if tr.ticks >= tr.limit {
		tr.Complete(in)
	}
}

func (tr *tracer) Complete(in Inserter) {
	*tr.log = append(*tr.log, tr.name+":complete")
	tr.Base.Complete(in)
}
