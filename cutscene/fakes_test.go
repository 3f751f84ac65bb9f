package cutscene

import (
	"github.com/milk9111/theater/common"
	"github.com/milk9111/theater/theater"
)

type fakeActor struct {
	name      string
	pos, vel  common.Vec
	facing    common.Facing
	collision theater.CollisionFlags
}

func (a *fakeActor) Name() string                          { return a.name }
func (a *fakeActor) Center() common.Vec                    { return a.pos.Add(common.Vec{X: 8, Y: 8}) }
func (a *fakeActor) Position() common.Vec                  { return a.pos }
func (a *fakeActor) SetPosition(p common.Vec)              { a.pos = p }
func (a *fakeActor) Velocity() common.Vec                  { return a.vel }
func (a *fakeActor) SetVelocity(v common.Vec)              { a.vel = v }
func (a *fakeActor) Size() common.Vec                      { return common.Vec{X: 16, Y: 16} }
func (a *fakeActor) Facing() common.Facing                 { return a.facing }
func (a *fakeActor) SetFacing(f common.Facing)             { a.facing = f }
func (a *fakeActor) Collision() theater.CollisionFlags     { return a.collision }
func (a *fakeActor) SetCollision(f theater.CollisionFlags) { a.collision = f }

type fakeStage struct {
	mapName   string
	actors    map[string]*fakeActor
	refreshes int
}

func newFakeStage() *fakeStage {
	return &fakeStage{
		mapName: "town",
		actors: map[string]*fakeActor{
			PlayerName: {name: PlayerName, pos: common.Vec{X: 32, Y: 32}},
		},
	}
}

func (s *fakeStage) Actor(name string) (theater.Actor, bool) {
	a, ok := s.actors[name]
	if !ok {
		return nil, false
	}
	return a, true
}

func (s *fakeStage) AddActor(spec theater.ActorSpec) error {
	s.actors[spec.Name] = &fakeActor{name: spec.Name, pos: spec.Pos, facing: spec.Facing}
	return nil
}

func (s *fakeStage) RemoveActor(name string) bool {
	_, ok := s.actors[name]
	delete(s.actors, name)
	return ok
}

func (s *fakeStage) MapName() string { return s.mapName }

func (s *fakeStage) ChangeMap(name string) error {
	s.mapName = name
	return nil
}

func (s *fakeStage) RefreshActors() error {
	s.refreshes++
	return nil
}

func (s *fakeStage) integrate(dt float64) {
	for _, a := range s.actors {
		a.pos = a.pos.Add(a.vel.Scale(dt))
	}
}

type fakeCamera struct {
	pos   common.Vec
	zoom  float64
	focus theater.Focus
}

func (c *fakeCamera) Position() common.Vec           { return c.pos }
func (c *fakeCamera) SetPosition(p common.Vec)       { c.pos = p }
func (c *fakeCamera) ViewSize() common.Vec           { return common.Vec{X: 320 / c.zoom, Y: 180 / c.zoom} }
func (c *fakeCamera) Zoom() float64                  { return c.zoom }
func (c *fakeCamera) SetZoom(z float64)              { c.zoom = z }
func (c *fakeCamera) Focus() theater.Focus           { return c.focus }
func (c *fakeCamera) Follow(f theater.Focus, _ bool) { c.focus = f }

// autoControls confirms every frame.
type autoControls struct{ confirm bool }

func (c *autoControls) Confirm() bool { return c.confirm }
func (c *autoControls) Prev() bool    { return false }
func (c *autoControls) Next() bool    { return false }

type fakeInventory map[string]int

func (f fakeInventory) Give(item string, count int) { f[item] += count }

type harness struct {
	sched    *theater.Scheduler
	stage    *fakeStage
	camera   *fakeCamera
	controls *autoControls
	inv      fakeInventory
	director *Director
}

func newHarness() *harness {
	h := &harness{
		sched:    theater.NewScheduler(nil),
		stage:    newFakeStage(),
		camera:   &fakeCamera{zoom: 1},
		controls: &autoControls{},
		inv:      fakeInventory{},
	}
	h.director = NewDirector(DefaultConfig(), Env{
		Scheduler: h.sched,
		Stage:     h.stage,
		Camera:    h.camera,
		Controls:  h.controls,
		Inventory: h.inv,
	}, NewRegistry(), nil)
	return h
}

// frame runs one simulation step in game order.
func (h *harness) frame(dt float64) {
	h.director.Tick(dt)
	h.sched.Tick(dt)
	h.stage.integrate(dt)
}

// scriptFuncs adapts two closures to Script.
type scriptFuncs struct {
	start  func(d *Director) error
	update func(d *Director, dt float64) error
}

func (s scriptFuncs) Start(d *Director) error {
	if s.start == nil {
		return nil
	}
	return s.start(d)
}

func (s scriptFuncs) Update(d *Director, dt float64) error {
	if s.update == nil {
		return nil
	}
	return s.update(d, dt)
}

func register(r *Registry, name string, s Script) {
	if err := r.Register(name, func() (Script, error) { return s, nil }); err != nil {
		panic(err)
	}
}
