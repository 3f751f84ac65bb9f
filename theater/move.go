package theater

import "github.com/milk9111/theater/common"

// rerouteTolerance is how far the unit direction to the destination may
// drift before the move recomputes its velocity.
const rerouteTolerance = 1e-6

// Move walks an actor to a destination by setting its velocity each frame.
// The physics step does the actual integration.
type Move struct {
	Base

	actor     Actor
	dest      common.Vec
	duration  float64
	msPerUnit float64
	bySpeed   bool
	through   bool

	dir     common.Vec
	vel     common.Vec
	elapsed float64

	saved    CollisionFlags
	hasSaved bool
}

// NewMove moves a to dest over duration milliseconds. With through set the
// actor ignores collisions until the move ends.
func NewMove(a Actor, dest common.Vec, duration float64, through bool) *Move {
	if a == nil {
		panic("theater: move nil actor")
	}
	if duration < 0 {
		panic("theater: negative move duration")
	}
	return &Move{actor: a, dest: dest, duration: duration, through: through}
}

// NewMoveAtSpeed moves a to dest at msPerUnit milliseconds per world unit.
// Speed moves always pass through other bodies.
func NewMoveAtSpeed(a Actor, dest common.Vec, msPerUnit float64) *Move {
	if a == nil {
		panic("theater: move nil actor")
	}
	if msPerUnit < 0 {
		panic("theater: negative move speed")
	}
	return &Move{actor: a, dest: dest, msPerUnit: msPerUnit, bySpeed: true, through: true}
}

func (m *Move) Kind() Kind { return KindMove }

func (m *Move) Actor() Actor { return m.actor }

func (m *Move) Destination() common.Vec { return m.dest }

func (m *Move) Start(Inserter) {
	m.saved = m.actor.Collision()
	m.hasSaved = true

	toGo := m.dest.Sub(m.actor.Position())
	if m.bySpeed {
		m.duration = toGo.Len() * m.msPerUnit
	}
	m.aim(toGo)
	if m.through {
		m.actor.SetCollision(CollisionFlags{})
	}
}

func (m *Move) aim(toGo common.Vec) {
	m.dir = toGo.Norm()
	if m.duration > 0 {
		m.vel = toGo.Scale(1 / m.duration)
	} else {
		m.vel = common.Vec{}
	}
}

func (m *Move) Tick(in Inserter, dt float64) {
	m.elapsed += dt

	toGo := m.dest.Sub(m.actor.Position())
	if m.elapsed >= m.duration || toGo.Len() <= common.Epsilon {
		m.Complete(in)
		return
	}

	// Something pushed the actor off its line: head for the destination
	// again with whatever time is left.
	if !m.through && !toGo.Norm().NearlyEqual(m.dir, rerouteTolerance) {
		m.duration -= m.elapsed
		m.elapsed = 0
		m.aim(toGo)
	}
	m.actor.SetVelocity(m.vel)
}

func (m *Move) Complete(in Inserter) {
	if m.completed {
		return
	}
	if !m.hasSaved {
		m.saved = m.actor.Collision()
	}
	m.actor.SetPosition(m.dest)
	m.actor.SetVelocity(common.Vec{})
	m.actor.SetCollision(m.saved)
	m.Base.Complete(in)
}
