package theater

import (
	"math"
	"testing"

	"github.com/milk9111/theater/common"
)

func pt(x, y float64) common.Vec {
	return common.Vec{X: x, Y: y}
}

// run ticks the scheduler and then integrates actors the way the physics
// system does after it.
func run(s *Scheduler, frames int, dt float64, actors ...*fakeActor) {
	for range frames {
		s.Tick(dt)
		for _, a := range actors {
			a.integrate(dt)
		}
	}
}

func TestMoveArrivesOnDeadline(t *testing.T) {
	hero := newFakeActor("hero", 0, 0)
	m := NewMove(hero, pt(10, 0), 1000, false)
	s := NewScheduler(nil)
	s.Submit(m)

	run(s, 9, 100, hero)
	if m.Completed() {
		t.Fatalf("move finished before its duration")
	}
	if hero.pos.X <= 0 || hero.pos.X >= 10 {
		t.Fatalf("hero at %v mid-move", hero.pos)
	}

	run(s, 1, 100, hero)
	if !m.Completed() {
		t.Fatalf("move not complete at its deadline")
	}
	if hero.pos != pt(10, 0) || hero.vel != (common.Vec{}) {
		t.Fatalf("hero at %v vel %v, want snapped and stopped", hero.pos, hero.vel)
	}
}

func TestMoveZeroDurationCompletesFirstTick(t *testing.T) {
	hero := newFakeActor("hero", 3, 4)
	m := NewMove(hero, pt(0, 0), 0, false)
	s := NewScheduler(nil)
	s.Submit(m)
	s.Tick(16)
	if !m.Completed() || hero.pos != pt(0, 0) {
		t.Fatalf("zero-duration move: completed=%v pos=%v", m.Completed(), hero.pos)
	}
}

func TestMoveCompletesWithinEpsilon(t *testing.T) {
	hero := newFakeActor("hero", 9.99, 0)
	m := NewMove(hero, pt(10, 0), 10000, false)
	s := NewScheduler(nil)
	s.Submit(m)
	s.Tick(16)
	if !m.Completed() {
		t.Fatalf("move within epsilon of destination should finish")
	}
}

func TestMoveReroutesAfterBeingPushed(t *testing.T) {
	hero := newFakeActor("hero", 0, 0)
	m := NewMove(hero, pt(100, 0), 1000, false)
	s := NewScheduler(nil)
	s.Submit(m)

	run(s, 2, 100, hero)
	// something shoves the hero sideways
	hero.pos.Y = 20
	s.Tick(100)

	toGo := pt(100, 0).Sub(hero.pos)
	want := toGo.Scale(1.0 / (1000 - 300))
	if math.Abs(hero.vel.X-want.X) > 1e-9 || math.Abs(hero.vel.Y-want.Y) > 1e-9 {
		t.Fatalf("velocity after reroute = %v, want %v", hero.vel, want)
	}

	run(s, 7, 100, hero)
	if !m.Completed() || hero.pos != pt(100, 0) {
		t.Fatalf("rerouted move: completed=%v pos=%v", m.Completed(), hero.pos)
	}
}

func TestMoveThroughRestoresCollision(t *testing.T) {
	hero := newFakeActor("hero", 0, 0)
	hero.collision = CollisionFlags{SolidVsStatic: true, SolidVsDynamic: false}
	m := NewMove(hero, pt(5, 5), 200, true)
	s := NewScheduler(nil)
	s.Submit(m)

	s.Tick(100)
	if hero.collision != (CollisionFlags{}) {
		t.Fatalf("collision not disabled during move: %+v", hero.collision)
	}
	run(s, 2, 100, hero)
	if !m.Completed() {
		t.Fatalf("move not complete")
	}
	if hero.collision != (CollisionFlags{SolidVsStatic: true}) {
		t.Fatalf("collision = %+v, want original flags", hero.collision)
	}
}

func TestMoveAtSpeedDuration(t *testing.T) {
	hero := newFakeActor("hero", 0, 0)
	m := NewMoveAtSpeed(hero, pt(30, 40), 10)
	s := NewScheduler(nil)
	s.Submit(m)

	run(s, 49, 10, hero)
	if m.Completed() {
		t.Fatalf("speed move finished before 500ms")
	}
	run(s, 1, 10, hero)
	if !m.Completed() {
		t.Fatalf("speed move not finished at 500ms")
	}
}

func TestMoveForcedBeforeStartKeepsCollision(t *testing.T) {
	hero := newFakeActor("hero", 0, 0)
	m := NewMove(hero, pt(5, 0), 100, true)
	g := NewGroup(m)
	g.ForceComplete()
	if hero.collision != (CollisionFlags{SolidVsStatic: true, SolidVsDynamic: true}) {
		t.Fatalf("collision = %+v after forced completion", hero.collision)
	}
	if hero.pos != pt(5, 0) {
		t.Fatalf("forced move did not snap: %v", hero.pos)
	}
}
