package theater

import (
	"errors"
	"testing"

	"github.com/milk9111/theater/common"
)

func TestAddEntity(t *testing.T) {
	tests := []struct {
		name      string
		existing  []*fakeActor
		fail      error
		wantAdded int
	}{
		{name: "adds", wantAdded: 1},
		{name: "duplicate name", existing: []*fakeActor{newFakeActor("guard", 0, 0)}, wantAdded: 0},
		{name: "stage error", fail: errors.New("no prefab"), wantAdded: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage := newFakeStage(tt.existing...)
			stage.fail = tt.fail
			c := NewAddEntity(stage, ActorSpec{Name: "guard", Prefab: "npc", Pos: pt(4, 5)}, nil)
			s := NewScheduler(nil)
			s.Submit(c)
			s.Tick(16)

			if !c.Completed() {
				t.Fatalf("add entity did not complete")
			}
			if len(stage.added) != tt.wantAdded {
				t.Fatalf("added %d actors, want %d", len(stage.added), tt.wantAdded)
			}
		})
	}
}

func TestRemoveEntity(t *testing.T) {
	stage := newFakeStage(newFakeActor("guard", 0, 0))
	s := NewScheduler(nil)
	first := NewRemoveEntity(stage, "guard", nil)
	second := NewRemoveEntity(stage, "guard", nil)
	s.SubmitGroup([]Command{first, second}, true)
	s.Tick(16)
	s.Tick(16)

	if !first.Completed() || !second.Completed() {
		t.Fatalf("remove commands should always complete")
	}
	if _, ok := stage.Actor("guard"); ok {
		t.Fatalf("guard still on stage")
	}
}

func TestTurn(t *testing.T) {
	hero := newFakeActor("hero", 0, 0)
	c := NewTurn(hero, common.FacingLeft)
	s := NewScheduler(nil)
	s.Submit(c)
	s.Tick(16)
	if !c.Completed() || hero.facing != common.FacingLeft {
		t.Fatalf("turn: completed=%v facing=%v", c.Completed(), hero.facing)
	}
}

func TestWait(t *testing.T) {
	w := NewWait(250)
	s := NewScheduler(nil)
	s.Submit(w)
	s.Tick(100)
	s.Tick(100)
	if w.Completed() {
		t.Fatalf("wait finished early")
	}
	s.Tick(100)
	if !w.Completed() {
		t.Fatalf("wait not finished after 300ms")
	}
}

func TestTeleportBehindFade(t *testing.T) {
	hero := newFakeActor("hero", 1, 1)
	hero.vel = pt(3, 3)
	stage := newFakeStage(hero)
	tp := NewTeleport(stage, hero, "cave", pt(50, 60), FadeTiming{Out: 100, Hold: 100, In: 100}, nil)
	s := NewScheduler(nil)
	s.Submit(tp)

	s.Tick(50)
	if stage.mapName != "town" || hero.pos != pt(1, 1) {
		t.Fatalf("teleported before the screen was covered")
	}
	s.Tick(50)
	if stage.mapName != "cave" || hero.pos != pt(50, 60) || hero.vel != (common.Vec{}) {
		t.Fatalf("teleport not applied when covered: map=%s pos=%v vel=%v", stage.mapName, hero.pos, hero.vel)
	}
	for range 3 {
		s.Tick(50)
	}
	if tp.Completed() {
		t.Fatalf("teleport finished before the fade")
	}
	s.Tick(50)
	if !tp.Completed() {
		t.Fatalf("teleport not finished with the fade")
	}
	if len(stage.maps) != 1 {
		t.Fatalf("map changed %d times", len(stage.maps))
	}
}

func TestInstantTeleportSameMap(t *testing.T) {
	hero := newFakeActor("hero", 1, 1)
	stage := newFakeStage(hero)
	tp := NewInstantTeleport(stage, hero, "town", pt(9, 9), nil)
	s := NewScheduler(nil)
	s.Submit(tp)
	s.Tick(16)

	if !tp.Completed() || hero.pos != pt(9, 9) {
		t.Fatalf("instant teleport: completed=%v pos=%v", tp.Completed(), hero.pos)
	}
	if len(stage.maps) != 0 {
		t.Fatalf("same-map teleport reloaded the map")
	}
}

func TestInstantCommandsFinishInOneFrame(t *testing.T) {
	hero := newFakeActor("hero", 0, 0)
	stage := newFakeStage(hero, newFakeActor("extra", 9, 9))
	cam := newFakeCamera()
	cmds := []Command{
		NewFocusCamera(cam, hero, false),
		NewTurn(hero, common.FacingUp),
		NewAddEntity(stage, ActorSpec{Name: "guard", Prefab: "npc"}, nil),
		NewRemoveEntity(stage, "extra", nil),
	}
	s := NewScheduler(nil)
	s.SubmitGroup(cmds, false)
	s.Tick(16)

	for _, c := range cmds {
		if !c.Completed() {
			t.Fatalf("%v did not finish on its first frame", c.Kind())
		}
	}
	if s.Pending() != 0 {
		t.Fatalf("group left running")
	}
	if hero.facing != common.FacingUp || cam.focus != Focus(hero) {
		t.Fatalf("facing=%v focus=%v", hero.facing, cam.focus)
	}
	if _, ok := stage.Actor("guard"); !ok {
		t.Fatalf("guard not added")
	}
	if _, ok := stage.Actor("extra"); ok {
		t.Fatalf("extra not removed")
	}
}
