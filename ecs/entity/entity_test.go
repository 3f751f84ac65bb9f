package entity

import (
	"errors"
	"testing"

	"github.com/milk9111/theater/common"
	"github.com/milk9111/theater/ecs"
	"github.com/milk9111/theater/ecs/component"
	"github.com/milk9111/theater/theater"
)

func TestBuildActorFromPrefab(t *testing.T) {
	tests := []struct {
		prefab     string
		wantPlayer bool
		wantInv    bool
	}{
		{prefab: "player", wantPlayer: true, wantInv: true},
		{prefab: "npc.yaml"},
		{prefab: "guard"},
	}
	for _, tt := range tests {
		t.Run(tt.prefab, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := BuildActor(w, tt.prefab, "someone", common.Vec{X: 32, Y: 48}, common.FacingLeft)
			if err != nil {
				t.Fatalf("BuildActor: %v", err)
			}
			a := NewActor(w, e)
			if a.Name() != "someone" {
				t.Fatalf("Name = %q", a.Name())
			}
			if a.Position() != (common.Vec{X: 32, Y: 48}) {
				t.Fatalf("Position = %+v", a.Position())
			}
			if a.Facing() != common.FacingLeft {
				t.Fatalf("Facing = %v", a.Facing())
			}
			if a.Size() != (common.Vec{X: 14, Y: 14}) {
				t.Fatalf("Size = %+v", a.Size())
			}
			if !ecs.Has(w, e, component.PhysicsBodyComponent) {
				t.Fatalf("collision prefabs need a physics body")
			}
			if got := ecs.Has(w, e, component.PlayerTagComponent); got != tt.wantPlayer {
				t.Fatalf("player tag = %v", got)
			}
			if got := ecs.Has(w, e, component.InventoryComponent); got != tt.wantInv {
				t.Fatalf("inventory = %v", got)
			}
		})
	}
}

func TestBuildActorRejectsDuplicateNames(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := BuildActor(w, "npc", "baker", common.Vec{}, common.FacingDown); err != nil {
		t.Fatalf("BuildActor: %v", err)
	}
	_, err := BuildActor(w, "npc", "baker", common.Vec{}, common.FacingDown)
	if !errors.Is(err, component.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if _, err := BuildActor(w, "no_such_prefab", "x", common.Vec{}, common.FacingDown); err == nil {
		t.Fatalf("expected an error for a missing prefab")
	}
	if n := len(w.Query(component.NameComponent.Kind())); n != 1 {
		t.Fatalf("failed builds must not leave entities behind, have %d named", n)
	}
}

func TestActorHandlesCompareEqual(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildActor(w, "npc", "baker", common.Vec{}, common.FacingDown)
	if err != nil {
		t.Fatal(err)
	}
	found, ok := FindActor(w, "baker")
	if !ok {
		t.Fatalf("FindActor failed")
	}
	var a, b theater.Actor = NewActor(w, e), found
	if a != b {
		t.Fatalf("two handles to one entity must be ==")
	}

	a.SetVelocity(common.Vec{X: 0.1})
	a.SetCollision(theater.CollisionFlags{})
	if found.Velocity() != (common.Vec{X: 0.1}) || found.Collision() != (theater.CollisionFlags{}) {
		t.Fatalf("writes through one handle must be visible through the other")
	}
	if c := found.Center(); c != (common.Vec{X: 7, Y: 7}) {
		t.Fatalf("Center = %+v", c)
	}
}

func TestCameraFollowAndView(t *testing.T) {
	w := ecs.NewWorld()
	camEnt, err := NewCamera(w, 320, 180)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	cam := NewCameraView(w, camEnt)
	if cam.ViewSize() != (common.Vec{X: 320, Y: 180}) {
		t.Fatalf("ViewSize = %+v", cam.ViewSize())
	}
	cam.SetZoom(2)
	if cam.ViewSize() != (common.Vec{X: 160, Y: 90}) {
		t.Fatalf("ViewSize at 2x = %+v", cam.ViewSize())
	}
	cam.SetZoom(0)
	if cam.Zoom() != 2 {
		t.Fatalf("non-positive zoom must be ignored")
	}

	e, _ := BuildActor(w, "npc", "baker", common.Vec{}, common.FacingDown)
	cam.Follow(NewActor(w, e), true)
	if f, ok := cam.Focus().(Actor); !ok || f.Entity() != e {
		t.Fatalf("Focus = %#v", cam.Focus())
	}

	cam.Follow(theater.Point{X: 5, Y: 6}, false)
	if p, ok := cam.Focus().(theater.Point); !ok || p != (theater.Point{X: 5, Y: 6}) {
		t.Fatalf("Focus = %#v", cam.Focus())
	}

	cam.Follow(nil, false)
	if cam.Focus() != nil {
		t.Fatalf("nil follow should detach")
	}
}

func TestInventoryGive(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := BuildActor(w, "player", "player", common.Vec{}, common.FacingDown); err != nil {
		t.Fatal(err)
	}
	inv := NewInventory(w)
	inv.Give("apple", 2)
	inv.Give("apple", 3)
	inv.Give("coin", 0)
	if inv.Count("apple") != 5 || inv.Count("coin") != 0 {
		t.Fatalf("apple=%d coin=%d", inv.Count("apple"), inv.Count("coin"))
	}
}

func TestControlsReadPlayerInput(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildActor(w, "player", "player", common.Vec{}, common.FacingDown)
	if err != nil {
		t.Fatal(err)
	}
	c := NewControls(w)
	if c.Confirm() {
		t.Fatalf("no input yet")
	}
	in, _ := ecs.Get(w, e, component.InputComponent)
	in.Confirm = true
	in.Next = true
	if !c.Confirm() || !c.Next() || c.Prev() {
		t.Fatalf("controls did not mirror input")
	}
}
