package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/theater/ecs"
	"github.com/milk9111/theater/ecs/component"
)

// InputSystem copies this frame's keyboard and gamepad state onto every
// entity with an input component. Dialog keys are edge triggered on release.
type InputSystem struct {
	read func() component.Input
}

func NewInputSystem() *InputSystem {
	return &InputSystem{read: readDevices}
}

// NewInputSystemFrom reads input from fn instead of the devices.
func NewInputSystemFrom(fn func() component.Input) *InputSystem {
	return &InputSystem{read: fn}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.read == nil {
		return
	}
	state := i.read()
	ecs.ForEach(w, component.InputComponent, func(_ ecs.Entity, input *component.Input) {
		*input = state
	})
}

func readDevices() component.Input {
	const stickDeadzone = 0.2

	var in component.Input
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY += 1
	}

	in.Confirm = inpututil.IsKeyJustReleased(ebiten.KeySpace) ||
		inpututil.IsKeyJustReleased(ebiten.KeyEnter) ||
		inpututil.IsKeyJustReleased(ebiten.KeyZ)
	in.Prev = inpututil.IsKeyJustReleased(ebiten.KeyW) || inpututil.IsKeyJustReleased(ebiten.KeyArrowUp)
	in.Next = inpututil.IsKeyJustReleased(ebiten.KeyS) || inpututil.IsKeyJustReleased(ebiten.KeyArrowDown)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			in.MoveX, in.MoveY = lx, ly
		}
		in.Confirm = in.Confirm || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonRightBottom)
		in.Prev = in.Prev || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonLeftTop)
		in.Next = in.Next || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonLeftBottom)
	}
	return in
}
