package system

import (
	"math"

	"github.com/milk9111/theater/common"
	"github.com/milk9111/theater/ecs"
	"github.com/milk9111/theater/ecs/component"
)

// PlayerControllerSystem turns input into player velocity while no cutscene
// owns the screen. When one does, the player stands still unless a scripted
// move is driving them.
type PlayerControllerSystem struct {
	busy       func() bool
	controlled func(ecs.Entity) bool
}

// NewPlayerControllerSystem gates input on busy. controlled reports whether a
// running command is moving the entity; either func may be nil.
func NewPlayerControllerSystem(busy func() bool, controlled func(ecs.Entity) bool) *PlayerControllerSystem {
	return &PlayerControllerSystem{busy: busy, controlled: controlled}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	busy := s.busy != nil && s.busy()

	ecs.ForEach3(w, component.PlayerComponent, component.InputComponent, component.VelocityComponent,
		func(e ecs.Entity, player *component.Player, input *component.Input, vel *component.Velocity) {
			if busy {
				if s.controlled == nil || !s.controlled(e) {
					vel.X, vel.Y = 0, 0
				}
				return
			}

			dir := common.Vec{X: input.MoveX, Y: input.MoveY}
			if dir.Len() > 1 {
				dir = dir.Norm()
			}
			vel.X = dir.X * player.MoveSpeed
			vel.Y = dir.Y * player.MoveSpeed

			facing, ok := ecs.Get(w, e, component.FacingComponent)
			if !ok || (dir.X == 0 && dir.Y == 0) {
				return
			}
			if math.Abs(dir.X) > math.Abs(dir.Y) {
				if dir.X < 0 {
					facing.Dir = common.FacingLeft
				} else {
					facing.Dir = common.FacingRight
				}
			} else if dir.Y < 0 {
				facing.Dir = common.FacingUp
			} else {
				facing.Dir = common.FacingDown
			}
		})
}
