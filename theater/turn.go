package theater

import "github.com/milk9111/theater/common"

// Turn sets an actor's facing and finishes immediately.
type Turn struct {
	Base

	actor  Actor
	facing common.Facing
}

func NewTurn(a Actor, f common.Facing) *Turn {
	if a == nil {
		panic("theater: turn nil actor")
	}
	return &Turn{actor: a, facing: f}
}

func (t *Turn) Kind() Kind { return KindTurn }

func (t *Turn) Start(in Inserter) {
	t.actor.SetFacing(t.facing)
	t.Complete(in)
}
