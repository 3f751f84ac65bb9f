package component

type Player struct {
	// MoveSpeed is in world units per millisecond.
	MoveSpeed float64
}

var PlayerComponent = NewComponent[Player]()
