package component

// Input stores per-frame input state for an entity.
type Input struct {
	MoveX float64
	MoveY float64

	// Edge events, true only on the frame the key was released.
	Confirm bool
	Prev    bool
	Next    bool
}

var InputComponent = NewComponent[Input]()
