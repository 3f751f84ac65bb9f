package component

// Transform is an actor's top-left position in world units.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()
