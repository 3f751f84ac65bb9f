package component

// Collision mirrors the two solidity flags scripted moves may switch off.
type Collision struct {
	Width          float64
	Height         float64
	SolidVsStatic  bool
	SolidVsDynamic bool
	Static         bool
}

var CollisionComponent = NewComponent[Collision]()
