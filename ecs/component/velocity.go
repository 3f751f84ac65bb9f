package component

// Velocity is expressed in world units per simulated millisecond.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()
