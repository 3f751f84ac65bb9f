package component

// Camera holds the world-space top-left of the view and what it follows.
//
// Target and HasPoint are mutually exclusive; when neither is set the camera
// stays wherever commands last put it. TargetName is resolved to Target by
// the camera system once an entity with that name exists.
type Camera struct {
	X          float64
	Y          float64
	Zoom       float64
	ViewW      float64
	ViewH      float64
	TargetName string
	Target     uint64
	HasPoint   bool
	PointX     float64
	PointY     float64
	Smooth     bool
	Smoothness float64
}

var CameraComponent = NewComponent[Camera]()
