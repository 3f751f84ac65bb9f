package entity

import (
	"fmt"

	"github.com/milk9111/theater/common"
	"github.com/milk9111/theater/ecs"
	"github.com/milk9111/theater/ecs/component"
	"github.com/milk9111/theater/theater"
)

// NewCamera builds the camera entity from camera.yaml with a view of
// viewW x viewH screen pixels. The camera system resolves target_name once an
// entity with that name exists.
func NewCamera(w *ecs.World, viewW, viewH float64) (ecs.Entity, error) {
	camera, err := BuildEntity(w, "camera.yaml")
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	cam, ok := ecs.Get(w, camera, component.CameraComponent)
	if !ok {
		ecs.DestroyEntity(w, camera)
		return 0, fmt.Errorf("camera: camera.yaml has no camera component")
	}
	cam.ViewW = viewW
	cam.ViewH = viewH
	return camera, nil
}

// Camera adapts the camera entity to theater.Camera.
type Camera struct {
	w *ecs.World
	e ecs.Entity
}

var _ theater.Camera = Camera{}

func NewCameraView(w *ecs.World, e ecs.Entity) Camera {
	return Camera{w: w, e: e}
}

func (c Camera) comp() *component.Camera {
	cam, ok := ecs.Get(c.w, c.e, component.CameraComponent)
	if !ok {
		return &component.Camera{Zoom: 1}
	}
	return cam
}

func (c Camera) Position() common.Vec {
	cam := c.comp()
	return common.Vec{X: cam.X, Y: cam.Y}
}

func (c Camera) SetPosition(p common.Vec) {
	cam := c.comp()
	cam.X, cam.Y = p.X, p.Y
}

func (c Camera) ViewSize() common.Vec {
	cam := c.comp()
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return common.Vec{X: cam.ViewW / zoom, Y: cam.ViewH / zoom}
}

func (c Camera) Zoom() float64 { return c.comp().Zoom }

func (c Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.comp().Zoom = z
}

func (c Camera) Focus() theater.Focus {
	cam := c.comp()
	switch {
	case cam.Target != 0 && c.w.IsAlive(ecs.Entity(cam.Target)):
		return NewActor(c.w, ecs.Entity(cam.Target))
	case cam.HasPoint:
		return theater.Point{X: cam.PointX, Y: cam.PointY}
	}
	return nil
}

func (c Camera) Follow(f theater.Focus, smooth bool) {
	cam := c.comp()
	cam.Target = 0
	cam.HasPoint = false
	cam.TargetName = ""
	cam.Smooth = smooth
	switch f := f.(type) {
	case nil:
	case Actor:
		cam.Target = uint64(f.e)
	default:
		p := f.Center()
		cam.HasPoint = true
		cam.PointX, cam.PointY = p.X, p.Y
	}
}
