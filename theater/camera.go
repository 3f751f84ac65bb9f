package theater

import "github.com/milk9111/theater/common"

// FocusCamera points the camera at a new follow target and finishes at once.
// A nil focus leaves the camera where it is.
type FocusCamera struct {
	Base

	camera Camera
	focus  Focus
	smooth bool
}

func NewFocusCamera(cam Camera, f Focus, smooth bool) *FocusCamera {
	if cam == nil {
		panic("theater: focus nil camera")
	}
	return &FocusCamera{camera: cam, focus: f, smooth: smooth}
}

func (c *FocusCamera) Kind() Kind { return KindFocusCamera }

func (c *FocusCamera) Start(in Inserter) {
	c.camera.Follow(c.focus, c.smooth)
	c.Complete(in)
}

// PanCamera slides the view so that target ends up centered. The camera
// stops following anything while it pans.
type PanCamera struct {
	Base

	camera   Camera
	target   common.Vec
	duration float64

	from, to common.Vec
	elapsed  float64
}

func NewPanCamera(cam Camera, target common.Vec, duration float64) *PanCamera {
	if cam == nil {
		panic("theater: pan nil camera")
	}
	if duration < 0 {
		panic("theater: negative pan duration")
	}
	return &PanCamera{camera: cam, target: target, duration: duration}
}

func (c *PanCamera) Kind() Kind { return KindPanCamera }

func (c *PanCamera) Start(Inserter) {
	c.camera.Follow(nil, false)
	c.from = c.camera.Position()
	c.to = c.target.Sub(c.camera.ViewSize().Scale(0.5))
}

// Complete leaves target centered even when the pan is cut short.
func (c *PanCamera) Complete(in Inserter) {
	if c.completed {
		return
	}
	if !c.started {
		c.Start(in)
	}
	c.camera.SetPosition(c.to)
	c.Base.Complete(in)
}

func (c *PanCamera) Tick(in Inserter, dt float64) {
	c.elapsed += dt
	if c.elapsed >= c.duration {
		c.camera.SetPosition(c.to)
		c.Complete(in)
		return
	}
	t := c.elapsed / c.duration
	c.camera.SetPosition(common.Vec{
		X: common.Lerp(c.from.X, c.to.X, t),
		Y: common.Lerp(c.from.Y, c.to.Y, t),
	})
}

// ZoomCamera scales the view around whatever is centered when it starts.
// Percent is relative to the unzoomed view, so 200 doubles the size of things.
// On completion the camera goes back to its previous follow target.
type ZoomCamera struct {
	Base

	camera   Camera
	target   float64
	duration float64

	from    float64
	prev    Focus
	smooth  bool
	anchor  *FocusCamera
	elapsed float64
}

func NewZoomCamera(cam Camera, percent, duration float64) *ZoomCamera {
	if cam == nil {
		panic("theater: zoom nil camera")
	}
	if percent <= 0 {
		panic("theater: zoom percent must be positive")
	}
	if duration < 0 {
		panic("theater: negative zoom duration")
	}
	return &ZoomCamera{camera: cam, target: percent / 100, duration: duration}
}

func (c *ZoomCamera) Kind() Kind { return KindZoomCamera }

// Restore sets the follow target used once the zoom completes.
func (c *ZoomCamera) Restore(f Focus, smooth bool) *ZoomCamera {
	c.prev = f
	c.smooth = smooth
	return c
}

func (c *ZoomCamera) Start(in Inserter) {
	if c.prev == nil {
		c.prev = c.camera.Focus()
	}
	center := c.camera.Position().Add(c.camera.ViewSize().Scale(0.5))
	c.anchor = NewFocusCamera(c.camera, Point(center), false)
	in.Add(c.anchor)
	c.from = c.camera.Zoom()
}

func (c *ZoomCamera) Tick(in Inserter, dt float64) {
	if !c.anchor.Completed() {
		return
	}
	c.elapsed += dt
	if c.elapsed >= c.duration {
		c.camera.SetZoom(c.target)
		c.Complete(in)
		return
	}
	c.camera.SetZoom(common.Lerp(c.from, c.target, c.elapsed/c.duration))
}

func (c *ZoomCamera) Complete(in Inserter) {
	if c.completed {
		return
	}
	c.camera.SetZoom(c.target)
	if c.started {
		in.Add(NewFocusCamera(c.camera, c.prev, c.smooth))
	}
	c.Base.Complete(in)
}
