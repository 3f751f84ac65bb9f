package theater

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type FadePhase int

const (
	FadingOut FadePhase = iota
	Holding
	FadingIn
)

func (p FadePhase) String() string {
	switch p {
	case FadingOut:
		return "fading_out"
	case Holding:
		return "holding"
	case FadingIn:
		return "fading_in"
	}
	return "unknown"
}

// Fade covers the screen with a solid color, holds it, then uncovers.
//
// OnFaded runs once, on the frame the cover becomes opaque, or on completion
// if the fade is cut off before that. Held actions run only while the screen
// is covered and are force-completed when the fade ends.
type Fade struct {
	Base

	out, hold, in float64
	color         color.RGBA
	onFaded       func()
	faded         bool

	phase   FadePhase
	elapsed float64
	alpha   uint8

	held  *Group
	after []Command
}

// NewFade builds a fade with phase lengths in milliseconds.
func NewFade(out, hold, in float64, c color.Color, onFaded func()) *Fade {
	if out < 0 || hold < 0 || in < 0 {
		panic("theater: negative fade length")
	}
	if c == nil {
		c = color.Black
	}
	r, g, b, _ := c.RGBA()
	return &Fade{
		out:     out,
		hold:    hold,
		in:      in,
		color:   color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff},
		onFaded: onFaded,
		held:    NewGroup(),
	}
}

func (f *Fade) Kind() Kind { return KindFade }

// AddAction queues c to run behind the cover.
func (f *Fade) AddAction(c Command) {
	f.held.Add(c)
}

// Then queues c to be added to the owning group once the fade completes.
func (f *Fade) Then(c Command) {
	if c == nil {
		panic("theater: fade then nil command")
	}
	f.after = append(f.after, c)
}

func (f *Fade) Phase() FadePhase { return f.phase }

// Alpha is the current cover opacity, 0 to 255.
func (f *Fade) Alpha() uint8 { return f.alpha }

func (f *Fade) Tick(in Inserter, dt float64) {
	f.elapsed += dt

	switch f.phase {
	case FadingOut:
		if f.elapsed >= f.out {
			f.alpha = 0xff
			f.elapsed -= f.out
			f.phase = Holding
			f.runFaded()
			return
		}
		f.alpha = uint8(f.elapsed / f.out * 0xff)
	case Holding:
		f.alpha = 0xff
		f.held.Tick(dt)
		if f.elapsed >= f.hold {
			f.elapsed -= f.hold
			f.phase = FadingIn
		}
	case FadingIn:
		if f.elapsed >= f.in {
			f.alpha = 0
			f.Complete(in)
			return
		}
		f.alpha = 0xff - uint8(f.elapsed/f.in*0xff)
	}
}

func (f *Fade) Draw(screen *ebiten.Image, camX, camY float64) {
	if screen == nil {
		return
	}
	if f.alpha > 0 {
		b := screen.Bounds()
		c := color.NRGBA{R: f.color.R, G: f.color.G, B: f.color.B, A: f.alpha}
		vector.FillRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), c, false)
	}
	if f.phase == Holding {
		f.held.Draw(screen, camX, camY)
	}
}

func (f *Fade) Complete(in Inserter) {
	if f.completed {
		return
	}
	f.runFaded()
	f.held.ForceComplete()
	f.held.close()
	for _, c := range f.after {
		in.Add(c)
	}
	f.after = nil
	f.Base.Complete(in)
}

// runFaded calls onFaded the first time only. A fade cut off before it got
// opaque still leaves the world in its post-fade state.
func (f *Fade) runFaded() {
	if f.faded {
		return
	}
	f.faded = true
	if f.onFaded != nil {
		f.onFaded()
	}
}
