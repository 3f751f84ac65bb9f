package theater

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Response is the slot an Ask writes its answer into.
type Response struct {
	index  int
	shared bool
}

func NewResponse() *Response {
	return &Response{index: -1}
}

// Answered reports whether an answer has been written.
func (r *Response) Answered() bool {
	return r.index >= 0
}

// Index returns the chosen option, or -1, and marks the answer as consumed.
func (r *Response) Index() int {
	if r.index >= 0 {
		r.shared = true
	}
	return r.index
}

// Shared reports whether the answer has been read since it was written.
func (r *Response) Shared() bool {
	return r.shared
}

func (r *Response) set(i int) {
	r.index = i
	r.shared = false
}

type askPhase int

const (
	askReading askPhase = iota
	askChoosing
	askAnswered
)

// Ask shows a question like a Dialog, then lets the reader cycle through
// options with prev/next and pick one with confirm.
type Ask struct {
	Base

	dialog   *Dialog
	options  []string
	response *Response
	controls Controls

	phase  askPhase
	cursor int
}

func NewAsk(question string, options []string, resp *Response, style Style, controls Controls) *Ask {
	if len(options) == 0 {
		panic("theater: ask without options")
	}
	if resp == nil {
		panic("theater: ask nil response")
	}
	return &Ask{
		dialog:   NewDialog(question, style, controls),
		options:  options,
		response: resp,
		controls: controls,
	}
}

func (a *Ask) Kind() Kind { return KindInput }

// Cursor is the highlighted option.
func (a *Ask) Cursor() int { return a.cursor }

// Choosing reports whether the option list is up.
func (a *Ask) Choosing() bool { return a.phase == askChoosing }

func (a *Ask) Tick(in Inserter, dt float64) {
	switch a.phase {
	case askReading:
		if a.dialog.step(dt) {
			a.phase = askChoosing
		}
	case askChoosing:
		n := len(a.options)
		switch {
		case a.controls.Confirm():
			a.Complete(in)
		case a.controls.Prev():
			a.cursor = (a.cursor + n - 1) % n
		case a.controls.Next():
			a.cursor = (a.cursor + 1) % n
		}
	}
}

func (a *Ask) Draw(screen *ebiten.Image, camX, camY float64) {
	if screen == nil {
		return
	}
	a.dialog.Draw(screen, camX, camY)
	if a.phase != askChoosing {
		return
	}

	st := a.dialog.style
	pad := st.padding()
	lh := st.lineHeight()
	widest := 0.0
	for _, o := range a.options {
		widest = max(widest, st.measure(o))
	}
	w := widest + 2*pad
	h := float64(len(a.options))*lh + 2*pad
	bx, by, bw, _ := st.dialogBox()
	x := bx + bw - w
	y := by - h - pad

	drawBox(screen, x, y, w, h)
	for i, o := range a.options {
		var c color.Color = textColor
		if i == a.cursor {
			c = choiceText
		}
		ox := x + (w-st.measure(o))/2
		st.drawText(screen, o, ox, y+pad+float64(i)*lh, c)
	}
}

// Complete writes the highlighted option to the response slot. An Ask
// completed before its options were shown leaves the slot unanswered.
func (a *Ask) Complete(in Inserter) {
	if a.completed {
		return
	}
	if a.phase == askChoosing {
		a.response.set(a.cursor)
	}
	a.phase = askAnswered
	a.Base.Complete(in)
}
