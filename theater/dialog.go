package theater

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Dialog reveals text a character at a time in a box at the bottom of the
// screen. Newlines split the text into sets that always start a fresh box;
// long sets are paged Lines at a time.
//
// Confirm while revealing speeds the reveal up. Confirm on a full page
// advances to the next page, then the next set, then completes.
type Dialog struct {
	Base

	style    Style
	controls Controls

	sets  []string
	lines []string

	shown  []string
	line   int
	chars  int
	delay  float64
	budget float64
}

func NewDialog(msg string, style Style, controls Controls) *Dialog {
	if controls == nil {
		panic("theater: dialog nil controls")
	}
	d := &Dialog{
		style:    style.normalized(),
		controls: controls,
		sets:     splitSets(msg),
	}
	d.delay = d.style.CharDelay
	return d
}

func (d *Dialog) Kind() Kind { return KindDialog }

func (d *Dialog) Tick(in Inserter, dt float64) {
	if d.step(dt) {
		d.Complete(in)
	}
}

// step advances the reveal and handles confirm. It reports true once the
// reader confirms past the last page.
func (d *Dialog) step(dt float64) bool {
	d.layout()
	d.budget += dt
	d.reveal()

	if !d.controls.Confirm() {
		return false
	}
	if d.Revealing() {
		d.delay = d.style.FastDelay
		return false
	}
	if len(d.lines) > d.style.Lines {
		d.lines = d.lines[d.style.Lines:]
		d.resetPage()
		return false
	}
	if len(d.sets) > 1 {
		d.sets = d.sets[1:]
		d.lines = nil
		d.layout()
		return false
	}
	return true
}

// layout wraps the current set once.
func (d *Dialog) layout() {
	if d.lines != nil {
		return
	}
	d.lines = wrap(d.sets[0], d.style.wrapWidth(), d.style.measure)
	d.resetPage()
}

// splitSets breaks msg on newlines and drops blank sets. A blank message
// still yields one set.
func splitSets(msg string) []string {
	var sets []string
	for _, s := range strings.Split(msg, "\n") {
		if strings.TrimSpace(s) != "" {
			sets = append(sets, s)
		}
	}
	if len(sets) == 0 {
		return []string{""}
	}
	return sets
}

func (d *Dialog) resetPage() {
	d.shown = make([]string, len(d.Page()))
	d.line = 0
	d.chars = 0
	d.budget = 0
	d.delay = d.style.CharDelay
}

func (d *Dialog) reveal() {
	page := d.Page()
	if d.line >= len(page) {
		d.budget = 0
		return
	}
	for d.budget >= d.delay && d.line < len(page) {
		d.budget -= d.delay
		runes := []rune(page[d.line])
		d.chars++
		if d.chars < len(runes) {
			d.shown[d.line] = string(runes[:d.chars])
			continue
		}
		d.shown[d.line] = page[d.line]
		d.line++
		d.chars = 0
	}
	if d.line >= len(page) {
		d.budget = 0
		if d.style.OnPage != nil {
			d.style.OnPage(page)
		}
	}
}

// Page is the text of the page being shown.
func (d *Dialog) Page() []string {
	if len(d.lines) > d.style.Lines {
		return d.lines[:d.style.Lines]
	}
	return d.lines
}

// Shown is the revealed part of the current page.
func (d *Dialog) Shown() []string {
	return d.shown
}

// Revealing reports whether the current page still has hidden characters.
func (d *Dialog) Revealing() bool {
	return d.line < len(d.Page())
}

func (d *Dialog) Draw(screen *ebiten.Image, _, _ float64) {
	if screen == nil {
		return
	}
	d.layout()
	x, y, w, h := d.style.dialogBox()
	drawBox(screen, x, y, w, h)

	pad := d.style.padding()
	lh := d.style.lineHeight()
	for i, s := range d.shown {
		d.style.drawText(screen, s, x+pad, y+pad+float64(i)*lh, textColor)
	}
}
