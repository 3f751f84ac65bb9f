package theater

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	DefaultLines     = 4
	DefaultCharDelay = 20.0
	FastCharDelay    = 1.0
)

var (
	boxFill    = color.RGBA{A: 150}
	boxBorder  = color.White
	textColor  = color.White
	choiceText = color.RGBA{R: 0xff, G: 0xd7, A: 0xff}
)

// Style is the text layout shared by dialog-style commands.
type Style struct {
	Face             text.Face
	ScreenW, ScreenH float64

	Lines     int
	CharDelay float64
	FastDelay float64

	// Measure overrides Face for text width, mostly for headless runs.
	Measure func(s string) float64
	// OnPage is called each time a page of dialog is fully revealed.
	OnPage func(lines []string)
}

func (s Style) normalized() Style {
	if s.Lines <= 0 {
		s.Lines = DefaultLines
	}
	if s.CharDelay <= 0 {
		s.CharDelay = DefaultCharDelay
	}
	if s.FastDelay <= 0 {
		s.FastDelay = FastCharDelay
	}
	if s.ScreenW <= 0 {
		s.ScreenW = 640
	}
	if s.ScreenH <= 0 {
		s.ScreenH = 360
	}
	return s
}

func (s Style) measure(str string) float64 {
	switch {
	case s.Measure != nil:
		return s.Measure(str)
	case s.Face != nil:
		return text.Advance(str, s.Face)
	}
	return float64(utf8.RuneCountInString(str)) * 6
}

func (s Style) lineHeight() float64 {
	if s.Face == nil {
		return 16
	}
	m := s.Face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

func (s Style) padding() float64 {
	return s.ScreenW * 0.02
}

// dialogBox is the bottom band of the screen that holds dialog text.
func (s Style) dialogBox() (x, y, w, h float64) {
	return s.ScreenW * 0.05, s.ScreenH * 0.7, s.ScreenW * 0.9, s.ScreenH * 0.25
}

func (s Style) wrapWidth() float64 {
	_, _, w, _ := s.dialogBox()
	return w - 2*s.padding()
}

// wrap greedily breaks str into lines no wider than width. A word that is
// wider than width on its own gets a line to itself.
func wrap(str string, width float64, measure func(string) float64) []string {
	lines := []string{}
	cur := ""
	for _, word := range strings.Fields(str) {
		if cur == "" {
			cur = word
			continue
		}
		cand := cur + " " + word
		if measure(cand) <= width {
			cur = cand
			continue
		}
		lines = append(lines, cur)
		cur = word
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

func drawBox(screen *ebiten.Image, x, y, w, h float64) {
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), boxFill, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, boxBorder, false)
}

func (s Style) drawText(screen *ebiten.Image, str string, x, y float64, c color.Color) {
	if s.Face == nil {
		ebitenutil.DebugPrintAt(screen, str, int(x), int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, str, s.Face, op)
}
