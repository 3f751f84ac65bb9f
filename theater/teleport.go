package theater

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/theater/common"
)

// FadeTiming groups the three phase lengths of a fade, in milliseconds.
type FadeTiming struct {
	Out, Hold, In float64
	Color         color.Color
}

var (
	// NormalFade is the default cover used to hide scene setup.
	NormalFade = FadeTiming{Out: 500, Hold: 500, In: 500, Color: color.Black}
	// TeleportFade holds the cover a little longer on the way back in.
	TeleportFade = FadeTiming{Out: 500, Hold: 500, In: 1000, Color: color.Black}
)

func (t FadeTiming) New(onFaded func()) *Fade {
	return NewFade(t.Out, t.Hold, t.In, t.Color, onFaded)
}

// Teleport moves an actor, and optionally switches maps, behind a fade.
// An instant teleport skips the fade and finishes on its first frame.
type Teleport struct {
	Base

	stage   Stage
	actor   Actor
	mapName string
	dest    common.Vec
	logger  *log.Logger

	fade *Fade
	done bool
}

func NewTeleport(s Stage, a Actor, mapName string, dest common.Vec, timing FadeTiming, logger *log.Logger) *Teleport {
	t := newTeleport(s, a, mapName, dest, logger)
	t.fade = timing.New(t.apply)
	return t
}

func NewInstantTeleport(s Stage, a Actor, mapName string, dest common.Vec, logger *log.Logger) *Teleport {
	return newTeleport(s, a, mapName, dest, logger)
}

func newTeleport(s Stage, a Actor, mapName string, dest common.Vec, logger *log.Logger) *Teleport {
	if s == nil || a == nil {
		panic("theater: teleport needs a stage and an actor")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Teleport{stage: s, actor: a, mapName: mapName, dest: dest, logger: logger}
}

func (t *Teleport) Kind() Kind { return KindTeleport }

// AddAction runs c while the screen is covered. Instant teleports have no
// cover and panic.
func (t *Teleport) AddAction(c Command) {
	if t.fade == nil {
		panic("theater: instant teleport has no fade")
	}
	t.fade.AddAction(c)
}

func (t *Teleport) apply() {
	if t.done {
		return
	}
	t.done = true
	if t.mapName != "" && t.mapName != t.stage.MapName() {
		if err := t.stage.ChangeMap(t.mapName); err != nil {
			t.logger.Error("teleport: change map", "map", t.mapName, "err", err)
		}
	}
	t.actor.SetPosition(t.dest)
	t.actor.SetVelocity(common.Vec{})
}

func (t *Teleport) Start(in Inserter) {
	if t.fade == nil {
		t.apply()
		t.Complete(in)
	}
}

func (t *Teleport) Tick(in Inserter, dt float64) {
	t.fade.Tick(in, dt)
	if t.fade.Completed() {
		t.Complete(in)
	}
}

func (t *Teleport) Draw(screen *ebiten.Image, camX, camY float64) {
	if t.fade != nil {
		t.fade.Draw(screen, camX, camY)
	}
}

func (t *Teleport) Complete(in Inserter) {
	if t.completed {
		return
	}
	if t.fade != nil && !t.fade.Completed() {
		t.fade.Complete(in)
	}
	t.apply()
	t.Base.Complete(in)
}
