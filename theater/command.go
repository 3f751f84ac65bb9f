package theater

import "github.com/hajimehoshi/ebiten/v2"

// Kind enumerates the closed set of commands the scheduler knows about.
type Kind int

const (
	KindWait Kind = iota
	KindMove
	KindFade
	KindDialog
	KindInput
	KindTurn
	KindPanCamera
	KindZoomCamera
	KindFocusCamera
	KindReceiveItem
	KindAddEntity
	KindRemoveEntity
	KindTeleport
)

var kindNames = [...]string{
	KindWait:         "wait",
	KindMove:         "move",
	KindFade:         "fade",
	KindDialog:       "dialog",
	KindInput:        "input",
	KindTurn:         "turn",
	KindPanCamera:    "pan_camera",
	KindZoomCamera:   "zoom_camera",
	KindFocusCamera:  "focus_camera",
	KindReceiveItem:  "receive_item",
	KindAddEntity:    "add_entity",
	KindRemoveEntity: "remove_entity",
	KindTeleport:     "teleport",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Inserter adds a command to the group that is currently running the caller.
// Commands receive it on every lifecycle call and must not keep it.
type Inserter interface {
	Add(c Command)
}

// Command is one scripted unit of behavior.
//
// The owning group calls Start exactly once, right before the first Tick.
// Tick may call Complete at most once. A completed command is never ticked
// or drawn again.
type Command interface {
	Kind() Kind
	Start(in Inserter)
	Tick(in Inserter, dt float64)
	Draw(screen *ebiten.Image, camX, camY float64)
	Complete(in Inserter)
	Started() bool
	Completed() bool

	state() *Base
}

// Base carries the lifecycle flags shared by every command.
type Base struct {
	started   bool
	completed bool
}

func (b *Base) Started() bool   { return b.started }
func (b *Base) Completed() bool { return b.completed }

func (b *Base) Start(Inserter)                       {}
func (b *Base) Tick(Inserter, float64)               {}
func (b *Base) Draw(*ebiten.Image, float64, float64) {}
func (b *Base) Complete(Inserter)                    { b.completed = true }
func (b *Base) state() *Base                         { return b }
