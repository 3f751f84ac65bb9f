package theater

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/theater/common"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const iconSize = 12.0

var defaultIcon = color.RGBA{R: 0xff, G: 0xd7, A: 0xff}

var titleCase = cases.Title(language.English)

// ItemMessage is the line shown when an actor receives count of item.
func ItemMessage(item string, count int) string {
	name := titleCase.String(item)
	if count != 1 {
		name += "s"
	}
	return fmt.Sprintf("You received %d %s!", count, name)
}

// ReceiveItem shows the item above an actor's head while a dialog announces
// it. The actor faces the screen meanwhile and turns back afterwards.
type ReceiveItem struct {
	Base

	actor     Actor
	item      string
	count     int
	style     Style
	controls  Controls
	inventory Inventory
	camera    Camera
	icon      color.Color

	dialog *Dialog
	prev   common.Facing
}

// NewReceiveItem announces count of item for a. With a nil inventory the
// item is only shown, not granted.
func NewReceiveItem(a Actor, item string, count int, style Style, controls Controls, inv Inventory) *ReceiveItem {
	if a == nil {
		panic("theater: receive item nil actor")
	}
	if count <= 0 {
		panic("theater: receive item count must be positive")
	}
	return &ReceiveItem{
		actor:     a,
		item:      item,
		count:     count,
		style:     style,
		controls:  controls,
		inventory: inv,
		icon:      defaultIcon,
	}
}

func (r *ReceiveItem) Kind() Kind { return KindReceiveItem }

// WithIcon sets the icon color and the camera used to place it.
func (r *ReceiveItem) WithIcon(cam Camera, c color.Color) *ReceiveItem {
	r.camera = cam
	if c != nil {
		r.icon = c
	}
	return r
}

func (r *ReceiveItem) Start(in Inserter) {
	r.prev = r.actor.Facing()
	r.dialog = NewDialog(ItemMessage(r.item, r.count), r.style, r.controls)
	in.Add(r.dialog)
	in.Add(NewTurn(r.actor, common.FacingDown))
}

func (r *ReceiveItem) Tick(in Inserter, _ float64) {
	if r.dialog.Completed() {
		r.Complete(in)
	}
}

func (r *ReceiveItem) Draw(screen *ebiten.Image, camX, camY float64) {
	if screen == nil || !r.started {
		return
	}
	zoom := 1.0
	if r.camera != nil {
		zoom = r.camera.Zoom()
	}
	pos := r.actor.Position()
	size := r.actor.Size()
	x := (pos.X + size.X/2 - camX) * zoom
	y := (pos.Y - camY) * zoom
	s := iconSize * zoom
	vector.FillRect(screen, float32(x-s/2), float32(y-s-2*zoom), float32(s), float32(s), r.icon, false)
}

func (r *ReceiveItem) Complete(in Inserter) {
	if r.completed {
		return
	}
	if r.started {
		in.Add(NewTurn(r.actor, r.prev))
	}
	if r.inventory != nil {
		r.inventory.Give(r.item, r.count)
	}
	r.Base.Complete(in)
}
