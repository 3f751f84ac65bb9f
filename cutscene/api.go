package cutscene

import (
	"github.com/milk9111/theater/common"
	"github.com/milk9111/theater/theater"
)

// PlayerName is the actor name the stage gives the player.
const PlayerName = "player"

// Say shows a line of dialog. Newlines start a fresh box.
func (d *Director) Say(msg string) {
	d.emit(theater.NewDialog(msg, d.cfg.Style, d.env.Controls))
}

// Ask shows msg and then the options of the named question.
func (d *Director) Ask(msg, questionName string) {
	q, ok := d.questions[questionName]
	if !ok {
		d.logger.Error("unknown question", "question", questionName, "cutscene", d.cutsceneName())
		return
	}
	d.emit(theater.NewAsk(msg, q.options, q.response, d.cfg.Style, d.env.Controls))
}

// Wait holds the queue for ms of game time.
func (d *Director) Wait(ms float64) {
	d.emit(theater.NewWait(ms))
}

// Move walks an actor to a tile at msPerTile milliseconds per tile.
func (d *Director) Move(actorName string, x, y, msPerTile float64) {
	a, ok := d.actor(actorName)
	if !ok {
		return
	}
	d.emit(theater.NewMoveAtSpeed(a, d.tiles(x, y), msPerTile/d.cfg.TileSize))
}

// MoveFor walks an actor to a tile over exactly ms milliseconds.
func (d *Director) MoveFor(actorName string, x, y, ms float64, through bool) {
	a, ok := d.actor(actorName)
	if !ok {
		return
	}
	d.emit(theater.NewMove(a, d.tiles(x, y), ms, through))
}

// Teleport puts an actor on a tile, switching maps first when mapName is
// set. Faded teleports hide the jump behind the teleport fade.
func (d *Director) Teleport(actorName string, x, y float64, mapName string, faded bool) *theater.Teleport {
	a, ok := d.actor(actorName)
	if !ok {
		return nil
	}
	var t *theater.Teleport
	if faded {
		t = theater.NewTeleport(d.env.Stage, a, mapName, d.tiles(x, y), d.cfg.TeleportFade, d.logger)
	} else {
		t = theater.NewInstantTeleport(d.env.Stage, a, mapName, d.tiles(x, y), d.logger)
	}
	d.emit(t)
	return t
}

func (d *Director) Turn(actorName string, f common.Facing) {
	a, ok := d.actor(actorName)
	if !ok {
		return
	}
	d.emit(theater.NewTurn(a, f))
}

// PanCamera slides the view to center on a tile.
func (d *Director) PanCamera(x, y, ms float64) {
	cam, ok := d.camera()
	if !ok {
		return
	}
	center := d.tiles(x, y).Add(common.Vec{X: d.cfg.TileSize / 2, Y: d.cfg.TileSize / 2})
	d.emit(theater.NewPanCamera(cam, center, ms))
}

// FocusCamera makes the camera follow an actor. A positive panMs pans over
// to the actor first.
func (d *Director) FocusCamera(actorName string, smooth bool, panMs float64) {
	cam, ok := d.camera()
	if !ok {
		return
	}
	a, ok := d.actor(actorName)
	if !ok {
		return
	}
	if panMs > 0 {
		d.emit(theater.NewPanCamera(cam, a.Center(), panMs))
	}
	d.emit(theater.NewFocusCamera(cam, a, smooth))
}

// FocusPoint pins the camera on a tile.
func (d *Director) FocusPoint(x, y float64, smooth bool) {
	cam, ok := d.camera()
	if !ok {
		return
	}
	center := d.tiles(x, y).Add(common.Vec{X: d.cfg.TileSize / 2, Y: d.cfg.TileSize / 2})
	d.emit(theater.NewFocusCamera(cam, theater.Point(center), smooth))
}

// ZoomCamera zooms to percent of the normal view over ms.
func (d *Director) ZoomCamera(percent, ms float64) {
	cam, ok := d.camera()
	if !ok {
		return
	}
	d.emit(theater.NewZoomCamera(cam, percent, ms))
}

// GiveItem announces an item for an actor. With grant unset nothing is
// added to the inventory.
func (d *Director) GiveItem(item string, count int, actorName string, grant bool) {
	a, ok := d.actor(actorName)
	if !ok {
		return
	}
	if count <= 0 {
		d.logger.Error("give item with non-positive count", "item", item, "count", count)
		return
	}
	var inv theater.Inventory
	if grant {
		inv = d.env.Inventory
	}
	r := theater.NewReceiveItem(a, item, count, d.cfg.Style, d.env.Controls, inv)
	if d.env.Camera != nil {
		r.WithIcon(d.env.Camera, d.cfg.ItemColors[item])
	}
	d.emit(r)
}

// AddEntity spawns a prefab on a tile.
func (d *Director) AddEntity(name, prefab string, x, y float64, f common.Facing) {
	if name == "" {
		d.logger.Error("add entity without a name", "prefab", prefab)
		return
	}
	d.emit(theater.NewAddEntity(d.env.Stage, theater.ActorSpec{
		Name:   name,
		Prefab: prefab,
		Pos:    d.tiles(x, y),
		Facing: f,
	}, d.logger))
}

func (d *Director) RemoveEntity(name string) {
	d.emit(theater.NewRemoveEntity(d.env.Stage, name, d.logger))
}

// FadeOut schedules a fade with the given timing. onFaded runs once the
// screen is covered.
func (d *Director) FadeOut(timing theater.FadeTiming, onFaded func()) *theater.Fade {
	f := timing.New(onFaded)
	d.emit(f)
	return f
}

// NormalFade schedules the default fade.
func (d *Director) NormalFade(onFaded func()) *theater.Fade {
	return d.FadeOut(d.cfg.NormalFade, onFaded)
}
