package cutscene

import (
	"github.com/milk9111/theater/common"
	"github.com/milk9111/theater/theater"
)

// exampleSpeed is in milliseconds per tile.
const exampleSpeed = 150

// Example walks through most of the director API: a question, a walk, an
// item and a teleport hidden behind the closing fade.
type Example struct {
	fade *theater.Fade
}

func (e *Example) Start(d *Director) error {
	d.SetFlag("asked_age", false)
	d.AddQuestion("how_old", "I'm 19!", "I'm old. Who cares?")
	e.fade = d.NormalFade(nil)
	return nil
}

func (e *Example) Update(d *Director, _ float64) error {
	if !d.Flag("asked_age") {
		d.Say("Sup guys!")
		d.Wait(1000)
		d.Together(func() {
			d.PanCamera(0, 0, 1000)
			d.Ask("How old are you?", "how_old")
		})
		d.SetFlag("asked_age", true)
		return nil
	}

	if !d.Flag("answered") {
		answer, ok := d.Response("how_old")
		if !ok {
			return nil
		}
		d.Say("You said: " + answer)
		d.Move(PlayerName, 7, 7, exampleSpeed)
		d.FocusCamera(PlayerName, false, 2000)
		d.Move(PlayerName, 0, 12, exampleSpeed)

		e.fade = d.NormalFade(nil)
		d.DuringFade(e.fade, func() {
			d.MoveFor(PlayerName, 0, 0, 0, true)
			d.Turn(PlayerName, common.FacingRight)
		})

		d.Wait(2000)
		d.Move(PlayerName, 10, 12, exampleSpeed)
		d.GiveItem("apple", 100, PlayerName, true)
		d.Move(PlayerName, 10, 6, exampleSpeed)
		d.SetFlag("answered", true)
		return nil
	}

	f := d.Finish(true)
	d.DuringFade(f, func() {
		d.Teleport(PlayerName, 2, 2, "cave", false)
	})
	return nil
}

// RegisterBuiltins adds the cutscenes written in Go.
func RegisterBuiltins(r *Registry) error {
	return r.Register("example", func() (Script, error) { return &Example{}, nil })
}

// RegisterScript compiles a tengo cutscene and registers it under name.
// With replace set an existing entry is overwritten.
func RegisterScript(r *Registry, name string, src []byte, replace bool) error {
	p, err := Compile(name, src)
	if err != nil {
		return err
	}
	if replace {
		r.Replace(name, p.Factory())
		return nil
	}
	return r.Register(name, p.Factory())
}
