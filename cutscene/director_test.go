package cutscene

import (
	"errors"
	"testing"

	"github.com/milk9111/theater/theater"
)

func TestCueErrors(t *testing.T) {
	h := newHarness()
	register(h.director.Registry(), "idle", scriptFuncs{})

	if err := h.director.Cue("missing"); !errors.Is(err, ErrUnknownCutscene) {
		t.Fatalf("Cue(missing) err = %v, want ErrUnknownCutscene", err)
	}
	if err := h.director.Cue("idle"); err != nil {
		t.Fatalf("Cue(idle): %v", err)
	}
	if err := h.director.Cue("idle"); !errors.Is(err, ErrCutsceneRunning) {
		t.Fatalf("second Cue err = %v, want ErrCutsceneRunning", err)
	}
	if name, ok := h.director.Current(); !ok || name != "idle" {
		t.Fatalf("Current = %q, %v", name, ok)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	f := func() (Script, error) { return scriptFuncs{}, nil }
	if err := r.Register("a", f); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register("a", f); !errors.Is(err, ErrDuplicateCutscene) {
		t.Fatalf("duplicate err = %v", err)
	}
	r.Replace("a", f)
	if names := r.Names(); len(names) != 1 || names[0] != "a" {
		t.Fatalf("Names = %v", names)
	}
}

func TestSubmissionModes(t *testing.T) {
	tests := []struct {
		name        string
		script      func(d *Director)
		wantPending int
	}{
		{
			name: "sequential",
			script: func(d *Director) {
				d.Wait(10)
				d.Say("hi")
			},
			wantPending: 2,
		},
		{
			name: "together",
			script: func(d *Director) {
				d.Together(func() {
					d.Wait(10)
					d.Turn(PlayerName, 1)
					d.Say("hi")
				})
			},
			wantPending: 1,
		},
		{
			name: "during fade",
			script: func(d *Director) {
				f := d.NormalFade(nil)
				d.DuringFade(f, func() {
					d.Wait(10)
					d.RemoveEntity(PlayerName)
				})
			},
			wantPending: 1,
		},
		{
			name: "missing actor is skipped",
			script: func(d *Director) {
				d.Move("ghost", 1, 1, 100)
				d.Turn("ghost", 0)
			},
			wantPending: 0,
		},
		{
			name: "unknown question is skipped",
			script: func(d *Director) {
				d.Ask("?", "nope")
			},
			wantPending: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			register(h.director.Registry(), "s", scriptFuncs{start: func(d *Director) error {
				tt.script(d)
				return nil
			}})
			if err := h.director.Cue("s"); err != nil {
				t.Fatalf("Cue: %v", err)
			}
			if got := h.sched.Pending(); got != tt.wantPending {
				t.Fatalf("Pending = %d, want %d", got, tt.wantPending)
			}
		})
	}
}

func TestFlagsAndQuestionsResetOnFinish(t *testing.T) {
	h := newHarness()
	var finished Finished
	h.director.OnFinish(func(f Finished) { finished = f })
	register(h.director.Registry(), "q", scriptFuncs{
		start: func(d *Director) error {
			d.SetFlag("seen", true)
			d.AddQuestion("color", "red", "blue")
			d.Ask("Favorite?", "color")
			return nil
		},
		update: func(d *Director, _ float64) error {
			if r, ok := d.Response("color"); ok && r == "red" {
				d.Finish(false)
			}
			return nil
		},
	})
	if err := h.director.Cue("q"); err != nil {
		t.Fatalf("Cue: %v", err)
	}
	if !h.director.Flag("seen") {
		t.Fatalf("flag not set")
	}

	h.controls.confirm = true
	for range 20 {
		h.frame(100)
		if !h.director.Active() {
			break
		}
	}
	if h.director.Active() {
		t.Fatalf("cutscene never finished")
	}
	if finished.Name != "q" || finished.RunID == "" || finished.Aborted {
		t.Fatalf("OnFinish got %+v", finished)
	}
	if h.director.Flag("seen") || h.director.HasResponse("color") {
		t.Fatalf("state survived Finish")
	}
	if h.stage.refreshes != 1 {
		t.Fatalf("refreshes = %d, want 1", h.stage.refreshes)
	}
}

func TestFinishWithFadeRefreshesWhenCovered(t *testing.T) {
	h := newHarness()
	var fade *theater.Fade
	register(h.director.Registry(), "f", scriptFuncs{update: func(d *Director, _ float64) error {
		fade = d.Finish(true)
		return nil
	}})
	if err := h.director.Cue("f"); err != nil {
		t.Fatalf("Cue: %v", err)
	}
	h.frame(100)
	if fade == nil || h.director.Active() {
		t.Fatalf("Finish(true) should end the run and return its fade")
	}
	if h.stage.refreshes != 0 {
		t.Fatalf("stage refreshed before the screen was covered")
	}
	for range 4 {
		h.frame(100)
	}
	if h.stage.refreshes != 1 {
		t.Fatalf("refreshes = %d after the fade covered the screen", h.stage.refreshes)
	}
	if !h.sched.HasCommand() {
		t.Fatalf("fade should still be running")
	}
}

func TestScriptErrorAborts(t *testing.T) {
	h := newHarness()
	boom := errors.New("boom")
	register(h.director.Registry(), "bad", scriptFuncs{update: func(d *Director, _ float64) error {
		d.BeginBatch()
		d.Wait(100)
		return boom
	}})
	var finished Finished
	h.director.OnFinish(func(f Finished) { finished = f })
	if err := h.director.Cue("bad"); err != nil {
		t.Fatalf("Cue: %v", err)
	}
	h.frame(16)
	if h.director.Active() {
		t.Fatalf("cutscene still active after an error")
	}
	if !finished.Aborted || finished.Name != "bad" {
		t.Fatalf("OnFinish got %+v", finished)
	}
	if h.sched.Pending() != 0 {
		t.Fatalf("half-built batch was submitted")
	}
}

func TestOpenBatchIsClosedAfterUpdate(t *testing.T) {
	h := newHarness()
	register(h.director.Registry(), "open", scriptFuncs{update: func(d *Director, _ float64) error {
		if !d.Flag("done") {
			d.SetFlag("done", true)
			d.BeginBatch()
			d.Wait(100)
			d.Wait(200)
		}
		return nil
	}})
	if err := h.director.Cue("open"); err != nil {
		t.Fatalf("Cue: %v", err)
	}
	h.director.Tick(16)
	if h.sched.Pending() != 1 {
		t.Fatalf("Pending = %d, want the open batch submitted as one group", h.sched.Pending())
	}
}

func TestExampleCutsceneRunsToTheEnd(t *testing.T) {
	h := newHarness()
	if err := RegisterBuiltins(h.director.Registry()); err != nil {
		t.Fatalf("RegisterBuiltins: %v", err)
	}
	if err := h.director.Cue("example"); err != nil {
		t.Fatalf("Cue: %v", err)
	}
	h.controls.confirm = true

	for range 5000 {
		h.frame(16)
		if !h.director.Active() && !h.sched.HasCommand() {
			break
		}
	}
	if h.director.Active() || h.sched.HasCommand() {
		t.Fatalf("example cutscene did not finish")
	}
	if h.inv["apple"] != 100 {
		t.Fatalf("inventory = %v", h.inv)
	}
	if h.stage.mapName != "cave" {
		t.Fatalf("map = %q, want cave", h.stage.mapName)
	}
	player := h.stage.actors[PlayerName]
	if player.pos.X != 32 || player.pos.Y != 32 {
		t.Fatalf("player at %v, want tile (2,2)", player.pos)
	}
}
