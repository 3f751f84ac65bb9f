package cutscene

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/milk9111/theater/common"
	"github.com/milk9111/theater/theater"
)

// Config holds the knobs the director applies to the commands it builds.
type Config struct {
	// TileSize converts script coordinates, which are in tiles, to world units.
	TileSize     float64
	Style        theater.Style
	NormalFade   theater.FadeTiming
	TeleportFade theater.FadeTiming
	ItemColors   map[string]color.Color
}

func DefaultConfig() Config {
	return Config{
		TileSize:     16,
		NormalFade:   theater.NormalFade,
		TeleportFade: theater.TeleportFade,
	}
}

// Env is the world the director works against.
type Env struct {
	Scheduler *theater.Scheduler
	Stage     theater.Stage
	Camera    theater.Camera
	Controls  theater.Controls
	// Inventory may be nil, in which case items are shown but never granted.
	Inventory theater.Inventory
}

type question struct {
	options  []string
	response *theater.Response
}

type run struct {
	id      string
	name    string
	script  Script
	frames  int
	aborted bool
}

// Finished describes a cutscene that just ended.
type Finished struct {
	Name    string
	RunID   string
	Frames  int
	Aborted bool
}

// Director runs one cutscene script at a time and turns its calls into
// scheduled commands.
type Director struct {
	cfg      Config
	env      Env
	registry *Registry
	logger   *log.Logger

	run       *run
	flags     map[string]bool
	questions map[string]*question

	batching bool
	batch    []theater.Command
	fades    []*theater.Fade

	onFinish []func(Finished)
}

func NewDirector(cfg Config, env Env, reg *Registry, logger *log.Logger) *Director {
	if env.Scheduler == nil || env.Stage == nil || env.Controls == nil {
		panic("cutscene: director needs a scheduler, a stage and controls")
	}
	if reg == nil {
		reg = NewRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg.TileSize <= 0 {
		cfg.TileSize = 1
	}
	return &Director{cfg: cfg, env: env, registry: reg, logger: logger}
}

func (d *Director) Registry() *Registry { return d.registry }

func (d *Director) Logger() *log.Logger { return d.logger }

// OnFinish registers fn to be called each time a cutscene ends, including
// when it aborts.
func (d *Director) OnFinish(fn func(Finished)) {
	d.onFinish = append(d.onFinish, fn)
}

// Active reports whether a cutscene is running.
func (d *Director) Active() bool {
	return d.run != nil
}

// Current returns the running cutscene's name.
func (d *Director) Current() (string, bool) {
	if d.run == nil {
		return "", false
	}
	return d.run.name, true
}

// Cue starts the named cutscene. Only one cutscene runs at a time.
func (d *Director) Cue(name string) error {
	if d.run != nil {
		return fmt.Errorf("%w: %s is playing", ErrCutsceneRunning, d.run.name)
	}
	factory, ok := d.registry.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCutscene, name)
	}
	script, err := factory()
	if err != nil {
		return fmt.Errorf("cutscene: build %s: %w", name, err)
	}

	d.run = &run{id: uuid.NewString(), name: name, script: script}
	d.flags = map[string]bool{}
	d.questions = map[string]*question{}
	d.logger.Info("cutscene started", "name", name, "run", d.run.id)

	if err := script.Start(d); err != nil {
		d.abort(err)
		return fmt.Errorf("cutscene: start %s: %w", name, err)
	}
	return nil
}

// Tick runs the active script once. Call it before the scheduler ticks.
func (d *Director) Tick(dt float64) {
	if d.run == nil {
		return
	}
	r := d.run
	r.frames++
	if err := r.script.Update(d, dt); err != nil {
		d.abort(err)
		return
	}

	if len(d.fades) > 0 {
		d.logger.Warn("fade capture left open", "name", r.name, "depth", len(d.fades))
		d.fades = nil
	}
	if d.batching {
		d.logger.Warn("batch left open", "name", r.name)
		d.EndBatch()
	}
}

func (d *Director) abort(err error) {
	if d.run == nil {
		return
	}
	d.logger.Error("cutscene aborted", "name", d.run.name, "run", d.run.id, "err", err)
	d.run.aborted = true
	d.batching = false
	d.batch = nil
	d.fades = nil
	d.Finish(false)
}

// Finish ends the running cutscene and clears its flags and questions. With
// fade set the stage is repopulated behind a fade, which is returned so the
// caller can queue more work behind the cover.
func (d *Director) Finish(fade bool) *theater.Fade {
	if d.run == nil {
		return nil
	}
	r := d.run

	var f *theater.Fade
	if fade {
		f = d.cfg.NormalFade.New(d.resetStage)
		d.emit(f)
	} else {
		d.resetStage()
	}
	if d.batching {
		d.EndBatch()
	}

	d.run = nil
	d.flags = nil
	d.questions = nil
	d.logger.Info("cutscene finished", "name", r.name, "run", r.id, "frames", r.frames)

	done := Finished{Name: r.name, RunID: r.id, Frames: r.frames, Aborted: r.aborted}
	for _, fn := range d.onFinish {
		fn(done)
	}
	return f
}

func (d *Director) resetStage() {
	if err := d.env.Stage.RefreshActors(); err != nil {
		d.logger.Error("refresh actors", "err", err)
	}
}

// Busy reports whether the scheduler still has work queued.
func (d *Director) Busy() bool {
	return d.env.Scheduler.HasCommand()
}

// Blocking reports whether player input should be ignored: a cutscene is
// running or commands are still playing out.
func (d *Director) Blocking() bool {
	return d.run != nil || d.env.Scheduler.HasCommand()
}

func (d *Director) Flag(name string) bool {
	return d.flags[name]
}

func (d *Director) SetFlag(name string, v bool) {
	if d.flags == nil {
		return
	}
	d.flags[name] = v
}

// AddQuestion declares a named question and its options.
func (d *Director) AddQuestion(name string, options ...string) {
	if d.questions == nil {
		return
	}
	if len(options) == 0 {
		d.logger.Error("question without options", "question", name)
		return
	}
	d.questions[name] = &question{options: options, response: theater.NewResponse()}
}

// HasResponse reports whether the named question has been answered.
func (d *Director) HasResponse(name string) bool {
	q, ok := d.questions[name]
	return ok && q.response.Answered()
}

// Response returns the chosen option text for the named question.
func (d *Director) Response(name string) (string, bool) {
	q, ok := d.questions[name]
	if !ok || !q.response.Answered() {
		return "", false
	}
	return q.options[q.response.Index()], true
}

// BeginBatch collects the following commands into one concurrent group.
func (d *Director) BeginBatch() {
	d.batching = true
}

// EndBatch submits everything collected since BeginBatch as one group.
func (d *Director) EndBatch() {
	if !d.batching {
		return
	}
	d.batching = false
	cmds := d.batch
	d.batch = nil
	d.env.Scheduler.SubmitGroup(cmds, false)
}

// Together runs fn in batch mode so everything it schedules runs at once.
func (d *Director) Together(fn func()) {
	if d.batching {
		fn()
		return
	}
	d.BeginBatch()
	fn()
	d.EndBatch()
}

// DuringFade routes everything fn schedules into f's held actions.
func (d *Director) DuringFade(f *theater.Fade, fn func()) {
	if f == nil {
		fn()
		return
	}
	d.pushFade(f)
	fn()
	d.popFade()
}

func (d *Director) pushFade(f *theater.Fade) {
	d.fades = append(d.fades, f)
}

func (d *Director) popFade() {
	if len(d.fades) == 0 {
		return
	}
	d.fades = d.fades[:len(d.fades)-1]
}

func (d *Director) emit(c theater.Command) {
	switch {
	case len(d.fades) > 0:
		d.fades[len(d.fades)-1].AddAction(c)
	case d.batching:
		d.batch = append(d.batch, c)
	default:
		d.env.Scheduler.Submit(c)
	}
}

func (d *Director) tiles(x, y float64) common.Vec {
	return common.Vec{X: x * d.cfg.TileSize, Y: y * d.cfg.TileSize}
}

func (d *Director) actor(name string) (theater.Actor, bool) {
	a, ok := d.env.Stage.Actor(name)
	if !ok {
		d.logger.Error("no such actor", "name", name, "cutscene", d.cutsceneName())
	}
	return a, ok
}

func (d *Director) camera() (theater.Camera, bool) {
	if d.env.Camera == nil {
		d.logger.Error("no camera", "cutscene", d.cutsceneName())
		return nil, false
	}
	return d.env.Camera, true
}

func (d *Director) cutsceneName() string {
	if d.run == nil {
		return ""
	}
	return d.run.name
}
