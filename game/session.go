// Package game wires the ECS world, the command scheduler and the cutscene
// director into one frame-stepped session.
package game

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/theater/common"
	"github.com/milk9111/theater/config"
	"github.com/milk9111/theater/cutscene"
	"github.com/milk9111/theater/ecs"
	"github.com/milk9111/theater/ecs/component"
	"github.com/milk9111/theater/ecs/entity"
	"github.com/milk9111/theater/ecs/system"
	"github.com/milk9111/theater/prefabs"
	"github.com/milk9111/theater/progress"
	"github.com/milk9111/theater/theater"
)

type Options struct {
	Config config.Config
	Logger *log.Logger
	// Store records progress. Nil keeps everything in memory for this run.
	Store *progress.Store
	// Input replaces keyboard and gamepad reads, for headless runs.
	Input func() component.Input
	Style theater.Style
}

// Session owns one running game.
type Session struct {
	cfg    config.Config
	logger *log.Logger
	store  *progress.Store

	world   *ecs.World
	input   *system.InputSystem
	systems *ecs.Scheduler
	render  *system.RenderSystem

	stage     *Stage
	sched     *theater.Scheduler
	registry  *cutscene.Registry
	director  *cutscene.Director
	cutscenes prefabs.CutsceneTable

	player ecs.Entity
	camera ecs.Entity
	frames int
}

func New(opts Options) (*Session, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Session{
		cfg:      cfg,
		logger:   logger,
		store:    opts.Store,
		world:    ecs.NewWorld(),
		render:   system.NewRenderSystem(),
		registry: cutscene.NewRegistry(),
	}
	s.render.Debug = cfg.Debug

	if err := s.spawnPlayer(); err != nil {
		return nil, err
	}
	camera, err := entity.NewCamera(s.world, float64(cfg.Window.Width), float64(cfg.Window.Height))
	if err != nil {
		return nil, err
	}
	s.camera = camera

	s.stage = NewStage(s.world, cfg.TileSize, s.store, logger.WithPrefix("stage"))
	if err := s.stage.ChangeMap(cfg.StartMap); err != nil {
		return nil, fmt.Errorf("game: start map: %w", err)
	}
	entity.NewActor(s.world, s.player).SetPosition(s.stage.PlayerSpawn())

	if err := cutscene.RegisterBuiltins(s.registry); err != nil {
		return nil, err
	}
	if err := s.loadCutscenes(false); err != nil {
		return nil, err
	}
	items, err := prefabs.LoadItems()
	if err != nil {
		return nil, err
	}

	s.sched = theater.NewScheduler(logger.WithPrefix("scheduler"))
	dcfg := cutscene.Config{
		TileSize:     cfg.TileSize,
		Style:        opts.Style,
		NormalFade:   fadeTiming(cfg.Fades.Normal, theater.NormalFade),
		TeleportFade: fadeTiming(cfg.Fades.Teleport, theater.TeleportFade),
		ItemColors:   items.Colors(),
	}
	env := cutscene.Env{
		Scheduler: s.sched,
		Stage:     s.stage,
		Camera:    entity.NewCameraView(s.world, s.camera),
		Controls:  entity.NewControls(s.world),
		Inventory: recordingInventory{s: s},
	}
	s.director = cutscene.NewDirector(dcfg, env, s.registry, logger.WithPrefix("cutscene"))
	s.director.OnFinish(s.recordFinished)

	if opts.Input != nil {
		s.input = system.NewInputSystemFrom(opts.Input)
	} else {
		s.input = system.NewInputSystem()
	}
	s.systems = ecs.NewScheduler(
		system.NewPlayerControllerSystem(s.director.Blocking, s.controlled),
		system.NewTriggerSystem(s.director.Blocking),
		system.NewPhysicsSystem(cfg.DT()),
		system.NewCameraSystem(),
	)
	return s, nil
}

func (s *Session) spawnPlayer() error {
	player, err := entity.BuildActor(s.world, "player", cutscene.PlayerName, common.Vec{}, common.FacingDown)
	if err != nil {
		return fmt.Errorf("game: player: %w", err)
	}
	s.player = player
	if p, ok := ecs.Get(s.world, player, component.PlayerComponent); ok && s.cfg.PlayerSpeed > 0 {
		p.MoveSpeed = s.cfg.PlayerSpeed
	}
	if s.store == nil {
		return nil
	}
	totals, err := s.store.ItemTotals()
	if err != nil {
		return fmt.Errorf("game: restore inventory: %w", err)
	}
	inv := entity.NewInventory(s.world)
	for item, n := range totals {
		inv.Give(item, n)
	}
	return nil
}

func fadeTiming(f config.Fade, def theater.FadeTiming) theater.FadeTiming {
	return theater.FadeTiming{Out: f.Out, Hold: f.Hold, In: f.In, Color: def.Color}
}

// loadCutscenes compiles every scripted cutscene in cutscenes.yaml. Entries
// without a script must already be registered in Go.
func (s *Session) loadCutscenes(replace bool) error {
	table, err := prefabs.LoadCutscenes()
	if err != nil {
		return err
	}
	for _, c := range table.Cutscenes {
		if c.Script == "" {
			if _, ok := s.registry.Lookup(c.Name); !ok {
				return fmt.Errorf("game: cutscene %q has no script and no Go implementation", c.Name)
			}
			continue
		}
		src, err := prefabs.LoadScript(c.Script)
		if err != nil {
			return err
		}
		if err := cutscene.RegisterScript(s.registry, c.Name, src, replace); err != nil {
			return fmt.Errorf("game: cutscene %q: %w", c.Name, err)
		}
	}
	s.cutscenes = table
	return nil
}

func (s *Session) controlled(e ecs.Entity) bool {
	return s.sched.HasControl(entity.NewActor(s.world, e))
}

// Update advances the session one frame. Input is read first so dialog
// commands see this frame's presses.
func (s *Session) Update() {
	s.frames++
	dt := s.cfg.DT()

	s.input.Update(s.world)
	s.director.Tick(dt)
	s.sched.Tick(dt)
	s.systems.Update(s.world)
	s.handleEvents()
}

func (s *Session) Draw(screen *ebiten.Image) {
	s.render.Draw(s.world, screen)
	camX, camY, _ := s.render.View(s.world)
	s.sched.Draw(screen, camX, camY)
}

// Cue starts a cutscene by name, ignoring whether it was already played.
func (s *Session) Cue(name string) error {
	return s.director.Cue(name)
}

func (s *Session) handleEvents() {
	for _, evt := range s.world.Events().Drain() {
		if evt.Type != ecs.EventCueCutscene {
			continue
		}
		cue, ok := evt.Data.(ecs.CutsceneCue)
		if !ok {
			continue
		}
		s.cueFromTrigger(cue)
	}
}

func (s *Session) cueFromTrigger(cue ecs.CutsceneCue) {
	if spec, ok := s.cutscenes.Find(cue.Cutscene); ok && spec.Once && s.played(cue.Cutscene) {
		s.logger.Debug("cutscene already played", "name", cue.Cutscene, "trigger", cue.Trigger)
		return
	}
	if err := s.director.Cue(cue.Cutscene); err != nil {
		s.logger.Warn("trigger cue", "trigger", cue.Trigger, "err", err)
		return
	}
	if cue.Once && s.store != nil {
		if err := s.store.MarkTriggerFired(s.stage.MapName(), cue.Trigger); err != nil {
			s.logger.Error("record trigger", "trigger", cue.Trigger, "err", err)
		}
	}
}

func (s *Session) played(name string) bool {
	if s.store == nil {
		return false
	}
	ok, err := s.store.Played(name)
	if err != nil {
		s.logger.Error("read progress", "name", name, "err", err)
		return false
	}
	return ok
}

func (s *Session) recordFinished(f cutscene.Finished) {
	if f.Aborted || s.store == nil {
		return
	}
	if err := s.store.MarkPlayed(f.Name, f.RunID); err != nil {
		s.logger.Error("record cutscene", "name", f.Name, "err", err)
	}
}

// Reload applies edits reported by the prefab watcher. Scripts are
// recompiled in place; a cutscene that is running keeps its old program.
func (s *Session) Reload(changes []prefabs.Change) {
	var scripts, specs bool
	for _, c := range changes {
		switch c.Kind {
		case prefabs.ChangeScript:
			scripts = true
		case prefabs.ChangeSpec:
			specs = true
		case prefabs.ChangeLevel:
			if s.stage.MapName()+".json" == filepath.Base(c.Path) {
				s.logger.Info("current map changed on disk; it reloads on the next map change", "path", c.Path)
			}
		}
	}
	if !scripts && !specs {
		return
	}
	if err := s.loadCutscenes(true); err != nil {
		s.logger.Error("reload cutscenes", "err", err)
		return
	}
	s.logger.Info("cutscenes reloaded")
}

func (s *Session) World() *ecs.World                { return s.world }
func (s *Session) Stage() *Stage                    { return s.stage }
func (s *Session) Scheduler() *theater.Scheduler    { return s.sched }
func (s *Session) Director() *cutscene.Director     { return s.director }
func (s *Session) Cutscenes() prefabs.CutsceneTable { return s.cutscenes }
func (s *Session) Frames() int                      { return s.frames }

func (s *Session) Player() entity.Actor { return entity.NewActor(s.world, s.player) }

func (s *Session) Camera() entity.Camera { return entity.NewCameraView(s.world, s.camera) }

// SetDebug toggles trigger outlines.
func (s *Session) SetDebug(on bool) { s.render.Debug = on }

// recordingInventory gives items to the player and records each grant.
type recordingInventory struct {
	s *Session
}

func (r recordingInventory) Give(item string, count int) {
	entity.NewInventory(r.s.world).Give(item, count)
	if r.s.store == nil || count <= 0 {
		return
	}
	name, _ := r.s.director.Current()
	if err := r.s.store.RecordItem(item, count, name); err != nil {
		r.s.logger.Error("record item", "item", item, "err", err)
	}
}

// ErrTimeout is returned by RunUntilIdle when the frame budget runs out.
var ErrTimeout = errors.New("game: cutscene did not finish")

// RunUntilIdle steps frames until no cutscene is running and the scheduler
// has drained, or maxFrames have passed.
func (s *Session) RunUntilIdle(maxFrames int) error {
	for i := 0; i < maxFrames; i++ {
		if !s.director.Blocking() {
			return nil
		}
		s.Update()
	}
	if s.director.Blocking() {
		return ErrTimeout
	}
	return nil
}
