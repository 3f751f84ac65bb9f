package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/theater/assets"
	"github.com/milk9111/theater/config"
	"github.com/milk9111/theater/game"
	"github.com/milk9111/theater/levels"
	"github.com/milk9111/theater/prefabs"
	"github.com/milk9111/theater/progress"
	"github.com/milk9111/theater/theater"
)

const dialogFontSize = 12

type Game struct {
	cfg     config.Config
	logger  *log.Logger
	session *game.Session
	store   *progress.Store
	watcher *prefabs.Watcher
	debug   bool
}

func NewGame(cfg config.Config, logger *log.Logger) (*Game, error) {
	store, err := progress.Open(cfg.ProgressDB)
	if err != nil {
		return nil, err
	}

	face, err := assets.DialogFace(dialogFontSize)
	if err != nil {
		store.Close()
		return nil, err
	}
	style := theater.Style{
		Face:      face,
		ScreenW:   float64(cfg.Window.Width),
		ScreenH:   float64(cfg.Window.Height),
		Lines:     cfg.Dialog.Lines,
		CharDelay: cfg.Dialog.CharDelay,
		FastDelay: cfg.Dialog.FastDelay,
	}

	session, err := game.New(game.Options{Config: cfg, Logger: logger, Store: store, Style: style})
	if err != nil {
		store.Close()
		return nil, err
	}

	g := &Game{cfg: cfg, logger: logger, session: session, store: store, debug: cfg.Debug}
	if cfg.HotReload {
		// Only a checkout has the data directories; installed builds run
		// from the embedded copies and skip the watcher.
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.ScriptDir, levels.Dir)
		if err != nil {
			logger.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}

	if cfg.StartCutscene != "" {
		if err := session.Cue(cfg.StartCutscene); err != nil {
			g.Close()
			return nil, fmt.Errorf("start cutscene: %w", err)
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
		g.session.SetDebug(g.debug)
	}
	if g.watcher != nil {
		if changes := g.watcher.Poll(); len(changes) > 0 {
			g.session.Reload(changes)
		}
		select {
		case err := <-g.watcher.Errors:
			g.logger.Warn("watch", "err", err)
		default:
		}
	}

	g.session.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.session.Draw(screen)
	if !g.debug {
		return
	}
	name, _ := g.session.Director().Current()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  map: %s  cutscene: %s  queued: %d",
		ebiten.ActualFPS(), g.session.Stage().MapName(), name, g.session.Scheduler().Pending()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) Close() error {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	return g.store.Close()
}
