// Package config loads game settings from YAML with environment overrides.
package config

import (
	"fmt"
	"strings"
)

// Config is every tunable the game reads at startup.
type Config struct {
	Window        Window  `yaml:"window"`
	TPS           int     `yaml:"tps"            env:"THEATER_TPS"`
	TileSize      float64 `yaml:"tile_size"      env:"THEATER_TILE_SIZE"`
	StartMap      string  `yaml:"start_map"      env:"THEATER_START_MAP"`
	StartCutscene string  `yaml:"start_cutscene" env:"THEATER_START_CUTSCENE"`
	Dialog        Dialog  `yaml:"dialog"`
	Fades         Fades   `yaml:"fades"`

	// PlayerSpeed overrides the player prefab's move speed when positive.
	PlayerSpeed float64 `yaml:"player_speed" env:"THEATER_PLAYER_SPEED"`
	ProgressDB  string  `yaml:"progress_db"  env:"THEATER_PROGRESS_DB"`
	LogLevel    string  `yaml:"log_level"    env:"THEATER_LOG_LEVEL"`
	HotReload   bool    `yaml:"hot_reload"   env:"THEATER_HOT_RELOAD"`
	Debug       bool    `yaml:"debug"        env:"THEATER_DEBUG"`
}

type Window struct {
	Width  int     `yaml:"width"  env:"THEATER_WINDOW_WIDTH"`
	Height int     `yaml:"height" env:"THEATER_WINDOW_HEIGHT"`
	Scale  float64 `yaml:"scale"  env:"THEATER_WINDOW_SCALE"`
	Title  string  `yaml:"title"`
}

// Dialog delays are simulated milliseconds per revealed character.
type Dialog struct {
	CharDelay float64 `yaml:"char_delay" env:"THEATER_DIALOG_CHAR_DELAY"`
	FastDelay float64 `yaml:"fast_delay" env:"THEATER_DIALOG_FAST_DELAY"`
	Lines     int     `yaml:"lines"      env:"THEATER_DIALOG_LINES"`
}

type Fades struct {
	Normal   Fade `yaml:"normal"`
	Teleport Fade `yaml:"teleport"`
}

// Fade lengths are in simulated milliseconds.
type Fade struct {
	Out  float64 `yaml:"out"`
	Hold float64 `yaml:"hold"`
	In   float64 `yaml:"in"`
}

// DT is the simulated milliseconds advanced per update.
func (c Config) DT() float64 {
	return 1000 / float64(c.TPS)
}

func (c Config) Validate() error {
	var problems []string
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		problems = append(problems, fmt.Sprintf("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.TPS <= 0 {
		problems = append(problems, fmt.Sprintf("tps %d", c.TPS))
	}
	if c.TileSize <= 0 {
		problems = append(problems, fmt.Sprintf("tile_size %v", c.TileSize))
	}
	if c.Dialog.CharDelay < 0 || c.Dialog.FastDelay < 0 || c.Dialog.Lines < 0 {
		problems = append(problems, "negative dialog setting")
	}
	for name, f := range map[string]Fade{"normal": c.Fades.Normal, "teleport": c.Fades.Teleport} {
		if f.Out < 0 || f.Hold < 0 || f.In < 0 {
			problems = append(problems, "negative "+name+" fade")
		}
	}
	if c.StartMap == "" {
		problems = append(problems, "empty start_map")
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: invalid %s", strings.Join(problems, ", "))
	}
	return nil
}
