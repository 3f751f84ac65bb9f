// theater runs the top-down cutscene demo.
//
// Usage:
//
//	theater                      - Start on the configured map
//	theater --map cave           - Start on another map
//	theater --cutscene example   - Cue a cutscene as soon as the map loads
//
// Flags:
//
//	--config <path>  - Config file (default: ~/.theater/config.yaml, then ./configs/config.yaml)
//	--debug          - Show trigger outlines and the debug overlay (toggle with F3)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/theater/config"
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagMap      string
	flagCutscene string
	flagDebug    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "theater",
	Short:         "Top-down cutscene demo",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGame,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a config file")
	rootCmd.Flags().StringVar(&flagMap, "map", "", "Map to start on (overrides start_map)")
	rootCmd.Flags().StringVar(&flagCutscene, "cutscene", "", "Cutscene to cue on start")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug drawing")
}

func runGame(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagMap != "" {
		cfg.StartMap = flagMap
	}
	if flagCutscene != "" {
		cfg.StartCutscene = flagCutscene
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = flagDebug
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	g, err := NewGame(cfg, logger)
	if err != nil {
		return err
	}
	defer g.Close()

	title := cfg.Window.Title
	if title == "" {
		title = "theater"
	}
	ebiten.SetWindowSize(int(float64(cfg.Window.Width)*cfg.Window.Scale), int(float64(cfg.Window.Height)*cfg.Window.Scale))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	return ebiten.RunGame(g)
}

func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "theater",
		Level:           lvl,
	})
	log.SetDefault(logger)
	return logger, nil
}
