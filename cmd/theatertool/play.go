package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/milk9111/theater/config"
	"github.com/milk9111/theater/cutscene"
	"github.com/milk9111/theater/ecs/component"
	"github.com/milk9111/theater/game"
	"github.com/milk9111/theater/theater"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

// glyphWidth approximates the dialog font's advance so headless runs page
// text the same way the window does.
const glyphWidth = 7

var (
	flagPlayMap    string
	flagPlayFrames int
	flagPlayWidth  int
)

var (
	pageStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

var playCmd = &cobra.Command{
	Use:   "play <cutscene>",
	Short: "Run a cutscene headless and print its dialog",
	Long: `Run a cutscene without opening a window. Every dialog is confirmed
as soon as it is shown and questions take their first option.

Examples:
  theatertool play welcome
  theatertool play example --map town --frames 20000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagPlayMap != "" {
			cfg.StartMap = flagPlayMap
		}
		logger, err := newLogger()
		if err != nil {
			return err
		}
		return play(cmd.OutOrStdout(), cfg, logger, args[0], flagPlayFrames, flagPlayWidth)
	},
}

func init() {
	playCmd.Flags().StringVar(&flagPlayMap, "map", "", "Map to play on (overrides start_map)")
	playCmd.Flags().IntVar(&flagPlayFrames, "frames", 60*60*5, "Give up after this many frames")
	playCmd.Flags().IntVar(&flagPlayWidth, "width", 60, "Wrap transcript text at this many columns")
}

func play(out io.Writer, cfg config.Config, logger *log.Logger, name string, maxFrames, width int) error {
	cfg.HotReload = false

	style := theater.Style{
		ScreenW:   float64(cfg.Window.Width),
		ScreenH:   float64(cfg.Window.Height),
		Lines:     cfg.Dialog.Lines,
		CharDelay: cfg.Dialog.CharDelay,
		FastDelay: cfg.Dialog.FastDelay,
		Measure: func(s string) float64 {
			return float64(utf8.RuneCountInString(s) * glyphWidth)
		},
		OnPage: func(lines []string) {
			text := wordwrap.String(strings.Join(lines, " "), width)
			fmt.Fprintln(out, pageStyle.Render(text))
		},
	}

	s, err := game.New(game.Options{
		Config: cfg,
		Logger: logger,
		Style:  style,
		Input:  func() component.Input { return component.Input{Confirm: true} },
	})
	if err != nil {
		return err
	}

	var done *cutscene.Finished
	s.Director().OnFinish(func(f cutscene.Finished) { done = &f })

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%s on %s", name, s.Stage().MapName())))
	if err := s.Cue(name); err != nil {
		return err
	}
	if err := s.RunUntilIdle(maxFrames); err != nil {
		return fmt.Errorf("%s: %w after %d frames", name, err, s.Frames())
	}

	p := s.Player().Position()
	summary := fmt.Sprintf("finished after %d frames; map %s; player at %.0f,%.0f",
		s.Frames(), s.Stage().MapName(), p.X, p.Y)
	if done != nil && done.Aborted {
		summary = fmt.Sprintf("aborted after %d frames", done.Frames)
	}
	fmt.Fprintln(out, dimStyle.Render(summary))
	if done != nil && done.Aborted {
		return fmt.Errorf("%s aborted", name)
	}
	return nil
}
