package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/engine-cycle/internal/platform/tui"
)

var (
	flagViewModel string
	flagViewFPS   int
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Interactive terminal view",
	Long: `Animates the slider-crank mechanism next to a P-V or P-θ chart and
live performance figures.

Controls:
  ↑/↓ k/j     - rpm
  ←/→ h/l     - load
  [ ]         - ignition advance
  + -         - compression ratio
  1 2 3       - idle / cruise / full preset
  m           - next pressure model
  Tab         - toggle P-V / P-θ chart
  Space       - pause
  .           - step one frame
  e           - export the cycle as CSV
  Ctrl+S      - save a text screenshot
  r           - reset parameters
  ?           - full help
  q/Ctrl+C    - quit`,
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&flagViewModel, "model", "", "Pressure model ID (default from config)")
	viewCmd.Flags().IntVar(&flagViewFPS, "fps", 0, "Frames per second (default from config)")
}

func runView(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	display := s.config.Display
	if flagViewModel != "" {
		display.Model = flagViewModel
	}
	if flagViewFPS > 0 {
		display.FPS = flagViewFPS
	}

	// Get terminal size; the first resize message replaces it
	width, height := 0, 0
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	return tui.Run(s.engine, tui.Options{
		Display: display,
		Width:   width,
		Height:  height,
	})
}
