package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/finpulse/internal/config"
	"github.com/theirongolddev/finpulse/internal/logger"
	"github.com/theirongolddev/finpulse/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// The dashboard owns the terminal; send logs to a file instead of stderr.
	if err := os.MkdirAll(config.DataDir(), 0o750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	logPath := filepath.Join(config.DataDir(), "finpulse-tui.log")
	if err := logger.Init(cfg.Log.Development, logger.LogLevel(cfg.Log.Level), logPath); err != nil {
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	app := tui.NewApp(svc, subject())
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
