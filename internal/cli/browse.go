package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/evcraddock/house-market/internal/logging"
	"github.com/evcraddock/house-market/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive terminal UI",
		Long: `Open the interactive terminal UI.

Logs go to ~/.config/hm/browse.log while the UI owns the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}

			logFile, err := openBrowseLog()
			if err != nil {
				return err
			}
			defer closeBrowseLog(logFile)
			prev := slog.Default()
			slog.SetDefault(logging.New(logFile, os.Getenv(envDevMode) == "true", os.Getenv(envLogLevel)))
			defer slog.SetDefault(prev)

			app := tui.NewApp(cmd.Context(), c, getUserID())
			p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running terminal UI: %w", err)
			}
			return nil
		},
	}
}

// closeBrowseLog closes the TUI log file, logging any failure.
func closeBrowseLog(f *os.File) {
	if err := f.Close(); err != nil {
		slog.Warn("closing browse log", "error", err)
	}
}

// openBrowseLog opens the log file next to the config file.
func openBrowseLog() (*os.File, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "browse.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
