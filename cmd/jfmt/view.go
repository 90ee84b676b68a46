package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	charmlog "charm.land/log/v2"
	tea "charm.land/bubbletea/v2"
)

func newViewCmd() *cobra.Command {
	var debugLog string

	cmd := &cobra.Command{
		Use:   "view <file.json>",
		Short: "Preview a formatted JSON/JSONC file interactively",
		Long: `view renders a formatted JSON/JSONC file in the terminal and lets you
toggle formatting options live, to see their effect before committing to a
config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runView(args[0], debugLog)
		},
	}

	cmd.Flags().StringVar(&debugLog, "debug-log", "", "write TUI debug logs to this file instead of discarding them")

	return cmd
}

func runView(path, debugLog string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	logger, closeLog := newTUILogger(debugLog)
	defer closeLog()

	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		cols, rows = 80, 24
	}

	profile := colorprofile.Detect(os.Stdout, os.Environ())
	logger.Debug("detected color profile", "profile", profile.String())

	m := newViewModel(string(src), path, cols, rows, logger)

	p := tea.NewProgram(m)

	_, err = p.Run()
	if err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}

	return nil
}

// newTUILogger builds a [*charmlog.Logger] writing to path, or one
// discarding output when path is empty, since a bubbletea program owns
// stdout/stderr while it runs and cannot share them with ordinary logging.
func newTUILogger(path string) (*charmlog.Logger, func()) {
	if path == "" {
		return charmlog.New(nilWriter{}), func() {}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return charmlog.New(nilWriter{}), func() {}
	}

	logger := charmlog.NewWithOptions(f, charmlog.Options{ReportTimestamp: true})

	return logger, func() { f.Close() }
}

type nilWriter struct{}

func (nilWriter) Write(p []byte) (int, error) { return len(p), nil }
