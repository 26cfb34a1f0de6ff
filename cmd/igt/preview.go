package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/igt/internal/config"
	"github.com/jmylchreest/igt/internal/tui"
)

var previewOpts struct {
	logFile string
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Run the overlay in the terminal",
	Long: `Run the overlay in the terminal with a local stopwatch.

The overlay keys from the config work as they do in igtd, and the mouse
drags the timer in move mode. Positions are saved to the config file.

Keys:
  space      Start or pause the stopwatch
  backspace  Reset the stopwatch
  ?          Toggle help
  q          Quit`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewOpts.logFile, "log-file", "",
		"Write logs to this file (the terminal is in use)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	store, err := config.OpenStore(globalOpts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The preview owns the terminal, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if previewOpts.logFile != "" {
		f, err := os.OpenFile(previewOpts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	level := slog.LevelInfo
	if globalOpts.verbose {
		level = slog.LevelDebug
	}
	previewLogger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	return tui.Run(tui.Options{Store: store, Logger: previewLogger})
}
