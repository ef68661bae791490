package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pomodoro/internal/alert"
	"pomodoro/internal/bootstrap"
	"pomodoro/internal/core/schedule"
	"pomodoro/internal/ui/tui"

	"github.com/spf13/cobra"
)

const tuiLogFile = "pomodoro.log"

func newTUICmd(flags *bootstrap.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), *flags)
		},
	}
}

func runTUI(ctx context.Context, flags bootstrap.Flags) error {
	options, err := bootstrap.LoadOptions(flags)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file.
	if err := os.MkdirAll(options.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(options.DataDir, tuiLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	application, err := bootstrap.NewWithOptions(options, logFile, schedule.NewTickerScheduler())
	if err != nil {
		return err
	}
	defer func() {
		_ = application.Close()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	notifier := application.Notifier(nil)
	if closer, ok := notifier.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}
	dispatcher := alert.NewDispatcher(notifier, application.Player(os.Stderr), application.Logger)
	go dispatcher.Run(ctx, application.Controller.Subscribe(8))

	application.Logger.Info("terminal timer started")
	return tui.Run(ctx, application.Controller)
}
