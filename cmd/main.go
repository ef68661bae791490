package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"pomodoro/internal/bootstrap"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags bootstrap.Flags

	root := &cobra.Command{
		Use:           "pomodoro",
		Short:         "Pomodoro focus timer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGUI(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.DataDir, "data-dir", "", "directory for options, settings and logs (default: user config dir)")
	root.PersistentFlags().StringVar(&flags.Storage, "storage", "", "settings backend: sqlite|file|memory")
	root.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "log level: debug|info|warn|error")
	root.PersistentFlags().BoolVar(&flags.Ephemeral, "ephemeral", false, "keep settings in memory only")

	root.AddCommand(newGUICmd(&flags))
	root.AddCommand(newTUICmd(&flags))
	root.AddCommand(newSettingsCmd(&flags))
	return root
}

func loadApp(flags bootstrap.Flags, logOut io.Writer) (*bootstrap.App, error) {
	return bootstrap.New(flags, logOut)
}
