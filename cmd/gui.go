package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"pomodoro/internal/alert"
	"pomodoro/internal/bootstrap"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/schedule"
	"pomodoro/internal/platform"
	"pomodoro/internal/ui/display"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
)

func newGUICmd(flags *bootstrap.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Run the desktop timer (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGUI(cmd.Context(), *flags)
		},
	}
}

func runGUI(ctx context.Context, flags bootstrap.Flags) error {
	options, err := bootstrap.LoadOptions(flags)
	if err != nil {
		return err
	}
	guard, err := platform.AcquireSingleInstance(bootstrap.AppName, options.DataDir)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		if showErr := platform.RequestShow(bootstrap.AppName, options.DataDir); showErr != nil {
			return fmt.Errorf("start desktop timer: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("start desktop timer: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	application, err := bootstrap.NewWithOptions(options, os.Stderr, schedule.NewTickerScheduler())
	if err != nil {
		return err
	}
	defer func() {
		_ = application.Close()
	}()
	slog.SetDefault(application.Logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fyneApp := app.NewWithID("io.pomodoro.timer")
	fyneApp.SetIcon(resources.MustLogo("pomodoro.svg"))
	controller := application.Controller

	notifier := application.Notifier(fyneApp)
	if closer, ok := notifier.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}
	dispatcher := alert.NewDispatcher(notifier, application.Player(nil), application.Logger)
	go dispatcher.Run(ctx, controller.Subscribe(8))

	var prefsWindow *preferences.Window
	timerWindow := display.New(fyneApp, controller, func() {
		prefsWindow.UpdateConfig(controller.Config())
		prefsWindow.Show()
	})
	prefsWindow = preferences.New(fyneApp, controller.Config(), func(patch model.Patch) {
		controller.UpdateSettings(patch)
	})
	go timerWindow.Watch(ctx, controller.Subscribe(64))
	guard.OnShow(func() {
		fyne.Do(timerWindow.Show)
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow:   timerWindow.Show,
			OnToggle: controller.Toggle,
			OnReset:  controller.Reset,
			OnStop: func() {
				timerWindow.Show()
				timerWindow.ConfirmStop()
			},
			OnPreferences: func() {
				prefsWindow.UpdateConfig(controller.Config())
				prefsWindow.Show()
			},
			OnQuit: fyneApp.Quit,
		})
		trayManager.Update(controller.State())
		timerWindow.HideOnClose()

		events := controller.Subscribe(64)
		go func() {
			for event := range events {
				fyne.Do(func() {
					trayManager.Update(event.State)
				})
			}
		}()
	} else {
		application.Logger.Info("system tray unsupported; closing the window quits")
	}

	go func() {
		<-ctx.Done()
		fyne.Do(fyneApp.Quit)
	}()

	application.Logger.Info("desktop timer started", "data_dir", application.Options.DataDir)
	timerWindow.ShowAndRun()
	return nil
}
