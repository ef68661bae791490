package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"pomodoro/internal/bootstrap"
	"pomodoro/internal/core/model"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errNoSettingsChanged = errors.New("no settings given")

func newSettingsCmd(flags *bootstrap.Flags) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Show or change the timer settings"}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := loadApp(*flags, os.Stderr)
			if err != nil {
				return err
			}
			defer application.Close()
			return writeConfig(cmd.OutOrStdout(), application.Controller.Config(), format)
		},
	}
	showCmd.Flags().StringVar(&format, "format", "text", "output format: text|json|yaml")

	var focus, shortBreak, longBreak, interval int
	var notifications, sound bool
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			patch := model.Patch{}
			for _, field := range []struct {
				name   string
				value  int
				target **int
			}{
				{"focus", focus, &patch.FocusMinutes},
				{"short", shortBreak, &patch.ShortBreakMinutes},
				{"long", longBreak, &patch.LongBreakMinutes},
				{"interval", interval, &patch.LongBreakInterval},
			} {
				if !cmd.Flags().Changed(field.name) {
					continue
				}
				if !model.InRange(field.value) {
					return fmt.Errorf("--%s must be between 1 and %d %s", field.name, model.MaxValue, unitFor(field.name))
				}
				*field.target = model.Int(field.value)
			}
			if cmd.Flags().Changed("notifications") {
				patch.NotificationsEnabled = model.Bool(notifications)
			}
			if cmd.Flags().Changed("sound") {
				patch.SoundEnabled = model.Bool(sound)
			}
			if patch.Empty() {
				return errNoSettingsChanged
			}

			application, err := loadApp(*flags, os.Stderr)
			if err != nil {
				return err
			}
			defer application.Close()
			return writeConfig(cmd.OutOrStdout(), application.Controller.UpdateSettings(patch), "text")
		},
	}
	setCmd.Flags().IntVar(&focus, "focus", 0, "focus minutes")
	setCmd.Flags().IntVar(&shortBreak, "short", 0, "short break minutes")
	setCmd.Flags().IntVar(&longBreak, "long", 0, "long break minutes")
	setCmd.Flags().IntVar(&interval, "interval", 0, "focus sessions before a long break")
	setCmd.Flags().BoolVar(&notifications, "notifications", true, "show desktop notifications")
	setCmd.Flags().BoolVar(&sound, "sound", true, "play the completion sound")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := loadApp(*flags, os.Stderr)
			if err != nil {
				return err
			}
			defer application.Close()
			config := application.Controller.UpdateSettings(model.PatchFrom(model.DefaultConfig()))
			return writeConfig(cmd.OutOrStdout(), config, "text")
		},
	}

	settings.AddCommand(showCmd, setCmd, resetCmd)
	return settings
}

func unitFor(flag string) string {
	if flag == "interval" {
		return "sessions"
	}
	return "minutes"
}

func writeConfig(out io.Writer, config model.Config, format string) error {
	switch strings.ToLower(format) {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(config)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(config); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return encoder.Close()
	case "text", "":
		_, err := fmt.Fprintf(out,
			"focus:               %d min\nshort break:         %d min\nlong break:          %d min\nlong break interval: %d\nnotifications:       %s\nsound:               %s\n",
			config.FocusMinutes,
			config.ShortBreakMinutes,
			config.LongBreakMinutes,
			config.LongBreakInterval,
			onOff(config.NotificationsEnabled),
			onOff(config.SoundEnabled))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func onOff(value bool) string {
	if value {
		return "on"
	}
	return "off"
}
