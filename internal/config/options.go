package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const optionsFileName = "options.yaml"

// Options are the application's runtime options. They are separate from
// the pomodoro durations, which live in the storage backend.
type Options struct {
	Storage      string        `yaml:"storage" split_words:"true"`
	DataDir      string        `yaml:"data_dir" split_words:"true"`
	LogLevel     string        `yaml:"log_level" split_words:"true"`
	LogFormat    string        `yaml:"log_format" split_words:"true"`
	TickInterval time.Duration `yaml:"tick_interval" split_words:"true"`
	Notifier     string        `yaml:"notifier" split_words:"true"`
	Sound        string        `yaml:"sound" split_words:"true"`
	SoundCommand string        `yaml:"sound_command" split_words:"true"`
}

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "POMODORO"

// Defaults returns the options used when neither a file nor the
// environment sets a value.
func Defaults(configDir string) Options {
	return Options{
		Storage:      "sqlite",
		DataDir:      configDir,
		LogLevel:     "info",
		LogFormat:    "text",
		TickInterval: time.Second,
		Notifier:     "auto",
		Sound:        "auto",
	}
}

// Load layers defaults, <configDir>/options.yaml and POMODORO_*
// environment variables, in that order.
func Load(configDir string) (Options, error) {
	options := Defaults(configDir)

	rawData, err := os.ReadFile(filepath.Join(configDir, optionsFileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(rawData, &options); err != nil {
			return options, fmt.Errorf("parse options yaml: %w", err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return options, fmt.Errorf("read options file: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &options); err != nil {
		return options, fmt.Errorf("read environment: %w", err)
	}

	if options.DataDir == "" {
		options.DataDir = configDir
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	return options, nil
}

// Path returns the options file location for configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, optionsFileName)
}
