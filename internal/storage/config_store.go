package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"pomodoro/internal/core/model"
)

type persistedConfig struct {
	FocusTime            *float64 `json:"focusTime"`
	ShortBreakTime       *float64 `json:"shortBreakTime"`
	LongBreakTime        *float64 `json:"longBreakTime"`
	LongBreakInterval    *float64 `json:"longBreakInterval"`
	NotificationsEnabled *bool    `json:"notificationsEnabled"`
	SoundEnabled         *bool    `json:"soundEnabled"`
}

// ConfigStore persists model.Config as JSON under SettingsKey.
type ConfigStore struct {
	kv  KeyValue
	key string
}

// NewConfigStore wraps kv.
func NewConfigStore(kv KeyValue) *ConfigStore {
	return &ConfigStore{kv: kv, key: SettingsKey}
}

// Load reads the configuration. Defaults are returned when nothing is
// stored; they are also returned, together with an ErrConfigLoad error,
// when the stored value cannot be read or fails validation.
func (store *ConfigStore) Load(ctx context.Context) (model.Config, error) {
	defaults := model.DefaultConfig()

	raw, found, err := store.kv.Get(ctx, store.key)
	if err != nil {
		return defaults, fmt.Errorf("%w: read %s: %v", ErrConfigLoad, store.key, err)
	}
	if !found {
		return defaults, nil
	}

	config, err := decodeConfig(raw)
	if err != nil {
		return defaults, fmt.Errorf("%w: %v", ErrConfigLoad, err)
	}
	return config, nil
}

// Save writes config.
func (store *ConfigStore) Save(ctx context.Context, config model.Config) error {
	serialized, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrConfigSave, err)
	}
	if err := store.kv.Set(ctx, store.key, serialized); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrConfigSave, store.key, err)
	}
	return nil
}

func decodeConfig(raw []byte) (model.Config, error) {
	var fileData persistedConfig
	if err := json.Unmarshal(raw, &fileData); err != nil {
		return model.Config{}, fmt.Errorf("parse settings json: %w", err)
	}

	config := model.DefaultConfig()
	fields := []struct {
		name   string
		value  *float64
		target *int
	}{
		{"focusTime", fileData.FocusTime, &config.FocusMinutes},
		{"shortBreakTime", fileData.ShortBreakTime, &config.ShortBreakMinutes},
		{"longBreakTime", fileData.LongBreakTime, &config.LongBreakMinutes},
		{"longBreakInterval", fileData.LongBreakInterval, &config.LongBreakInterval},
	}
	for _, field := range fields {
		if field.value == nil {
			return model.Config{}, fmt.Errorf("missing %s", field.name)
		}
		value := *field.value
		if value <= 0 || value != math.Trunc(value) || value > model.MaxValue {
			return model.Config{}, fmt.Errorf("invalid %s: %v", field.name, value)
		}
		*field.target = int(value)
	}

	if fileData.NotificationsEnabled != nil {
		config.NotificationsEnabled = *fileData.NotificationsEnabled
	}
	if fileData.SoundEnabled != nil {
		config.SoundEnabled = *fileData.SoundEnabled
	}
	return config, nil
}
