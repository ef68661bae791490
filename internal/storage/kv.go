package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// SettingsKey is the key the pomodoro configuration is stored under.
const SettingsKey = "pomodoroSettings"

var (
	// ErrConfigLoad indicates the persisted configuration was unusable and
	// defaults were substituted.
	ErrConfigLoad = errors.New("config load")
	// ErrConfigSave indicates the configuration could not be persisted.
	ErrConfigSave = errors.New("config save")
	// ErrUnknownDriver is returned by Open for an unsupported driver name.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// KeyValue is a small string-keyed blob store.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"
)

// Open returns the backend named by driver rooted at dataDir.
func Open(driver, dataDir string) (KeyValue, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSQLite:
		return NewSQLite(filepath.Join(dataDir, "pomodoro.db"))
	case DriverFile:
		return NewFile(dataDir), nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
