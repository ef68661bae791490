package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"pomodoro/internal/alert"
	"pomodoro/internal/config"
	"pomodoro/internal/core/schedule"
	"pomodoro/internal/core/session"
	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"

	"fyne.io/fyne/v2"
)

// AppName names the config directory, the notification sender and the
// single-instance lock.
const AppName = "Pomodoro"

// Flags are the command-line overrides shared by every command.
type Flags struct {
	DataDir   string
	Storage   string
	LogLevel  string
	Ephemeral bool
}

// App holds the wired collaborators of one process.
type App struct {
	Options    config.Options
	Logger     *slog.Logger
	KV         storage.KeyValue
	Store      *storage.ConfigStore
	Controller *session.Controller
}

// LoadOptions resolves options from defaults, the options file, the
// environment and flags.
func LoadOptions(flags Flags) (config.Options, error) {
	configDir := flags.DataDir
	if configDir == "" {
		dir, err := platform.ConfigDir(AppName)
		if err != nil {
			return config.Options{}, err
		}
		configDir = dir
	}

	options, err := config.Load(configDir)
	if err != nil {
		return options, fmt.Errorf("load options: %w", err)
	}
	if flags.DataDir != "" {
		options.DataDir = flags.DataDir
	}
	if flags.Storage != "" {
		options.Storage = flags.Storage
	}
	if flags.LogLevel != "" {
		options.LogLevel = flags.LogLevel
	}
	if flags.Ephemeral {
		options.Storage = storage.DriverMemory
	}
	return options, nil
}

// New wires storage, the config store and the controller. logOut receives
// structured logs.
func New(flags Flags, logOut io.Writer) (*App, error) {
	options, err := LoadOptions(flags)
	if err != nil {
		return nil, err
	}
	return NewWithOptions(options, logOut, schedule.NewTickerScheduler())
}

// NewWithOptions wires an App from resolved options.
func NewWithOptions(options config.Options, logOut io.Writer, scheduler schedule.Scheduler) (*App, error) {
	logger := logging.New(logOut, options.LogLevel, options.LogFormat)

	kv, err := storage.Open(options.Storage, options.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", options.Storage, err)
	}
	store := storage.NewConfigStore(kv)

	controller := session.New(store, scheduler, session.Options{
		TickInterval: options.TickInterval,
		Logger:       logger,
	})

	logger.Debug("application wired",
		"storage", options.Storage,
		"data_dir", options.DataDir,
		"tick", options.TickInterval)

	return &App{
		Options:    options,
		Logger:     logger,
		KV:         kv,
		Store:      store,
		Controller: controller,
	}, nil
}

// Close stops the controller and releases storage.
func (app *App) Close() error {
	if app.Controller != nil {
		app.Controller.Close()
	}
	if app.KV != nil {
		return app.KV.Close()
	}
	return nil
}

// Notifier picks the notification backend from options. fyneApp may be
// nil when no desktop app is running.
func (app *App) Notifier(fyneApp fyne.App) alert.Notifier {
	kind := strings.ToLower(app.Options.Notifier)
	switch {
	case kind == "none":
		return alert.NopNotifier{}
	case kind == "desktop" && fyneApp != nil:
		return alert.NewDesktopNotifier(fyneApp)
	case kind == "dbus":
		return alert.NewDBusNotifier(AppName, "")
	case kind == "auto" && fyneApp != nil:
		return alert.NewDesktopNotifier(fyneApp)
	case kind == "auto" && runtime.GOOS == "linux":
		return alert.NewDBusNotifier(AppName, "")
	default:
		app.Logger.Warn("notifications unavailable", "notifier", app.Options.Notifier)
		return alert.NopNotifier{}
	}
}

// Player picks the sound backend from options. bell receives the
// terminal bell when no audio command is available; nil disables it.
func (app *App) Player(bell io.Writer) alert.Player {
	kind := strings.ToLower(app.Options.Sound)
	switch kind {
	case "none":
		return alert.NopPlayer{}
	case "bell":
		if bell != nil {
			return alert.NewBellPlayer(bell)
		}
		return alert.NopPlayer{}
	}

	player := alert.NewCommandPlayer(app.Options.SoundCommand, app.Options.DataDir)
	if player.Available() {
		return player
	}
	if kind == "auto" && bell != nil {
		return alert.NewBellPlayer(bell)
	}
	app.Logger.Warn("sound unavailable", "sound", app.Options.Sound)
	return alert.NopPlayer{}
}
