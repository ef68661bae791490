package model

// MaxValue bounds every numeric setting. A day is far beyond any real
// period and keeps TotalSeconds well inside int range.
const MaxValue = 24 * 60

// Config contains the user-editable pomodoro durations and toggles.
type Config struct {
	FocusMinutes         int  `json:"focusTime" yaml:"focus_minutes"`
	ShortBreakMinutes    int  `json:"shortBreakTime" yaml:"short_break_minutes"`
	LongBreakMinutes     int  `json:"longBreakTime" yaml:"long_break_minutes"`
	LongBreakInterval    int  `json:"longBreakInterval" yaml:"long_break_interval"`
	NotificationsEnabled bool `json:"notificationsEnabled" yaml:"notifications_enabled"`
	SoundEnabled         bool `json:"soundEnabled" yaml:"sound_enabled"`
}

// DefaultConfig returns the stock 25/5/15 cycle with a long break every
// fourth focus period.
func DefaultConfig() Config {
	return Config{
		FocusMinutes:         25,
		ShortBreakMinutes:    5,
		LongBreakMinutes:     15,
		LongBreakInterval:    4,
		NotificationsEnabled: true,
		SoundEnabled:         true,
	}
}

// Valid reports whether every numeric field is in [1, MaxValue].
func (config Config) Valid() bool {
	return InRange(config.FocusMinutes) &&
		InRange(config.ShortBreakMinutes) &&
		InRange(config.LongBreakMinutes) &&
		InRange(config.LongBreakInterval)
}

// InRange reports whether value is an acceptable numeric setting.
func InRange(value int) bool {
	return value > 0 && value <= MaxValue
}

// Minutes returns the configured length of mode in minutes.
func (config Config) Minutes(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return config.ShortBreakMinutes
	case ModeLongBreak:
		return config.LongBreakMinutes
	default:
		return config.FocusMinutes
	}
}

// TotalSeconds returns the full countdown for mode.
func (config Config) TotalSeconds(mode Mode) int {
	return config.Minutes(mode) * 60
}

// Interval returns the long break interval, never less than one.
func (config Config) Interval() int {
	if config.LongBreakInterval < 1 {
		return 1
	}
	return config.LongBreakInterval
}

// Patch is a partial Config. Nil fields are left untouched by Apply.
type Patch struct {
	FocusMinutes         *int  `json:"focusTime,omitempty"`
	ShortBreakMinutes    *int  `json:"shortBreakTime,omitempty"`
	LongBreakMinutes     *int  `json:"longBreakTime,omitempty"`
	LongBreakInterval    *int  `json:"longBreakInterval,omitempty"`
	NotificationsEnabled *bool `json:"notificationsEnabled,omitempty"`
	SoundEnabled         *bool `json:"soundEnabled,omitempty"`
}

// Apply merges patch into config. Numeric fields outside [1, MaxValue]
// are ignored so the result stays valid.
func (patch Patch) Apply(config Config) Config {
	if value, ok := inRange(patch.FocusMinutes); ok {
		config.FocusMinutes = value
	}
	if value, ok := inRange(patch.ShortBreakMinutes); ok {
		config.ShortBreakMinutes = value
	}
	if value, ok := inRange(patch.LongBreakMinutes); ok {
		config.LongBreakMinutes = value
	}
	if value, ok := inRange(patch.LongBreakInterval); ok {
		config.LongBreakInterval = value
	}
	if patch.NotificationsEnabled != nil {
		config.NotificationsEnabled = *patch.NotificationsEnabled
	}
	if patch.SoundEnabled != nil {
		config.SoundEnabled = *patch.SoundEnabled
	}
	return config
}

// Empty reports whether the patch sets no field.
func (patch Patch) Empty() bool {
	return patch.FocusMinutes == nil &&
		patch.ShortBreakMinutes == nil &&
		patch.LongBreakMinutes == nil &&
		patch.LongBreakInterval == nil &&
		patch.NotificationsEnabled == nil &&
		patch.SoundEnabled == nil
}

// PatchFrom returns a patch that sets every field of config.
func PatchFrom(config Config) Patch {
	return Patch{
		FocusMinutes:         Int(config.FocusMinutes),
		ShortBreakMinutes:    Int(config.ShortBreakMinutes),
		LongBreakMinutes:     Int(config.LongBreakMinutes),
		LongBreakInterval:    Int(config.LongBreakInterval),
		NotificationsEnabled: Bool(config.NotificationsEnabled),
		SoundEnabled:         Bool(config.SoundEnabled),
	}
}

// Int returns a pointer to value.
func Int(value int) *int { return &value }

// Bool returns a pointer to value.
func Bool(value bool) *bool { return &value }

func inRange(value *int) (int, bool) {
	if value == nil || !InRange(*value) {
		return 0, false
	}
	return *value, true
}
