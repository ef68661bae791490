package preferences

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"pomodoro/internal/core/model"
)

// ErrInvalidValue is returned when a duration or interval field is not a
// whole number in [1, model.MaxValue].
var ErrInvalidValue = errors.New("invalid value")

// Curated choices offered by the settings form. Custom positive values
// are accepted too.
var (
	FocusChoices      = []int{15, 20, 25, 30, 45, 60}
	ShortBreakChoices = []int{3, 5, 10, 15}
	LongBreakChoices  = []int{10, 15, 20, 25, 30}
	IntervalChoices   = []int{2, 3, 4, 5, 6}
)

// Settings is the editable form state. Numeric fields hold raw text.
type Settings struct {
	FocusMinutes         string
	ShortBreakMinutes    string
	LongBreakMinutes     string
	LongBreakInterval    string
	NotificationsEnabled bool
	SoundEnabled         bool
}

// FromConfig fills the form from config.
func FromConfig(config model.Config) Settings {
	return Settings{
		FocusMinutes:         strconv.Itoa(config.FocusMinutes),
		ShortBreakMinutes:    strconv.Itoa(config.ShortBreakMinutes),
		LongBreakMinutes:     strconv.Itoa(config.LongBreakMinutes),
		LongBreakInterval:    strconv.Itoa(config.LongBreakInterval),
		NotificationsEnabled: config.NotificationsEnabled,
		SoundEnabled:         config.SoundEnabled,
	}
}

// Patch converts the form to a settings patch. Every numeric field must
// be a whole number in [1, model.MaxValue].
func (settings Settings) Patch() (model.Patch, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"focus", settings.FocusMinutes},
		{"short break", settings.ShortBreakMinutes},
		{"long break", settings.LongBreakMinutes},
		{"long break interval", settings.LongBreakInterval},
	}

	values := make([]int, len(fields))
	for i, field := range fields {
		parsed, ok := parseSetting(field.value)
		if !ok {
			return model.Patch{}, fmt.Errorf("%s %q: %w", field.name, field.value, ErrInvalidValue)
		}
		values[i] = parsed
	}

	return model.Patch{
		FocusMinutes:         model.Int(values[0]),
		ShortBreakMinutes:    model.Int(values[1]),
		LongBreakMinutes:     model.Int(values[2]),
		LongBreakInterval:    model.Int(values[3]),
		NotificationsEnabled: model.Bool(settings.NotificationsEnabled),
		SoundEnabled:         model.Bool(settings.SoundEnabled),
	}, nil
}

// Choices renders the curated choices as strings, adding current when
// it is a custom value.
func Choices(curated []int, current int) []string {
	values := slices.Clone(curated)
	if model.InRange(current) && !slices.Contains(values, current) {
		values = append(values, current)
		slices.Sort(values)
	}
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = strconv.Itoa(value)
	}
	return out
}

func parseSetting(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || !model.InRange(parsed) {
		return 0, false
	}
	return parsed, true
}
