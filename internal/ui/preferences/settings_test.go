package preferences

import (
	"testing"

	"pomodoro/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfigRoundTripsThroughPatch(t *testing.T) {
	config := model.DefaultConfig()
	config.FocusMinutes = 50
	config.SoundEnabled = false

	patch, err := FromConfig(config).Patch()
	require.NoError(t, err)

	assert.Equal(t, config, patch.Apply(model.DefaultConfig()))
}

func TestPatchRejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero focus", func(s *Settings) { s.FocusMinutes = "0" }},
		{"negative short break", func(s *Settings) { s.ShortBreakMinutes = "-5" }},
		{"text long break", func(s *Settings) { s.LongBreakMinutes = "ten" }},
		{"fractional interval", func(s *Settings) { s.LongBreakInterval = "2.5" }},
		{"focus above a day", func(s *Settings) { s.FocusMinutes = "1441" }},
		{"overflowing short break", func(s *Settings) { s.ShortBreakMinutes = "9223372036854775807" }},
		{"empty focus", func(s *Settings) { s.FocusMinutes = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := FromConfig(model.DefaultConfig())
			tt.mutate(&settings)

			_, err := settings.Patch()
			assert.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}

func TestPatchTrimsWhitespace(t *testing.T) {
	settings := FromConfig(model.DefaultConfig())
	settings.FocusMinutes = " 40 "

	patch, err := settings.Patch()
	require.NoError(t, err)
	assert.Equal(t, 40, *patch.FocusMinutes)
}

func TestChoicesIncludeCustomValue(t *testing.T) {
	assert.Equal(t, []string{"15", "20", "25", "30", "45", "60"}, Choices(FocusChoices, 25))
	assert.Equal(t, []string{"3", "5", "7", "10", "15"}, Choices(ShortBreakChoices, 7))
	assert.Equal(t, []string{"2", "3", "4", "5", "6"}, Choices(IntervalChoices, 0))
	assert.Equal(t, []int{15, 20, 25, 30, 45, 60}, FocusChoices)
}
