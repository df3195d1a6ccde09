package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kolkata(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

func TestParsePreferencesTomorrow(t *testing.T) {
	loc := kolkata(t)
	// Monday, Jan 1 2024, 10:00 local.
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, loc)

	window := ParsePreferences("tomorrow", "", now, loc)

	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, loc), window.Start)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, loc), window.End)
	assert.Equal(t, DefaultWorkStart, window.WorkingHours.StartClock)
	assert.Equal(t, DefaultWorkEnd, window.WorkingHours.EndClock)
}

func TestParsePreferencesNextWeek(t *testing.T) {
	loc := kolkata(t)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, loc)

	window := ParsePreferences("next week", "", now, loc)

	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, loc), window.Start)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, loc), window.End)
}

func TestParsePreferencesToday(t *testing.T) {
	loc := kolkata(t)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, loc)

	window := ParsePreferences("today", "", now, loc)

	// "today" anchors at the current instant, not midnight, so slots in the
	// past are never offered.
	assert.Equal(t, now, window.Start)
	assert.Equal(t, now.AddDate(0, 0, 1), window.End)
}

func TestParsePreferencesWeekday(t *testing.T) {
	loc := kolkata(t)
	// Monday.
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, loc)

	window := ParsePreferences("on Wednesday", "", now, loc)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, loc), window.Start)
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, loc), window.End)

	// The same weekday as today rolls a full week forward.
	window = ParsePreferences("monday", "", now, loc)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, loc), window.Start)
}

func TestParsePreferencesDefaultWindow(t *testing.T) {
	loc := kolkata(t)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, loc)

	window := ParsePreferences("", "", now, loc)

	assert.Equal(t, now, window.Start)
	assert.Equal(t, now.AddDate(0, 0, DefaultSearchDays), window.End)
}

func TestParsePreferencesUnrecognizedDayFallsBack(t *testing.T) {
	loc := kolkata(t)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, loc)

	window := ParsePreferences("whenever works", "", now, loc)

	assert.Equal(t, now, window.Start)
	assert.Equal(t, now.AddDate(0, 0, DefaultSearchDays), window.End)
}

func TestParsePreferencesTimeOfDay(t *testing.T) {
	loc := kolkata(t)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, loc)

	cases := []struct {
		phrase     string
		start, end string
	}{
		{"morning", "09:00", "12:00"},
		{"afternoon", "12:00", "17:00"},
		{"evening", "17:00", "20:00"},
		{"2pm", "14:00", "17:00"},
		{"9:30am", "09:30", "17:00"},
		{"12am", "00:00", "17:00"},
		{"", DefaultWorkStart, DefaultWorkEnd},
		{"whenever", DefaultWorkStart, DefaultWorkEnd},
	}
	for _, tc := range cases {
		window := ParsePreferences("", tc.phrase, now, loc)
		assert.Equal(t, tc.start, window.WorkingHours.StartClock, "phrase %q", tc.phrase)
		assert.Equal(t, tc.end, window.WorkingHours.EndClock, "phrase %q", tc.phrase)
	}
}

func TestParseClockPhraseRejectsOutOfRange(t *testing.T) {
	_, ok := parseClockPhrase("25:00")
	assert.False(t, ok)

	_, ok = parseClockPhrase("10:75")
	assert.False(t, ok)
}
