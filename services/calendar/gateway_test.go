package calendar

import (
	"testing"
	"time"

	"smartsched/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
)

func TestBuildEventRendersReferenceZone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 08:30 UTC is 14:00 in Kolkata.
	input := models.EventInput{
		Title:       "Design review",
		Description: "Q1 planning",
		Start:       time.Date(2024, 1, 2, 8, 30, 0, 0, time.UTC),
		End:         time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
	}

	event := buildEvent(input, loc)

	assert.Equal(t, "Design review", event.Summary)
	assert.Equal(t, "Q1 planning", event.Description)
	assert.Equal(t, "2024-01-02T14:00:00+05:30", event.Start.DateTime)
	assert.Equal(t, "2024-01-02T14:30:00+05:30", event.End.DateTime)
	assert.Equal(t, "Asia/Kolkata", event.Start.TimeZone)
	assert.Equal(t, "Asia/Kolkata", event.End.TimeZone)
}

func TestParseBusyPeriodNormalizesToUTC(t *testing.T) {
	interval, err := parseBusyPeriod(&gcal.TimePeriod{
		Start: "2024-01-02T14:00:00+05:30",
		End:   "2024-01-02T15:00:00+05:30",
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 8, 30, 0, 0, time.UTC), interval.Start)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), interval.End)
	assert.Equal(t, time.UTC, interval.Start.Location())
}

func TestParseBusyPeriodRejectsMalformed(t *testing.T) {
	_, err := parseBusyPeriod(&gcal.TimePeriod{Start: "not-a-time", End: "2024-01-02T15:00:00Z"})
	assert.Error(t, err)

	_, err = parseBusyPeriod(&gcal.TimePeriod{Start: "2024-01-02T14:00:00Z", End: "later"})
	assert.Error(t, err)
}
