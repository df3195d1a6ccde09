// File: services/scheduling/preferences.go
package scheduling

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"smartsched/models"
)

// Default search and working-hour bounds applied when a phrase gives none.
const (
	DefaultWorkStart  = "09:00"
	DefaultWorkEnd    = "17:00"
	DefaultSearchDays = 7
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var clockPattern = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)

// ParsePreferences maps free-text day/time phrases to a concrete search
// window and working-hour bounds in the given reference zone. It is pure:
// it never touches the calendar.
//
// Day phrases resolve in priority order: "tomorrow", "next week", "today",
// then a literal weekday name (next occurrence strictly after today). No
// match falls back to the next DefaultSearchDays days; callers may widen
// that window when no day phrase was given at all.
func ParsePreferences(dayPhrase, timePhrase string, now time.Time, loc *time.Location) models.SearchWindow {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	start := now
	end := now.AddDate(0, 0, DefaultSearchDays)
	hours := models.WorkingHoursWindow{StartClock: DefaultWorkStart, EndClock: DefaultWorkEnd}

	if dayPhrase != "" {
		phrase := strings.ToLower(dayPhrase)
		switch {
		case strings.Contains(phrase, "tomorrow"):
			start = midnight.AddDate(0, 0, 1)
			end = midnight.AddDate(0, 0, 2)
		case strings.Contains(phrase, "next week"):
			start = midnight.AddDate(0, 0, 7)
			end = midnight.AddDate(0, 0, 14)
		case strings.Contains(phrase, "today"):
			start = now
			end = now.AddDate(0, 0, 1)
		default:
			for name, weekday := range weekdays {
				if !strings.Contains(phrase, name) {
					continue
				}
				// Next occurrence strictly after today: if today is that
				// weekday, roll forward a full week.
				ahead := (int(weekday) - int(now.Weekday()) + 7) % 7
				if ahead == 0 {
					ahead = 7
				}
				start = midnight.AddDate(0, 0, ahead)
				end = start.AddDate(0, 0, 1)
				break
			}
		}
	}

	if timePhrase != "" {
		phrase := strings.ToLower(timePhrase)
		switch {
		case strings.Contains(phrase, "morning"):
			hours.StartClock = "09:00"
			hours.EndClock = "12:00"
		case strings.Contains(phrase, "afternoon"):
			hours.StartClock = "12:00"
			hours.EndClock = "17:00"
		case strings.Contains(phrase, "evening"):
			hours.StartClock = "17:00"
			hours.EndClock = "20:00"
		default:
			if clock, ok := parseClockPhrase(phrase); ok {
				hours.StartClock = clock
				hours.EndClock = "17:00"
			}
		}
	}

	return models.SearchWindow{Start: start, End: end, WorkingHours: hours}
}

// parseClockPhrase parses a clock time of the form H[:MM][am|pm].
func parseClockPhrase(phrase string) (string, bool) {
	m := clockPattern.FindStringSubmatch(phrase)
	if m == nil {
		return "", false
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	switch m[3] {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}
