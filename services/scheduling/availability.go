// File: services/scheduling/availability.go
package scheduling

import (
	"strconv"
	"strings"
	"time"

	"smartsched/models"
)

const (
	// slotStep is the fixed granularity candidate start times slide by.
	slotStep = 30 * time.Minute
	// maxSlots caps how many openings one search returns.
	maxSlots = 10
)

// FindSlots enumerates open slots matching the criteria, earliest first,
// capped at maxSlots. For each calendar day in the search range (in the
// reference zone) the day's working-hours window is clamped to the overall
// search bound, then candidate starts slide through it in 30-minute steps.
// A candidate is accepted only if it overlaps no busy interval; the overlap
// test compares instants in UTC regardless of the zone they were expressed
// in. An empty result is not an error. The function never mutates its
// inputs and is safe for concurrent use.
func FindSlots(criteria models.SearchCriteria, busy []models.BusyInterval) []models.Slot {
	if criteria.DurationMinutes <= 0 || !criteria.SearchStart.Before(criteria.SearchEnd) {
		return nil
	}

	loc := criteria.Location
	if loc == nil {
		loc = time.UTC
	}
	duration := time.Duration(criteria.DurationMinutes) * time.Minute
	searchStart := criteria.SearchStart.In(loc)
	searchEnd := criteria.SearchEnd.In(loc)

	startHour, startMin := parseClock(criteria.WorkingHours.StartClock, 9, 0)
	endHour, endMin := parseClock(criteria.WorkingHours.EndClock, 17, 0)

	firstDay := time.Date(searchStart.Year(), searchStart.Month(), searchStart.Day(), 0, 0, 0, 0, loc)
	lastDay := time.Date(searchEnd.Year(), searchEnd.Month(), searchEnd.Day(), 0, 0, 0, 0, loc)

	var slots []models.Slot
	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		windowStart := time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, loc)
		windowEnd := time.Date(day.Year(), day.Month(), day.Day(), endHour, endMin, 0, 0, loc)

		// Clamp the day window to the overall search bound; a day whose
		// clamped window is empty or inverted contributes nothing.
		if windowStart.Before(searchStart) {
			windowStart = searchStart
		}
		if windowEnd.After(searchEnd) {
			windowEnd = searchEnd
		}
		if !windowStart.Before(windowEnd) {
			continue
		}

		for cand := windowStart; !cand.Add(duration).After(windowEnd); cand = cand.Add(slotStep) {
			candEnd := cand.Add(duration)
			if overlapsAny(cand, candEnd, busy) {
				continue
			}
			slots = append(slots, NewSlot(cand, candEnd, criteria.DurationMinutes, loc))
			if len(slots) == maxSlots {
				return slots
			}
		}
	}
	return slots
}

// overlapsAny reports whether [start, end) overlaps any busy interval. A
// candidate is free iff for every interval: end <= busy.Start or
// start >= busy.End, all compared in UTC.
func overlapsAny(start, end time.Time, busy []models.BusyInterval) bool {
	s := start.UTC()
	e := end.UTC()
	for _, b := range busy {
		if e.After(b.Start.UTC()) && s.Before(b.End.UTC()) {
			return true
		}
	}
	return false
}

// NewSlot builds a slot with UTC endpoints and display fields rendered in
// the given reference zone.
func NewSlot(start, end time.Time, durationMinutes int, loc *time.Location) models.Slot {
	localStart := start.In(loc)
	localEnd := end.In(loc)
	return models.Slot{
		Start:           start.UTC(),
		End:             end.UTC(),
		LocalStart:      localStart,
		LocalEnd:        localEnd,
		DurationMinutes: durationMinutes,
		FormattedStart:  localStart.Format("Monday, January 2 at 3:04 PM"),
		FormattedEnd:    localEnd.Format("3:04 PM"),
	}
}

// parseClock parses an "HH:MM" clock value, falling back to the given
// defaults when malformed.
func parseClock(clock string, defHour, defMin int) (int, int) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return defHour, defMin
	}
	hour, err1 := strconv.Atoi(parts[0])
	min, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || min < 0 || min > 59 {
		return defHour, defMin
	}
	return hour, min
}
