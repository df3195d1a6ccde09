package models

import "time"

// BusyInterval is a half-open [Start, End) range during which the calendar
// owner is unavailable. Both endpoints are stored in UTC after fetch.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WorkingHoursWindow is the daily clock-time range eligible for scheduling,
// interpreted in the reference zone. Clock values are "HH:MM".
type WorkingHoursWindow struct {
	StartClock string `json:"start_clock"`
	EndClock   string `json:"end_clock"`
}

// SearchCriteria describes one availability search. SearchStart must be
// before SearchEnd and DurationMinutes must be positive.
type SearchCriteria struct {
	DurationMinutes int
	SearchStart     time.Time
	SearchEnd       time.Time
	WorkingHours    WorkingHoursWindow
	// Location is the reference zone used for day iteration and display.
	Location *time.Location
}

// SearchWindow is the concrete window a preference phrase resolves to.
type SearchWindow struct {
	Start        time.Time
	End          time.Time
	WorkingHours WorkingHoursWindow
}

// Slot is a bookable opening. Start/End are UTC; LocalStart/LocalEnd are the
// same instants in the reference zone for display. Slots are immutable once
// produced and never persisted.
type Slot struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	LocalStart      time.Time `json:"local_start"`
	LocalEnd        time.Time `json:"local_end"`
	DurationMinutes int       `json:"duration_minutes"`
	FormattedStart  string    `json:"formatted_start"`
	FormattedEnd    string    `json:"formatted_end"`
}

// EventInput is the payload for creating a calendar event.
type EventInput struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// EventResult reports the outcome of an event creation. A failed upstream
// write is reported here rather than as an error, so the conversation layer
// can explain the failure to the user.
type EventResult struct {
	Success  bool   `json:"success"`
	EventID  string `json:"event_id,omitempty"`
	HTMLLink string `json:"html_link,omitempty"`
	Error    string `json:"error,omitempty"`
}
