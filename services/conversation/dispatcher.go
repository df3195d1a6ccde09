// File: services/conversation/dispatcher.go
package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smartsched/models"
	"smartsched/services/calendar"
	"smartsched/services/scheduling"
)

// toolCall is the closed set of actions the model may request. Matching on
// it is exhaustive, so adding a tool is a compile-time-checked extension.
type toolCall interface{ isToolCall() }

type searchCalendarCall struct {
	DurationMinutes int    `json:"duration_minutes"`
	PreferredDay    string `json:"preferred_day"`
	TimeOfDay       string `json:"time_of_day"`
	DaysAhead       int    `json:"days_ahead"`
}

func (searchCalendarCall) isToolCall() {}

type createEventCall struct {
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Title           string `json:"title"`
	Description     string `json:"description"`
}

func (createEventCall) isToolCall() {}

// ToolOutcome carries a dispatched tool's result: the JSON-basic payload
// replayed to the model, and for search calls the typed slots surfaced to
// the transport.
type ToolOutcome struct {
	Payload  map[string]any
	Slots    []models.Slot
	IsSearch bool
}

// Dispatcher maps a model-requested tool call to a concrete action against
// the availability engine and calendar gateway. Each request is consumed
// exactly once and never retried automatically.
type Dispatcher struct {
	Calendar calendar.Service
	Location *time.Location

	// Now is injectable for deterministic tests.
	Now func() time.Time
}

// NewDispatcher builds a dispatcher resolving phrases in the given zone.
func NewDispatcher(cal calendar.Service, loc *time.Location) *Dispatcher {
	return &Dispatcher{Calendar: cal, Location: loc, Now: time.Now}
}

// Dispatch executes one tool call, mutating the session state as a side
// effect. Unknown tools and malformed arguments return a *ToolError, which
// the orchestrator treats as recoverable.
func (d *Dispatcher) Dispatch(ctx context.Context, req models.ToolCallRequest, state *models.ConversationState) (*ToolOutcome, error) {
	call, err := parseToolCall(req)
	if err != nil {
		return nil, err
	}

	switch call := call.(type) {
	case searchCalendarCall:
		return d.searchCalendar(ctx, call, state)
	case createEventCall:
		return d.createEvent(ctx, call, state)
	default:
		// Unreachable: parseToolCall only yields the variants above.
		return nil, &ToolError{Code: CodeUnknownTool, Message: fmt.Sprintf("unhandled tool %q", req.Name)}
	}
}

func parseToolCall(req models.ToolCallRequest) (toolCall, error) {
	raw, err := json.Marshal(req.Args)
	if err != nil {
		return nil, &ToolError{Code: CodeBadArguments, Message: fmt.Sprintf("unserializable arguments for %q: %v", req.Name, err)}
	}

	switch req.Name {
	case ToolSearchCalendar:
		var call searchCalendarCall
		if err := json.Unmarshal(raw, &call); err != nil {
			return nil, &ToolError{Code: CodeBadArguments, Message: fmt.Sprintf("malformed search_calendar arguments: %v", err)}
		}
		return call, nil
	case ToolCreateEvent:
		var call createEventCall
		if err := json.Unmarshal(raw, &call); err != nil {
			return nil, &ToolError{Code: CodeBadArguments, Message: fmt.Sprintf("malformed create_event arguments: %v", err)}
		}
		return call, nil
	default:
		return nil, &ToolError{Code: CodeUnknownTool, Message: fmt.Sprintf("unknown tool %q", req.Name)}
	}
}

func (d *Dispatcher) searchCalendar(ctx context.Context, call searchCalendarCall, state *models.ConversationState) (*ToolOutcome, error) {
	if call.DurationMinutes <= 0 {
		return nil, &ToolError{Code: CodeBadArguments, Message: "duration_minutes must be positive"}
	}

	window := scheduling.ParsePreferences(call.PreferredDay, call.TimeOfDay, d.Now(), d.Location)
	if call.PreferredDay == "" {
		// Without a day phrase the caller may widen the default window.
		days := call.DaysAhead
		if days <= 0 {
			days = scheduling.DefaultSearchDays
		}
		window.End = window.Start.AddDate(0, 0, days)
	}

	state.DurationMinutes = call.DurationMinutes
	state.PreferredDay = call.PreferredDay
	state.PreferredTime = call.TimeOfDay

	busy, err := d.Calendar.FetchBusy(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	slots := scheduling.FindSlots(models.SearchCriteria{
		DurationMinutes: call.DurationMinutes,
		SearchStart:     window.Start,
		SearchEnd:       window.End,
		WorkingHours:    window.WorkingHours,
		Location:        d.Location,
	}, busy)

	payload := map[string]any{
		"available_slots":    jsonify(slots),
		"total_found":        len(slots),
		"calendar_connected": d.Calendar.IsAuthenticated(ctx),
		"search_criteria": map[string]any{
			"duration_minutes": call.DurationMinutes,
			"preferred_day":    call.PreferredDay,
			"time_of_day":      call.TimeOfDay,
		},
	}
	return &ToolOutcome{Payload: payload, Slots: slots, IsSearch: true}, nil
}

func (d *Dispatcher) createEvent(ctx context.Context, call createEventCall, state *models.ConversationState) (*ToolOutcome, error) {
	if call.Title == "" {
		return nil, &ToolError{Code: CodeBadArguments, Message: "title is required"}
	}
	if call.DurationMinutes <= 0 {
		return nil, &ToolError{Code: CodeBadArguments, Message: "duration_minutes must be positive"}
	}
	start, err := d.parseStartTime(call.StartTime)
	if err != nil {
		return nil, &ToolError{Code: CodeBadArguments, Message: fmt.Sprintf("unparseable start_time %q", call.StartTime)}
	}
	end := start.Add(time.Duration(call.DurationMinutes) * time.Minute)

	state.MeetingTitle = call.Title
	state.MeetingDescription = call.Description

	result, err := d.Calendar.CreateEvent(ctx, models.EventInput{
		Title:       call.Title,
		Description: call.Description,
		Start:       start,
		End:         end,
	})
	if errors.Is(err, calendar.ErrNotAuthenticated) {
		// Surfaced as a structured failure so the model can explain it.
		return &ToolOutcome{Payload: map[string]any{"success": false, "error": err.Error()}}, nil
	}
	if err != nil {
		return nil, err
	}

	if result.Success {
		slot := scheduling.NewSlot(start, end, call.DurationMinutes, d.location())
		state.ConfirmedSlot = &slot
	}

	payload, ok := jsonify(result).(map[string]any)
	if !ok {
		payload = map[string]any{"success": result.Success}
	}
	return &ToolOutcome{Payload: payload}, nil
}

// parseStartTime accepts an ISO-8601 timestamp. A zone-less value is an
// input-only convenience and is localized to the reference zone here,
// before any arithmetic.
func (d *Dispatcher) parseStartTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, value, d.location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

func (d *Dispatcher) location() *time.Location {
	if d.Location == nil {
		return time.UTC
	}
	return d.Location
}

// jsonify round-trips a value through JSON so payloads only contain basic
// types the model transport can replay.
func jsonify(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}
