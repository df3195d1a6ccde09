package models

import "time"

// ConversationState accumulates slot-filling fields across a session. It is
// owned exclusively by one orchestrator instance and reset only by an
// explicit reset action.
type ConversationState struct {
	DurationMinutes    int    `json:"duration_minutes,omitempty"`
	PreferredDay       string `json:"preferred_day,omitempty"`
	PreferredTime      string `json:"preferred_time,omitempty"`
	MeetingTitle       string `json:"meeting_title,omitempty"`
	MeetingDescription string `json:"meeting_description,omitempty"`
	ConfirmedSlot      *Slot  `json:"confirmed_slot,omitempty"`
}

// TurnResult is the outcome of processing one user message: exactly one
// user-facing reply, the slots surfaced by any search call this turn, and a
// snapshot of the accumulated state.
type TurnResult struct {
	Message        string            `json:"message"`
	AvailableSlots []Slot            `json:"available_slots"`
	State          ConversationState `json:"state"`
}

// ClientFrame is an inbound websocket frame.
type ClientFrame struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

// ServerFrame is an outbound websocket frame.
type ServerFrame struct {
	Type              string             `json:"type"`
	Message           string             `json:"message,omitempty"`
	Content           string             `json:"content,omitempty"`
	ConversationState *ConversationState `json:"conversation_state,omitempty"`
	AvailableSlots    []Slot             `json:"available_slots,omitempty"`
	Timestamp         time.Time          `json:"timestamp"`
}
