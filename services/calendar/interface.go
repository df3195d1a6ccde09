package calendar

import (
	"context"
	"time"

	"smartsched/models"
)

// Service defines the calendar boundary used by the conversation layer.
type Service interface {
	// IsAuthenticated reports whether a usable credential is on hand.
	// Callers that need to tell "no conflicts" apart from "not connected"
	// must check this before trusting an empty FetchBusy result.
	IsAuthenticated(ctx context.Context) bool

	// FetchBusy returns the busy intervals between start and end, in UTC.
	// Unauthenticated or failed fetches degrade to an empty sequence; the
	// only error returned is context cancellation.
	FetchBusy(ctx context.Context, start, end time.Time) ([]models.BusyInterval, error)

	// CreateEvent inserts an event on the primary calendar. It fails with
	// ErrNotAuthenticated without a credential; an upstream write failure
	// is reported inside the result, not as an error.
	CreateEvent(ctx context.Context, input models.EventInput) (*models.EventResult, error)
}
