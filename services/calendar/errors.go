package calendar

import "errors"

// ErrNotAuthenticated is returned when a calendar write is attempted
// without a valid Google credential.
var ErrNotAuthenticated = errors.New("not authenticated with Google Calendar")
