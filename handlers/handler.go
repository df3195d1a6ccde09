// File: handlers/handler.go
package handlers

import (
	"smartsched/services/calendar"
	"smartsched/services/session"
)

// HandlerBundle aggregates the dependencies the HTTP and websocket
// handlers need, so route registration receives a single value.
type HandlerBundle struct {
	Sessions *session.Registry
	Creds    *calendar.CredentialStore
	Calendar calendar.Service
}
