package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthURLRequestsOfflineConsent(t *testing.T) {
	s := NewCredentialStore(nil)
	u := s.AuthURL()

	// Offline access with forced consent is what yields a refresh token,
	// which IsAuthenticated depends on after the access token expires.
	assert.Contains(t, u, "access_type=offline")
	assert.Contains(t, u, "prompt=consent")
	assert.Contains(t, u, "calendar.readonly")
	assert.Contains(t, u, "calendar.events")
}
