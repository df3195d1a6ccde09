package session

import (
	"context"
	"testing"
	"time"

	"smartsched/models"
	"smartsched/services/conversation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConversation struct{}

func (stubConversation) ProcessMessage(ctx context.Context, text string) (*models.TurnResult, error) {
	return &models.TurnResult{Message: "ok"}, nil
}

func (stubConversation) Reset() {}

func TestAcquireCreatesOncePerSession(t *testing.T) {
	created := 0
	r := NewRegistry(func(sessionID string) conversation.ConversationService {
		created++
		return stubConversation{}
	}, 0)
	defer r.Close()

	first := r.Acquire("a")
	second := r.Acquire("a")
	r.Acquire("b")

	assert.Equal(t, first, second)
	assert.Equal(t, 2, created)
	assert.Equal(t, 2, r.Len())
}

func TestRemoveDropsSession(t *testing.T) {
	created := 0
	r := NewRegistry(func(sessionID string) conversation.ConversationService {
		created++
		return stubConversation{}
	}, 0)
	defer r.Close()

	r.Acquire("a")
	r.Remove("a")
	require.Equal(t, 0, r.Len())

	// Re-acquiring after removal builds a fresh session.
	r.Acquire("a")
	assert.Equal(t, 2, created)
}

func TestEvictIdleSweepsOnlyStaleSessions(t *testing.T) {
	r := NewRegistry(func(sessionID string) conversation.ConversationService {
		return stubConversation{}
	}, 0)
	defer r.Close()
	r.idleTTL = 30 * time.Minute

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	r.Acquire("stale")
	clock = clock.Add(20 * time.Minute)
	r.Acquire("fresh")

	clock = clock.Add(15 * time.Minute)
	r.evictIdle()

	assert.Equal(t, 1, r.Len())
	r.Touch("fresh")

	clock = clock.Add(31 * time.Minute)
	r.evictIdle()
	assert.Equal(t, 0, r.Len())
}

func TestCloseIsIdempotent(t *testing.T) {
	r := NewRegistry(func(sessionID string) conversation.ConversationService {
		return stubConversation{}
	}, time.Minute)

	r.Close()
	r.Close()
}
