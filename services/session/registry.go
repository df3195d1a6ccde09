// File: services/session/registry.go
package session

import (
	"sync"
	"time"

	"smartsched/services/conversation"
	"smartsched/utils"

	"go.uber.org/zap"
)

// Factory builds the conversation service for a new session.
type Factory func(sessionID string) conversation.ConversationService

type entry struct {
	svc        conversation.ConversationService
	lastActive time.Time
}

// Registry maps session IDs to live conversation services with an explicit
// lifecycle: create on first acquire, remove on disconnect, and evict after
// the idle timeout so abandoned sessions cannot accumulate.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry

	factory Factory
	idleTTL time.Duration
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRegistry creates a registry. With a positive idleTTL a janitor
// goroutine sweeps idle sessions until Close is called.
func NewRegistry(factory Factory, idleTTL time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[string]*entry),
		factory:  factory,
		idleTTL:  idleTTL,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if idleTTL > 0 {
		go r.janitor()
	}
	return r
}

// Acquire returns the session's conversation service, creating it on first
// use, and marks the session active.
func (r *Registry) Acquire(sessionID string) conversation.ConversationService {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[sessionID]; ok {
		e.lastActive = r.now()
		return e.svc
	}
	e := &entry{svc: r.factory(sessionID), lastActive: r.now()}
	r.sessions[sessionID] = e
	return e.svc
}

// Touch marks the session active without creating it.
func (r *Registry) Touch(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[sessionID]; ok {
		e.lastActive = r.now()
	}
}

// Remove drops the session, discarding its conversation state.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close stops the janitor.
func (r *Registry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Registry) janitor() {
	interval := r.idleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle()
		case <-r.stop:
			return
		}
	}
}

func (r *Registry) evictIdle() {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.sessions {
		if e.lastActive.Before(cutoff) {
			delete(r.sessions, id)
			utils.GetLogger().Info("evicted idle session", zap.String("sessionID", id))
		}
	}
}
