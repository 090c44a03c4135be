// Package memory provides in-memory implementations of driven ports.
package memory

import (
	"context"
	"sync"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// Histories are bounded: appending beyond the limit drops the oldest
// exchange. Sessions live for the process lifetime only.
type SessionStore struct {
	mu         sync.RWMutex
	sessions   map[string][]domain.Exchange
	maxHistory int
}

// NewSessionStore creates a new in-memory session store retaining at
// most maxHistory exchanges per session. A non-positive limit falls
// back to the default.
func NewSessionStore(maxHistory int) *SessionStore {
	if maxHistory <= 0 {
		maxHistory = domain.DefaultMaxHistory
	}
	return &SessionStore{
		sessions:   make(map[string][]domain.Exchange),
		maxHistory: maxHistory,
	}
}

// History returns the retained exchanges for a session, oldest first.
// Unknown ids return an empty history.
func (s *SessionStore) History(_ context.Context, sessionID string) ([]domain.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exchanges := s.sessions[sessionID]
	out := make([]domain.Exchange, len(exchanges))
	copy(out, exchanges)
	return out, nil
}

// Append records one exchange, creating the session if absent and
// truncating from the front beyond the bound.
func (s *SessionStore) Append(_ context.Context, sessionID, query, response string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exchanges := append(s.sessions[sessionID], domain.Exchange{Query: query, Response: response})
	if len(exchanges) > s.maxHistory {
		exchanges = exchanges[len(exchanges)-s.maxHistory:]
	}
	s.sessions[sessionID] = exchanges
	return nil
}

// Clear removes a session entirely.
func (s *SessionStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
