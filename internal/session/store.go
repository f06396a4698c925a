package session

import (
	"context"
	"errors"
	"sync"

	"github.com/nikhilbhutani/fluencyscore/internal/fluency"
)

// ErrNotFound is returned by a Store when no state exists for a session.
var ErrNotFound = errors.New("session not found")

// Store persists running session scores between utterances.
type Store interface {
	Load(ctx context.Context, sessionID string) (fluency.SessionState, error)
	Save(ctx context.Context, sessionID string, state fluency.SessionState) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore keeps session state in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]fluency.SessionState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]fluency.SessionState)}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (fluency.SessionState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return fluency.SessionState{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) Save(_ context.Context, sessionID string, state fluency.SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = state
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *MemoryStore) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
