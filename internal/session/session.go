package session

import (
	"sync"

	"github.com/google/uuid"
)

// Session identifies one operator for the lifetime of a process. The id is
// generated exactly once and stays stable across reconnects so the server can
// attribute completions back to the operator. Nothing here is persisted.
type Session struct {
	operatorID string

	mu           sync.RWMutex
	operatorName string
	backendURL   string
}

// New creates a session with a fresh operator id.
func New(operatorName, backendURL string) *Session {
	return &Session{
		operatorID:   uuid.NewString(),
		operatorName: operatorName,
		backendURL:   backendURL,
	}
}

// OperatorID returns the stable per-session operator id.
func (s *Session) OperatorID() string {
	return s.operatorID
}

// OperatorName returns the display name registered for this operator.
func (s *Session) OperatorName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.operatorName
}

// SetOperatorName updates the display name.
func (s *Session) SetOperatorName(name string) {
	s.mu.Lock()
	s.operatorName = name
	s.mu.Unlock()
}

// BackendURL returns the backend base address for this session.
func (s *Session) BackendURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backendURL
}

// SetBackendURL updates the backend base address.
func (s *Session) SetBackendURL(url string) {
	s.mu.Lock()
	s.backendURL = url
	s.mu.Unlock()
}
