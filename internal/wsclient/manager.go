package wsclient

import (
	"fmt"
	"sync"
	"time"

	"github.com/Unknowkubbrother/Project-SmartQ/internal/types"
	"github.com/rs/zerolog"
)

const defaultWriteTimeout = 10 * time.Second

// Handler receives connection lifecycle events and decoded frames. Frames
// for one service arrive in socket-delivery order; ordering across services
// is unspecified.
type Handler interface {
	OnConnected(service string)
	OnMessage(service string, role types.Role, msg types.Message)
	OnDisconnected(service string)
}

// Key identifies one connection slot.
type Key struct {
	Service string
	Role    types.Role
}

// Manager owns exactly one live socket per (service, role) pair. The socket
// set is an explicit map on the instance, so independent managers (tests,
// several windows) never collide. Changing the backend address closes every
// socket and redials the same set against the new address.
type Manager struct {
	mu           sync.Mutex
	base         string
	conns        map[Key]*Conn
	handler      Handler
	writeTimeout time.Duration
	logger       zerolog.Logger
}

// NewManager creates a manager for the given backend base address.
// writeTimeout bounds control writes on each socket; zero means the default.
func NewManager(base string, handler Handler, writeTimeout time.Duration, logger zerolog.Logger) *Manager {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &Manager{
		base:         base,
		conns:        make(map[Key]*Conn),
		handler:      handler,
		writeTimeout: writeTimeout,
		logger:       logger.With().Str("component", "wsclient").Logger(),
	}
}

// Open dials the socket for a (service, role) pair. Opening a pair that is
// already live is an error; close it first or use Sync.
func (m *Manager) Open(service string, role types.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.openLocked(Key{Service: service, Role: role})
}

func (m *Manager) openLocked(key Key) error {
	if _, exists := m.conns[key]; exists {
		return fmt.Errorf("connection already open for %s/%s", key.Service, key.Role)
	}

	conn, err := dial(m.base, key.Service, key.Role, m.writeTimeout, m.handler, m.logger)
	if err != nil {
		return fmt.Errorf("dial %s/%s: %w", key.Service, key.Role, err)
	}
	m.conns[key] = conn
	m.handler.OnConnected(key.Service)
	return nil
}

// CloseKey closes one connection slot if it is open.
func (m *Manager) CloseKey(service string, role types.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key{Service: service, Role: role}
	if conn, ok := m.conns[key]; ok {
		conn.Close()
		delete(m.conns, key)
	}
}

// Sync reconciles the live socket set against the desired pairs: missing
// pairs are dialed, pairs no longer wanted are closed. Dial failures are
// logged per pair and reported; already-live pairs are left untouched.
func (m *Manager) Sync(keys []Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	wanted := make(map[Key]bool, len(keys))
	for _, key := range keys {
		wanted[key] = true
	}

	for key, conn := range m.conns {
		if !wanted[key] {
			conn.Close()
			delete(m.conns, key)
		}
	}

	var firstErr error
	for _, key := range keys {
		if _, exists := m.conns[key]; exists {
			continue
		}
		if err := m.openLocked(key); err != nil {
			m.logger.Error().Err(err).Str("service", key.Service).Msg("dial failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// SetBackend switches every connection over to a new base address. All
// sockets are closed first; the same pairs are then redialed against the
// new address.
func (m *Manager) SetBackend(base string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]Key, 0, len(m.conns))
	for key, conn := range m.conns {
		keys = append(keys, key)
		conn.Close()
		delete(m.conns, key)
	}

	m.base = base

	var firstErr error
	for _, key := range keys {
		if err := m.openLocked(key); err != nil {
			m.logger.Error().Err(err).Str("service", key.Service).Msg("redial failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// CloseAll tears down every connection. Used on unmount and shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, conn := range m.conns {
		conn.Close()
		delete(m.conns, key)
	}
}

// Count returns the number of live connections.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.conns)
}
