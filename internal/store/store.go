package store

import (
	"sync"
	"time"

	"github.com/Unknowkubbrother/Project-SmartQ/internal/types"
	"github.com/rs/zerolog"
)

// Store reconciles inbound socket frames into per-service state. Every
// transition is a pure replacement keyed by message kind: server snapshots
// are the source of truth and nothing is merged incrementally, so client and
// server cannot drift apart. Slots are created lazily on first message and
// reset whenever the owning connection is re-established.
type Store struct {
	mu       sync.RWMutex
	services map[string]*types.ServiceState
	logger   zerolog.Logger
	now      func() time.Time
}

// New creates an empty store.
func New(logger zerolog.Logger) *Store {
	return &Store{
		services: make(map[string]*types.ServiceState),
		logger:   logger.With().Str("component", "store").Logger(),
		now:      time.Now,
	}
}

// slot returns the state for a service, creating it on first use.
// Caller must hold the write lock.
func (s *Store) slot(service string) *types.ServiceState {
	st, ok := s.services[service]
	if !ok {
		st = &types.ServiceState{
			Name:    service,
			Queue:   []types.QueueItem{},
			History: []types.HistoryRecord{},
		}
		s.services[service] = st
	}
	return st
}

// SetLabel records the display label for a service from its definition.
func (s *Store) SetLabel(service, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot(service).Label = label
}

// Apply folds one decoded message into the state of the named service.
// Unknown kinds are ignored. Only the named service's slot is touched.
func (s *Store) Apply(service string, msg types.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.slot(service)

	switch msg.Kind {
	case types.KindQueueUpdate:
		st.Queue = msg.Queue

	case types.KindCurrent:
		if msg.Item == nil {
			st.Current = nil
			break
		}
		item := *msg.Item
		item.Status = types.StatusCalling
		if item.Service == "" {
			item.Service = service
		}
		st.Current = &item
		st.LastCalledAt = s.now()

	case types.KindStatus:
		st.Status = msg.Status

	case types.KindComplete:
		for i := range st.Queue {
			if st.Queue[i].QNumber == msg.QNumber {
				st.Queue[i].Status = types.StatusCompleted
			}
		}
		if st.Current != nil && st.Current.QNumber == msg.QNumber {
			st.Current = nil
		}

	case types.KindHistory:
		st.History = msg.History

	case types.KindAudio, types.KindUnknown:
		// Audio is handled by the announcement player; unknown frames are a
		// forward-compatible no-op.

	default:
		s.logger.Debug().Str("service", service).Str("kind", string(msg.Kind)).Msg("unhandled message kind")
	}
}

// SetCalling updates the ephemeral highlight flag for a service.
func (s *Store) SetCalling(service string, calling bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot(service).IsCalling = calling
}

// SetConnected marks a service's socket up or down. State is deliberately
// left in place on disconnect so the last known snapshot stays visible.
func (s *Store) SetConnected(service string, connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot(service).Connected = connected
}

// Reset clears a service back to empty. Called when the socket reconnects or
// the backend address changes: state is rebuilt from the server's initial
// replay, never carried over.
func (s *Store) Reset(service string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.slot(service)
	label := st.Label
	s.services[service] = &types.ServiceState{
		Name:    service,
		Label:   label,
		Queue:   []types.QueueItem{},
		History: []types.HistoryRecord{},
	}
}

// Get returns a snapshot of one service's state, or false if never seen.
func (s *Store) Get(service string) (types.ServiceState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.services[service]
	if !ok {
		return types.ServiceState{}, false
	}
	return cloneState(st), true
}

// All returns snapshots of every service state.
func (s *Store) All() []types.ServiceState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make([]types.ServiceState, 0, len(s.services))
	for _, st := range s.services {
		states = append(states, cloneState(st))
	}
	return states
}

// cloneState copies a slot deeply enough that later Apply calls cannot reach
// the caller's snapshot: the queue and history backing arrays and the current
// item are all duplicated, not shared.
func cloneState(st *types.ServiceState) types.ServiceState {
	out := *st
	out.Queue = make([]types.QueueItem, len(st.Queue))
	copy(out.Queue, st.Queue)
	out.History = make([]types.HistoryRecord, len(st.History))
	copy(out.History, st.History)
	if st.Current != nil {
		current := *st.Current
		out.Current = &current
	}
	return out
}

// Muted reports whether a service is currently muted per its last status
// frame. Unknown services report false.
func (s *Store) Muted(service string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.services[service]
	if !ok {
		return false
	}
	return st.Status.Muted
}
