package engine

import (
	"time"

	"github.com/Unknowkubbrother/Project-SmartQ/internal/audio"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/calltimer"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/store"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/types"
	"github.com/rs/zerolog"
)

// HistoryFunc is notified on every authoritative history frame. The operator
// console uses it to reconcile its transfer-candidate overlay.
type HistoryFunc func(service string, history []types.HistoryRecord)

// Engine fans decoded frames out to the state store, the call highlight
// timers and the announcement player. It implements wsclient.Handler; each
// service's frames arrive in delivery order and touch only that service's
// slot.
type Engine struct {
	store     *store.Store
	timers    *calltimer.Timers
	player    *audio.Player
	onHistory HistoryFunc
	logger    zerolog.Logger

	callFlash  time.Duration
	audioFlash time.Duration
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithPlayer attaches an announcement player. Display processes only.
func WithPlayer(p *audio.Player) Option {
	return func(e *Engine) { e.player = p }
}

// WithHistoryFunc attaches a history frame observer.
func WithHistoryFunc(f HistoryFunc) Option {
	return func(e *Engine) { e.onHistory = f }
}

// New creates an engine over the given store and highlight timers.
func New(st *store.Store, timers *calltimer.Timers, callFlash, audioFlash time.Duration, logger zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:      st,
		timers:     timers,
		callFlash:  callFlash,
		audioFlash: audioFlash,
		logger:     logger.With().Str("component", "engine").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnConnected resets the service slot: state is rebuilt from the server's
// initial replay on every (re)connection, never carried over.
func (e *Engine) OnConnected(service string) {
	e.store.Reset(service)
	e.store.SetConnected(service, true)
	e.logger.Debug().Str("service", service).Msg("service connected, state reset")
}

// OnDisconnected marks the service stale. The last known snapshot stays
// visible; no updates arrive until an external redial.
func (e *Engine) OnDisconnected(service string) {
	e.store.SetConnected(service, false)
	e.logger.Warn().Str("service", service).Msg("connection lost, showing last known state")
}

// OnMessage folds one frame into local state and triggers the side effects
// tied to its kind.
func (e *Engine) OnMessage(service string, role types.Role, msg types.Message) {
	e.store.Apply(service, msg)

	switch msg.Kind {
	case types.KindCurrent:
		if msg.Item != nil {
			e.timers.Trigger(service, e.callFlash)
		}

	case types.KindAudio:
		e.timers.Trigger(service, e.audioFlash)
		// The player checks mute at arrival time; a clip that starts
		// unmuted plays to completion even if a mute lands mid-playback.
		if e.player != nil && role == types.RoleDisplay {
			e.player.HandleClip(service, msg.AudioData)
		}

	case types.KindHistory:
		if e.onHistory != nil {
			e.onHistory(service, msg.History)
		}
	}
}
