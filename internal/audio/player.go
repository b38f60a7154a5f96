package audio

import (
	"encoding/base64"
	"sync"

	"github.com/rs/zerolog"
)

// Sink turns a decoded clip into actual playback. Implementations own the
// underlying resource; the player only holds the returned handle.
type Sink interface {
	// Play starts playback of a complete audio clip and returns a handle for
	// it. Play must not block for the duration of the clip.
	Play(data []byte) (Handle, error)
}

// Handle is one in-flight playback.
type Handle interface {
	// Stop aborts playback and releases the backing resources. Safe to call
	// after the clip has already finished.
	Stop()
	// Done is closed when playback ends, naturally or via Stop.
	Done() <-chan struct{}
}

// MuteFunc reports whether a service is muted right now. The player checks
// it when a clip arrives, not when playback starts: a mute flipped mid-clip
// never takes back audio that was unmuted on arrival.
type MuteFunc func(service string) bool

// Player arbitrates announcement playback per service. At most one clip is
// ever live for a service: a newer clip stops and releases the previous one
// before it starts. Playback failures are logged and swallowed; audio is
// best-effort and never fatal to the UI.
type Player struct {
	mu      sync.Mutex
	active  map[string]Handle
	sink    Sink
	isMuted MuteFunc
	logger  zerolog.Logger
}

// NewPlayer creates a player over the given sink.
func NewPlayer(sink Sink, isMuted MuteFunc, logger zerolog.Logger) *Player {
	return &Player{
		active:  make(map[string]Handle),
		sink:    sink,
		isMuted: isMuted,
		logger:  logger.With().Str("component", "audio").Logger(),
	}
}

// HandleClip plays one base64-encoded announcement for a service,
// superseding any clip still in flight for that service.
func (p *Player) HandleClip(service, b64 string) {
	if p.isMuted != nil && p.isMuted(service) {
		p.logger.Debug().Str("service", service).Msg("muted, dropping announcement")
		return
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		p.logger.Error().Err(err).Str("service", service).Msg("malformed audio payload")
		return
	}

	p.mu.Lock()
	if prev, ok := p.active[service]; ok {
		prev.Stop()
		delete(p.active, service)
	}

	handle, err := p.sink.Play(data)
	if err != nil {
		p.mu.Unlock()
		p.logger.Warn().Err(err).Str("service", service).Msg("playback failed")
		return
	}
	p.active[service] = handle
	p.mu.Unlock()

	go p.release(service, handle)
}

// release clears the handle once its clip finishes, unless a newer clip has
// already replaced it.
func (p *Player) release(service string, handle Handle) {
	<-handle.Done()

	p.mu.Lock()
	if p.active[service] == handle {
		delete(p.active, service)
	}
	p.mu.Unlock()
}

// ActiveCount returns the number of services with a clip in flight.
func (p *Player) ActiveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.active)
}

// StopAll stops and releases every in-flight clip. Used on unmount.
func (p *Player) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for service, handle := range p.active {
		handle.Stop()
		delete(p.active, service)
	}
}
