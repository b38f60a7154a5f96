package calltimer

import (
	"sync"
	"time"
)

// Clock abstracts timer scheduling so the highlight machine is testable
// without real timers.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a single-shot scheduled callback.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns a Clock backed by the runtime timer.
func RealClock() Clock {
	return realClock{}
}

// Timers drives the ephemeral "isCalling" highlight per service. Each service
// is either Idle or Calling with a pending expiry; a retrigger cancels and
// restarts the pending timer instead of stacking a second one. Purely
// cosmetic state, never used for correctness.
type Timers struct {
	mu      sync.Mutex
	clock   Clock
	pending map[string]Timer
	gen     map[string]uint64
	calling map[string]bool
	onSet   func(service string, calling bool)
}

// New creates highlight timers. onSet is invoked, without the internal lock
// held, whenever a service's highlight flag changes.
func New(clock Clock, onSet func(service string, calling bool)) *Timers {
	return &Timers{
		clock:   clock,
		pending: make(map[string]Timer),
		gen:     make(map[string]uint64),
		calling: make(map[string]bool),
		onSet:   onSet,
	}
}

// Trigger marks the service as calling for the given window. An existing
// window for the same service is cancelled and replaced; the generation
// counter keeps an already-fired callback of the old window from clearing
// the new one.
func (t *Timers) Trigger(service string, window time.Duration) {
	t.mu.Lock()
	if prev, ok := t.pending[service]; ok {
		prev.Stop()
	}
	t.gen[service]++
	gen := t.gen[service]
	t.calling[service] = true
	t.pending[service] = t.clock.AfterFunc(window, func() {
		t.expire(service, gen)
	})
	t.mu.Unlock()

	t.onSet(service, true)
}

func (t *Timers) expire(service string, gen uint64) {
	t.mu.Lock()
	if t.gen[service] != gen {
		// A retrigger replaced this window while the callback was in flight.
		t.mu.Unlock()
		return
	}
	delete(t.pending, service)
	t.calling[service] = false
	t.mu.Unlock()

	t.onSet(service, false)
}

// IsCalling reports the current highlight flag for a service.
func (t *Timers) IsCalling(service string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calling[service]
}

// StopAll cancels every pending window. Used on shutdown and unmount.
func (t *Timers) StopAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for service, timer := range t.pending {
		timer.Stop()
		delete(t.pending, service)
		t.gen[service]++
		t.calling[service] = false
	}
}
