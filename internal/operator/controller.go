package operator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Unknowkubbrother/Project-SmartQ/internal/api"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/session"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/store"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/types"
	"github.com/rs/zerolog"
)

// Validation errors surfaced to the operator before any remote call is made.
var (
	ErrNoCounter      = errors.New("no counter selected")
	ErrAlreadyCalling = errors.New("a ticket is already being called for this service")
	ErrNoCurrent      = errors.New("no ticket is currently being called")
	ErrNoCandidate    = errors.New("no transfer candidate selected")
	ErrSameService    = errors.New("transfer target must differ from the source service")
)

// Controller drives the operator's call/complete/transfer/skip workflow for
// the services it watches. Remote actions are fire-and-forget: the
// authoritative outcome arrives over the socket, the controller only gates
// intent locally. The transfer-candidate set is a local overlay that the
// next authoritative history frame overwrites.
type Controller struct {
	apiClient *api.Client
	store     *store.Store
	session   *session.Session
	logger    zerolog.Logger

	mu         sync.Mutex
	candidates []types.TransferCandidate
	selected   *types.TransferCandidate
}

// NewController creates a controller bound to one operator session.
func NewController(apiClient *api.Client, st *store.Store, sess *session.Session, logger zerolog.Logger) *Controller {
	return &Controller{
		apiClient: apiClient,
		store:     st,
		session:   sess,
		logger:    logger.With().Str("component", "operator").Logger(),
	}
}

// CallNext asks the service to call its next waiting ticket to the given
// counter. Rejected locally while a ticket is still in flight: at most one
// ticket may be current per service.
func (c *Controller) CallNext(ctx context.Context, service, counter string) error {
	if counter == "" {
		return ErrNoCounter
	}
	if st, ok := c.store.Get(service); ok && st.Current != nil {
		return ErrAlreadyCalling
	}

	if err := c.apiClient.Dequeue(ctx, service, counter); err != nil {
		return fmt.Errorf("call next: %w", err)
	}
	c.logger.Info().Str("service", service).Str("counter", counter).Msg("called next ticket")
	return nil
}

// Complete finishes the current ticket, tagging the completion with the
// operator's stable id. The completed ticket immediately becomes a transfer
// candidate; the next history frame reconciles the overlay.
func (c *Controller) Complete(ctx context.Context, service string) error {
	st, ok := c.store.Get(service)
	if !ok || st.Current == nil {
		return ErrNoCurrent
	}
	current := *st.Current

	if err := c.apiClient.Complete(ctx, current, c.session.OperatorID()); err != nil {
		return fmt.Errorf("complete: %w", err)
	}

	c.addCandidate(types.TransferCandidate{
		QNumber:         current.QNumber,
		Fullname:        current.Fullname,
		Service:         service,
		CompletedBy:     c.session.OperatorID(),
		CompletedByName: c.session.OperatorName(),
	})

	c.logger.Info().Str("service", service).Int("q_number", current.QNumber).Msg("completed ticket")
	return nil
}

// candidateKey identifies a candidate. Ticket numbers are only unique within
// a service, so the service is part of the identity.
type candidateKey struct {
	service string
	qnumber int
}

// SelectCandidate picks a completed ticket as the pending transfer source.
func (c *Controller) SelectCandidate(service string, qnumber int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.candidates {
		if c.candidates[i].Service == service && c.candidates[i].QNumber == qnumber {
			sel := c.candidates[i]
			c.selected = &sel
			return nil
		}
	}
	return ErrNoCandidate
}

// Transfer re-enqueues the selected candidate into the target service. The
// candidate leaves the local set optimistically; the server's history frame
// is authoritative.
func (c *Controller) Transfer(ctx context.Context, targetService string) error {
	c.mu.Lock()
	selected := c.selected
	c.mu.Unlock()

	if selected == nil {
		return ErrNoCandidate
	}
	if targetService == "" || targetService == selected.Service {
		return ErrSameService
	}

	if err := c.apiClient.Transfer(ctx, selected.QNumber, selected.Service, targetService); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}

	c.mu.Lock()
	c.removeCandidateLocked(selected.Service, selected.QNumber)
	c.selected = nil
	c.mu.Unlock()

	c.logger.Info().
		Int("q_number", selected.QNumber).
		Str("from", selected.Service).
		Str("to", targetService).
		Msg("transferred ticket")
	return nil
}

// Skip sends the current holder to the back of their own line: a fresh
// ticket is enqueued under the same name, then the original is completed.
// The two remote steps are independent; if the second fails the ticket is
// left duplicated and the error is surfaced rather than rolled back.
func (c *Controller) Skip(ctx context.Context, service string) error {
	st, ok := c.store.Get(service)
	if !ok || st.Current == nil {
		return ErrNoCurrent
	}
	current := *st.Current

	if err := c.apiClient.Enqueue(ctx, current.Fullname, service); err != nil {
		return fmt.Errorf("skip enqueue: %w", err)
	}

	if err := c.apiClient.Complete(ctx, current, c.session.OperatorID()); err != nil {
		c.logger.Error().Err(err).
			Str("service", service).
			Int("q_number", current.QNumber).
			Msg("skip completed enqueue but failed to complete original ticket")
		return fmt.Errorf("skip complete: %w", err)
	}

	c.logger.Info().Str("service", service).Int("q_number", current.QNumber).Msg("skipped ticket")
	return nil
}

// CallAgain replays the announcement for the current ticket without changing
// its status. No-op when nothing is being called.
func (c *Controller) CallAgain(ctx context.Context, service string) error {
	st, ok := c.store.Get(service)
	if !ok || st.Current == nil {
		return nil
	}
	if err := c.apiClient.Reannounce(ctx, service); err != nil {
		return fmt.Errorf("call again: %w", err)
	}
	return nil
}

// SetMute toggles audio suppression for a service. Visual state is
// unaffected; a clip already playing on a display is never taken back.
func (c *Controller) SetMute(ctx context.Context, service string, muted bool) error {
	if err := c.apiClient.SetMute(ctx, service, muted); err != nil {
		return fmt.Errorf("mute: %w", err)
	}
	return nil
}

// Candidates returns the current transfer candidate overlay.
func (c *Controller) Candidates() []types.TransferCandidate {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.TransferCandidate, len(c.candidates))
	copy(out, c.candidates)
	return out
}

// ReconcileHistory overwrites the candidate overlay for one service with
// that service's authoritative history: only this operator's completions,
// not yet transferred, deduplicated by ticket number. Candidates from other
// services are left alone; history frames arrive per service socket.
func (c *Controller) ReconcileHistory(service string, history []types.HistoryRecord) {
	operatorID := c.session.OperatorID()

	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.candidates[:0]
	seen := make(map[candidateKey]bool, len(c.candidates))
	for _, cand := range c.candidates {
		if cand.Service != service {
			next = append(next, cand)
			seen[candidateKey{cand.Service, cand.QNumber}] = true
		}
	}

	for _, h := range history {
		if h.CompletedBy != operatorID || h.Transferred {
			continue
		}
		svc := h.Service
		if svc == "" {
			svc = service
		}
		key := candidateKey{svc, h.QNumber}
		if seen[key] {
			continue
		}
		seen[key] = true
		next = append(next, types.TransferCandidate{
			QNumber:         h.QNumber,
			Fullname:        h.Fullname,
			Service:         svc,
			CompletedBy:     h.CompletedBy,
			CompletedByName: h.CompletedByName,
		})
	}
	c.candidates = next

	if c.selected != nil && c.selected.Service == service &&
		!seen[candidateKey{c.selected.Service, c.selected.QNumber}] {
		c.selected = nil
	}
}

func (c *Controller) addCandidate(cand types.TransferCandidate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.candidates {
		if existing.Service == cand.Service && existing.QNumber == cand.QNumber {
			return
		}
	}
	c.candidates = append(c.candidates, cand)
}

// removeCandidateLocked drops one candidate by its service-scoped identity.
// Caller must hold the lock.
func (c *Controller) removeCandidateLocked(service string, qnumber int) {
	kept := c.candidates[:0]
	for _, cand := range c.candidates {
		if cand.Service != service || cand.QNumber != qnumber {
			kept = append(kept, cand)
		}
	}
	c.candidates = kept
}
