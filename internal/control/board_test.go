package control

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Unknowkubbrother/Project-SmartQ/internal/board"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/store"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func newBoardFixture() (http.Handler, *store.Store) {
	st := store.New(zerolog.Nop())
	r := chi.NewRouter()
	NewBoardAPI(st).Routes(r)
	return r, st
}

func TestBoardSnapshot(t *testing.T) {
	h, st := newBoardFixture()

	st.Apply("general", types.Message{Kind: types.KindCurrent, Item: &types.QueueItem{QNumber: 101}})
	st.Apply("emergency", types.Message{Kind: types.KindCurrent, Item: &types.QueueItem{QNumber: 9}})
	st.Apply("lab", types.Message{Kind: types.KindQueueUpdate, Queue: []types.QueueItem{{QNumber: 3}}})

	req := httptest.NewRequest(http.MethodGet, "/board", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var snap board.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	// Only the two calling services are visible; lab has no current ticket.
	if len(snap.Visible) != 2 {
		t.Errorf("expected 2 visible services, got %d", len(snap.Visible))
	}
	if snap.CardSize != board.CardHalf {
		t.Errorf("expected half cards, got %s", snap.CardSize)
	}
}

func TestBoardServices(t *testing.T) {
	h, st := newBoardFixture()
	st.SetLabel("general", "General Service")

	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var states []types.ServiceState
	if err := json.Unmarshal(rec.Body.Bytes(), &states); err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 || states[0].Label != "General Service" {
		t.Errorf("unexpected services payload: %+v", states)
	}
}
