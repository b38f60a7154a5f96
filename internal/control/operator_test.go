package control

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Unknowkubbrother/Project-SmartQ/internal/api"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/operator"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/session"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/store"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// newOperatorFixture returns the control surface wired against a stub queue
// backend, plus the store so tests can seed state.
func newOperatorFixture(t *testing.T, backendStatus int) (http.Handler, *store.Store) {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(backendStatus)
	}))
	t.Cleanup(backend.Close)

	st := store.New(zerolog.Nop())
	sess := session.New("Alice", backend.URL)
	ctrl := operator.NewController(api.NewClient(backend.URL, time.Second), st, sess, zerolog.Nop())

	r := chi.NewRouter()
	NewOperatorAPI(ctrl, st).Routes(r)
	return r, st
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCallNextOK(t *testing.T) {
	h, _ := newOperatorFixture(t, http.StatusOK)

	rec := postJSON(t, h, "/call-next", map[string]string{"service": "general", "counter": "counter-1"})
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCallNextWithoutCounterIs400(t *testing.T) {
	h, _ := newOperatorFixture(t, http.StatusOK)

	rec := postJSON(t, h, "/call-next", map[string]string{"service": "general"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCallNextWhileCallingIs409(t *testing.T) {
	h, st := newOperatorFixture(t, http.StatusOK)
	st.Apply("general", types.Message{Kind: types.KindCurrent, Item: &types.QueueItem{QNumber: 101}})

	rec := postJSON(t, h, "/call-next", map[string]string{"service": "general", "counter": "counter-1"})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestBackendFailureIs502(t *testing.T) {
	h, _ := newOperatorFixture(t, http.StatusInternalServerError)

	rec := postJSON(t, h, "/call-next", map[string]string{"service": "general", "counter": "counter-1"})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
}

func TestCompleteWithoutCurrentIs400(t *testing.T) {
	h, _ := newOperatorFixture(t, http.StatusOK)

	rec := postJSON(t, h, "/complete", map[string]string{"service": "general"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestTransferWithoutCandidateIs400(t *testing.T) {
	h, _ := newOperatorFixture(t, http.StatusOK)

	rec := postJSON(t, h, "/transfer", map[string]any{"Q_number": 101, "service": "general", "target_service": "emergency"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestSkipFlow(t *testing.T) {
	h, st := newOperatorFixture(t, http.StatusOK)
	st.Apply("general", types.Message{Kind: types.KindCurrent, Item: &types.QueueItem{
		QNumber: 101, Fullname: "Somchai", Service: "general",
	}})

	rec := postJSON(t, h, "/skip", map[string]string{"service": "general"})
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMute(t *testing.T) {
	h, _ := newOperatorFixture(t, http.StatusOK)

	rec := postJSON(t, h, "/mute", map[string]any{"service": "general", "muted": true})
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["muted"] != true {
		t.Errorf("expected muted echoed back, got %v", resp)
	}
}

func TestMalformedBodyIs400(t *testing.T) {
	h, _ := newOperatorFixture(t, http.StatusOK)

	req := httptest.NewRequest(http.MethodPost, "/call-next", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestStateAndCandidates(t *testing.T) {
	h, st := newOperatorFixture(t, http.StatusOK)
	st.Apply("general", types.Message{Kind: types.KindQueueUpdate, Queue: []types.QueueItem{{QNumber: 1}}})

	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var states []types.ServiceState
	if err := json.Unmarshal(rec.Body.Bytes(), &states); err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 || len(states[0].Queue) != 1 {
		t.Errorf("unexpected state payload: %+v", states)
	}

	req = httptest.NewRequest(http.MethodGet, "/candidates", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var cands []types.TransferCandidate
	if err := json.Unmarshal(rec.Body.Bytes(), &cands); err != nil {
		t.Fatal(err)
	}
	if len(cands) != 0 {
		t.Errorf("expected no candidates, got %+v", cands)
	}
}
