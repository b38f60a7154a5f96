package control

import (
	"net/http"

	"github.com/Unknowkubbrother/Project-SmartQ/internal/board"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/store"
	"github.com/go-chi/chi/v5"
)

// BoardAPI serves the display board snapshot. Read-only: the board never
// mutates queue state.
type BoardAPI struct {
	store *store.Store
}

// NewBoardAPI creates the board control surface over the state store.
func NewBoardAPI(st *store.Store) *BoardAPI {
	return &BoardAPI{store: st}
}

// Routes mounts the board endpoints.
func (a *BoardAPI) Routes(r chi.Router) {
	r.Get("/board", a.boardHandler)
	r.Get("/services", a.servicesHandler)
}

// boardHandler returns the aggregated board view: actively-calling services,
// most recently called first.
func (a *BoardAPI) boardHandler(w http.ResponseWriter, r *http.Request) {
	snapshot := board.BuildSnapshot(a.store.All())
	writeJSON(w, http.StatusOK, snapshot)
}

// servicesHandler returns the raw per-service states.
func (a *BoardAPI) servicesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.All())
}
