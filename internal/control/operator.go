package control

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Unknowkubbrother/Project-SmartQ/internal/operator"
	"github.com/Unknowkubbrother/Project-SmartQ/internal/store"
	"github.com/go-chi/chi/v5"
)

// OperatorAPI exposes the operator console actions over HTTP. Validation
// failures come back as 4xx before any remote call is made; remote failures
// surface as 502 with the action left to the authoritative socket stream.
type OperatorAPI struct {
	controller *operator.Controller
	store      *store.Store
}

// NewOperatorAPI creates the operator control surface.
func NewOperatorAPI(ctrl *operator.Controller, st *store.Store) *OperatorAPI {
	return &OperatorAPI{controller: ctrl, store: st}
}

// Routes mounts the operator endpoints.
func (a *OperatorAPI) Routes(r chi.Router) {
	r.Get("/state", a.stateHandler)
	r.Get("/candidates", a.candidatesHandler)
	r.Post("/call-next", a.callNextHandler)
	r.Post("/complete", a.completeHandler)
	r.Post("/call-again", a.callAgainHandler)
	r.Post("/skip", a.skipHandler)
	r.Post("/transfer", a.transferHandler)
	r.Post("/mute", a.muteHandler)
}

func (a *OperatorAPI) stateHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.All())
}

func (a *OperatorAPI) candidatesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.controller.Candidates())
}

func (a *OperatorAPI) callNextHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Service string `json:"service"`
		Counter string `json:"counter"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := a.controller.CallNext(r.Context(), req.Service, req.Counter); err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "next ticket called"})
}

func (a *OperatorAPI) completeHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Service string `json:"service"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := a.controller.Complete(r.Context(), req.Service); err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "ticket completed"})
}

func (a *OperatorAPI) callAgainHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Service string `json:"service"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := a.controller.CallAgain(r.Context(), req.Service); err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "announcement replayed"})
}

func (a *OperatorAPI) skipHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Service string `json:"service"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := a.controller.Skip(r.Context(), req.Service); err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "ticket sent to back of line"})
}

func (a *OperatorAPI) transferHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QNumber       int    `json:"Q_number"`
		Service       string `json:"service"`
		TargetService string `json:"target_service"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := a.controller.SelectCandidate(req.Service, req.QNumber); err != nil {
		writeActionError(w, err)
		return
	}
	if err := a.controller.Transfer(r.Context(), req.TargetService); err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "ticket transferred"})
}

func (a *OperatorAPI) muteHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Service string `json:"service"`
		Muted   bool   `json:"muted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := a.controller.SetMute(r.Context(), req.Service, req.Muted); err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "mute updated", "muted": req.Muted})
}

// writeActionError maps controller errors onto HTTP statuses: local
// validation failures are the caller's fault, anything else means the
// remote queue service could not be reached.
func writeActionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, operator.ErrAlreadyCalling):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, operator.ErrNoCounter),
		errors.Is(err, operator.ErrNoCurrent),
		errors.Is(err, operator.ErrNoCandidate),
		errors.Is(err, operator.ErrSameService):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusBadGateway, err)
	}
}
