package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/urbanbyte/sentinela/internal/backend"
)

// ListReports carrega a caixa de relatórios da própria delegacia.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.reports.Load(r.Context(), identity.StationID)
	h.writeReportList(w, state)
}

// QueryReports aplica filtro textual sobre a caixa já carregada.
func (h *Handler) QueryReports(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	state.reports.Search(payload.Query)
	h.writeReportList(w, state)
}

func (h *Handler) writeReportList(w http.ResponseWriter, state *sessionState) {
	loading, message := state.reports.State()
	WriteJSON(w, http.StatusOK, map[string]any{
		"rows":    state.reports.Rows(),
		"loading": loading,
		"message": message,
	})
}

// OpenReport prepara o rascunho de escalonamento de um post.
func (h *Handler) OpenReport(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id de post inválido", nil)
		return
	}

	state.reports.Open(postID, identity)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "open"})
}

// reportDraftPayload aplica apenas os campos presentes sobre o rascunho.
type reportDraftPayload struct {
	Description *string `json:"reportDescription"`
	Priority    *int    `json:"priority"`
}

// UpdateReport aplica edições ao rascunho de escalonamento.
func (h *Handler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload reportDraftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if err := state.reports.Update(func(draft *backend.ReportDraft) {
		if payload.Description != nil {
			draft.Description = *payload.Description
		}
		if payload.Priority != nil {
			draft.Priority = *payload.Priority
		}
	}); err != nil {
		WriteError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "staged"})
}

// SubmitReport envia o relatório de escalonamento.
func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := state.reports.Submit(r.Context()); err != nil {
		writeFormError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "reported"})
}

// CancelReport descarta o rascunho de escalonamento.
func (h *Handler) CancelReport(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.reports.Cancel()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
