package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/officers"
)

// ListOfficers carrega os policiais da própria delegacia.
func (h *Handler) ListOfficers(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.officers.Load(r.Context(), identity.StationID)
	h.writeOfficerList(w, state)
}

// QueryOfficers aplica filtro textual sobre a lista já carregada.
func (h *Handler) QueryOfficers(w http.ResponseWriter, r *http.Request) {
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

	state.officers.Search(payload.Query)
	h.writeOfficerList(w, state)
}

func (h *Handler) writeOfficerList(w http.ResponseWriter, state *sessionState) {
	loading, message := state.officers.State()
	WriteJSON(w, http.StatusOK, map[string]any{
		"rows":    state.officers.Rows(),
		"loading": loading,
		"message": message,
	})
}

// officerDraftPayload aplica apenas os campos presentes sobre o rascunho.
type officerDraftPayload struct {
	FirstName   *string `json:"firstName"`
	MiddleName  *string `json:"middleName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Role        *int    `json:"role"`
	StationID   *string `json:"policeStationId"`
	TownID      *int64  `json:"townId"`
}

func (p officerDraftPayload) apply(draft *backend.OfficerDraft) {
	if p.FirstName != nil {
		draft.FirstName = *p.FirstName
	}
	if p.MiddleName != nil {
		draft.MiddleName = *p.MiddleName
	}
	if p.LastName != nil {
		draft.LastName = *p.LastName
	}
	if p.PhoneNumber != nil {
		draft.PhoneNumber = *p.PhoneNumber
	}
	if p.Email != nil {
		draft.Email = *p.Email
	}
	if p.Password != nil {
		draft.Password = *p.Password
	}
	if p.Role != nil {
		draft.Role = *p.Role
	}
	if p.StationID != nil {
		draft.StationID = *p.StationID
	}
	if p.TownID != nil {
		draft.TownID = *p.TownID
	}
}

// OpenAddOfficer prepara o rascunho de cadastro de policial.
func (h *Handler) OpenAddOfficer(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.officers.OpenAdd(identity)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "open"})
}

// UpdateAddOfficer aplica edições ao rascunho de cadastro.
func (h *Handler) UpdateAddOfficer(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload officerDraftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if err := state.officers.UpdateAdd(payload.apply); err != nil {
		WriteError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "staged"})
}

// SubmitAddOfficer envia o cadastro com a foto opcional.
func (h *Handler) SubmitAddOfficer(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	photo, err := formFile(r, "photo")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "arquivo inválido", nil)
		return
	}

	if err := state.officers.SubmitAdd(r.Context(), photo); err != nil {
		writeFormError(w, err)
		return
	}
	h.writeOfficerList(w, state)
}

// CancelAddOfficer descarta o rascunho de cadastro.
func (h *Handler) CancelAddOfficer(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.officers.CancelAdd()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// OpenEditOfficer prepara o rascunho de edição a partir da lista corrente.
func (h *Handler) OpenEditOfficer(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	officerID := chi.URLParam(r, "officerID")
	if err := state.officers.OpenEdit(officerID); err != nil {
		if errors.Is(err, officers.ErrRowNotFound) {
			WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
			return
		}
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "open"})
}

// UpdateEditOfficer aplica edições ao rascunho de edição.
func (h *Handler) UpdateEditOfficer(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload officerDraftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if err := state.officers.UpdateEdit(func(draft *officers.EditDraft) {
		payload.apply(&draft.OfficerDraft)
	}); err != nil {
		WriteError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "staged"})
}

// SubmitEditOfficer envia a edição.
func (h *Handler) SubmitEditOfficer(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := state.officers.SubmitEdit(r.Context()); err != nil {
		writeFormError(w, err)
		return
	}
	h.writeOfficerList(w, state)
}

// CancelEditOfficer descarta o rascunho de edição.
func (h *Handler) CancelEditOfficer(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.officers.CancelEdit()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
