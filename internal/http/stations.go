package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/stations"
)

// ListStations carrega as delegacias do escopo raiz.
func (h *Handler) ListStations(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.stations.Load(r.Context())
	h.writeStationList(w, state)
}

// QueryStations aplica filtro textual sobre a lista já carregada.
func (h *Handler) QueryStations(w http.ResponseWriter, r *http.Request) {
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

	state.stations.Search(payload.Query)
	h.writeStationList(w, state)
}

func (h *Handler) writeStationList(w http.ResponseWriter, state *sessionState) {
	loading, message := state.stations.State()
	WriteJSON(w, http.StatusOK, map[string]any{
		"rows":    state.stations.Rows(),
		"loading": loading,
		"message": message,
	})
}

// OpenAddStation prepara o rascunho de cadastro de delegacia.
func (h *Handler) OpenAddStation(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.stations.OpenAdd()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "open"})
}

// stationDraftPayload aplica apenas os campos presentes sobre o rascunho.
type stationDraftPayload struct {
	Name           *string `json:"name"`
	PhoneNumber    *string `json:"phoneNumber"`
	SecPhoneNumber *string `json:"secPhoneNumber"`
}

// UpdateAddStation aplica edições ao rascunho de cadastro.
func (h *Handler) UpdateAddStation(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload stationDraftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if err := state.stations.UpdateAdd(func(draft *backend.StationDraft) {
		if payload.Name != nil {
			draft.Name = *payload.Name
		}
		if payload.PhoneNumber != nil {
			draft.PhoneNumber = *payload.PhoneNumber
		}
		if payload.SecPhoneNumber != nil {
			draft.SecPhoneNumber = *payload.SecPhoneNumber
		}
	}); err != nil {
		WriteError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "staged"})
}

// SubmitAddStation envia o cadastro com o logo opcional; exige o seletor
// região→zona→cidade completo.
func (h *Handler) SubmitAddStation(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	logo, err := formFile(r, "logo")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "arquivo inválido", nil)
		return
	}

	if err := state.stations.SubmitAdd(r.Context(), logo); err != nil {
		if errors.Is(err, stations.ErrSelectionIncomplete) {
			WriteError(w, http.StatusConflict, "SCOPE", err.Error(), nil)
			return
		}
		writeFormError(w, err)
		return
	}
	h.writeStationList(w, state)
}

// CancelAddStation descarta o rascunho de cadastro.
func (h *Handler) CancelAddStation(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.stations.CancelAdd()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
