package http

import (
	"encoding/json"
	"net/http"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/criminals"
)

// ListCriminals carrega a lista completa de procurados.
func (h *Handler) ListCriminals(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.criminals.Load(r.Context())
	h.writeCriminalList(w, state)
}

// FilterCriminals aplica os critérios combinados sobre a lista carregada.
func (h *Handler) FilterCriminals(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload struct {
		Query     string `json:"query"`
		FaceColor string `json:"faceColor"`
		HairColor string `json:"hairColor"`
		Height    string `json:"height"`
		BodyType  string `json:"bodyType"`
		Gender    string `json:"gender"`
		AgeMin    *int   `json:"ageMin"`
		AgeMax    *int   `json:"ageMax"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	filters := criminals.Filters{
		Query:     payload.Query,
		FaceColor: payload.FaceColor,
		HairColor: payload.HairColor,
		Height:    payload.Height,
		BodyType:  payload.BodyType,
		Gender:    payload.Gender,
	}
	if payload.AgeMin != nil || payload.AgeMax != nil {
		band := criminals.AgeRange{}
		if payload.AgeMin != nil {
			band.Min = *payload.AgeMin
		}
		if payload.AgeMax != nil {
			band.Max = *payload.AgeMax
		}
		filters.AgeRange = &band
	}

	state.criminals.Filter(filters)
	h.writeCriminalList(w, state)
}

func (h *Handler) writeCriminalList(w http.ResponseWriter, state *sessionState) {
	loading, message := state.criminals.State()
	WriteJSON(w, http.StatusOK, map[string]any{
		"rows":    state.criminals.Rows(),
		"loading": loading,
		"message": message,
	})
}

// criminalDraftPayload aplica apenas os campos presentes sobre o rascunho.
type criminalDraftPayload struct {
	FirstName  *string `json:"firstName"`
	MiddleName *string `json:"middleName"`
	LastName   *string `json:"lastName"`
	FaceColor  *string `json:"faceColor"`
	HairColor  *string `json:"hairColor"`
	Height     *string `json:"height"`
	BodyType   *string `json:"bodyType"`
	Age        *int    `json:"age"`
	Gender     *string `json:"gender"`
	FileNumber *string `json:"fileNumber"`
}

func (p criminalDraftPayload) apply(draft *backend.CriminalDraft) {
	if p.FirstName != nil {
		draft.FirstName = *p.FirstName
	}
	if p.MiddleName != nil {
		draft.MiddleName = *p.MiddleName
	}
	if p.LastName != nil {
		draft.LastName = *p.LastName
	}
	if p.FaceColor != nil {
		draft.FaceColor = *p.FaceColor
	}
	if p.HairColor != nil {
		draft.HairColor = *p.HairColor
	}
	if p.Height != nil {
		draft.Height = *p.Height
	}
	if p.BodyType != nil {
		draft.BodyType = *p.BodyType
	}
	if p.Age != nil {
		age := *p.Age
		draft.Age = &age
	}
	if p.Gender != nil {
		draft.Gender = *p.Gender
	}
	if p.FileNumber != nil {
		draft.FileNumber = *p.FileNumber
	}
}

// OpenAddCriminal prepara o rascunho de cadastro de procurado.
func (h *Handler) OpenAddCriminal(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.criminals.OpenAdd(identity)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "open"})
}

// UpdateAddCriminal aplica edições ao rascunho de cadastro.
func (h *Handler) UpdateAddCriminal(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload criminalDraftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if err := state.criminals.UpdateAdd(payload.apply); err != nil {
		WriteError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "staged"})
}

// SubmitAddCriminal envia o cadastro com a foto opcional.
func (h *Handler) SubmitAddCriminal(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	photo, err := formFile(r, "photo")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "arquivo inválido", nil)
		return
	}

	if err := state.criminals.SubmitAdd(r.Context(), photo); err != nil {
		writeFormError(w, err)
		return
	}
	h.writeCriminalList(w, state)
}

// CancelAddCriminal descarta o rascunho de cadastro.
func (h *Handler) CancelAddCriminal(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.criminals.CancelAdd()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
