package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/urbanbyte/sentinela/internal/settings"
)

// Profile devolve o cartão de perfil do policial logado.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := state.settings.LoadProfile(r.Context(), identity.OfficerID); err != nil {
		writeBackendError(w, err)
		return
	}

	profile, _ := state.settings.Profile()
	WriteJSON(w, http.StatusOK, profile)
}

// ChangePassword valida localmente e repassa a troca de senha ao backend.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload struct {
		OldPassword     string `json:"oldPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	err := state.settings.ChangePassword(r.Context(), identity.OfficerID,
		payload.OldPassword, payload.NewPassword, payload.ConfirmPassword)
	if err != nil {
		if errors.Is(err, settings.ErrFieldsRequired) || errors.Is(err, settings.ErrPasswordMismatch) {
			WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
			return
		}
		writeBackendError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
