package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/urbanbyte/sentinela/internal/auth"
	"github.com/urbanbyte/sentinela/internal/posts"
	"github.com/urbanbyte/sentinela/internal/prefs"
	"github.com/urbanbyte/sentinela/internal/session"
)

// Login autentica o policial no backend de registros, abre a sessão do
// painel e resolve a cadeia de localização da cidade dele.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		OfficerID string `json:"policeOfficerId"`
		Password  string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if strings.TrimSpace(payload.OfficerID) == "" || strings.TrimSpace(payload.Password) == "" {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "identificador e senha são obrigatórios", nil)
		return
	}

	result, err := h.client.Login(r.Context(), payload.OfficerID, payload.Password)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	role := session.Role(result.Officer.Role)
	if !role.Valid() {
		WriteError(w, http.StatusForbidden, "FORBIDDEN", "papel não reconhecido", nil)
		return
	}

	sessionID, err := auth.NewSessionID()
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível abrir a sessão", nil)
		return
	}

	token, err := h.jwt.GenerateSessionToken(sessionID, int(role), result.Officer.StationID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível emitir o token", nil)
		return
	}

	identity := session.Identity{
		OfficerID:   result.Officer.ID,
		FirstName:   result.Officer.FirstName,
		MiddleName:  result.Officer.MiddleName,
		LastName:    result.Officer.LastName,
		Role:        role,
		StationID:   result.Officer.StationID,
		StationName: result.Officer.StationName,
		TownID:      result.Officer.TownID,
	}

	state := h.registry.get(r.Context(), sessionID)
	if err := state.session.Login(r.Context(), identity, result.Token); err != nil {
		log.Warn().Err(err).Msg("falha ao persistir sessão")
	}

	state.resolver.Resolve(r.Context(), identity.TownID)

	holder := state.prefsHolder(r.Context(), h.kv, identity.OfficerID, h.cfg.DefaultLocale, log.Logger)

	WriteJSON(w, http.StatusOK, map[string]any{
		"token":        token,
		"officer":      identity,
		"roleLabel":    role.Label(),
		"visibleTiers": posts.VisibleTiers(role),
		"prefs":        holder.Current(),
	})
}

// Logout encerra a sessão e descarta o estado dela.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	state := h.state(r)
	if err := state.session.Logout(r.Context()); err != nil {
		log.Warn().Err(err).Msg("falha ao encerrar sessão")
	}
	state.resetPrefs()
	h.registry.drop(state.session.SessionID())

	WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me devolve identidade, abas visíveis e preferências da sessão.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	holder := h.prefsFor(r, state, identity)

	WriteJSON(w, http.StatusOK, map[string]any{
		"officer":      identity,
		"roleLabel":    identity.Role.Label(),
		"visibleTiers": posts.VisibleTiers(identity.Role),
		"prefs":        holder.Current(),
	})
}

// GetPrefs devolve as preferências de exibição correntes.
func (h *Handler) GetPrefs(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	WriteJSON(w, http.StatusOK, h.prefsFor(r, state, identity).Current())
}

// UpdatePrefs aplica apenas os campos presentes no corpo.
func (h *Handler) UpdatePrefs(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload struct {
		DarkMode         *bool   `json:"darkMode"`
		Locale           *string `json:"locale"`
		SidebarCollapsed *bool   `json:"sidebarCollapsed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	holder := h.prefsFor(r, state, identity)
	if payload.DarkMode != nil {
		holder.SetDarkMode(r.Context(), *payload.DarkMode)
	}
	if payload.Locale != nil {
		holder.SetLocale(r.Context(), *payload.Locale)
	}
	if payload.SidebarCollapsed != nil {
		holder.SetSidebarCollapsed(r.Context(), *payload.SidebarCollapsed)
	}

	WriteJSON(w, http.StatusOK, holder.Current())
}

func (h *Handler) prefsFor(r *http.Request, state *sessionState, identity session.Identity) *prefs.Holder {
	return state.prefsHolder(r.Context(), h.kv, identity.OfficerID, h.cfg.DefaultLocale, log.Logger)
}
