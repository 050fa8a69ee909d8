package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/urbanbyte/sentinela/internal/messaging"
	"github.com/urbanbyte/sentinela/internal/session"
)

func (h *Handler) messagingFor(state *sessionState, identity session.Identity) *messaging.Service {
	return state.messagingService(h.client, h.kv, h.cfg.UploadsBaseURL, identity.StationID, log.Logger)
}

// ListCounterparts devolve o diretório de conversas com não lidas.
func (h *Handler) ListCounterparts(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	svc := h.messagingFor(state, identity)
	if err := svc.LoadCounterparts(r.Context()); err != nil {
		writeBackendError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"counterparts": svc.Counterparts(),
	})
}

// OpenConversation abre o histórico com a delegacia informada.
func (h *Handler) OpenConversation(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	otherID := chi.URLParam(r, "stationID")
	svc := h.messagingFor(state, identity)
	if err := svc.OpenConversation(r.Context(), otherID); err != nil {
		writeBackendError(w, err)
		return
	}

	h.writeConversation(w, svc)
}

// GetConversation devolve a conversa aberta.
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	h.writeConversation(w, h.messagingFor(state, identity))
}

func (h *Handler) writeConversation(w http.ResponseWriter, svc *messaging.Service) {
	otherID, rows := svc.Messages()
	WriteJSON(w, http.StatusOK, map[string]any{
		"stationId": otherID,
		"messages":  rows,
	})
}

// CloseConversation descarta a conversa aberta.
func (h *Handler) CloseConversation(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	h.messagingFor(state, identity).CloseConversation()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// SendMessage envia o conteúdo para a conversa aberta.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	svc := h.messagingFor(state, identity)
	if err := svc.Send(r.Context(), payload.Content); err != nil {
		if errors.Is(err, messaging.ErrEmptyMessage) || errors.Is(err, messaging.ErrNoConversation) {
			WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
			return
		}
		writeBackendError(w, err)
		return
	}

	h.writeConversation(w, svc)
}
