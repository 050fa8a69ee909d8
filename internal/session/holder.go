package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/auth"
	"github.com/urbanbyte/sentinela/internal/store"
)

// persisted é o envelope gravado no armazenamento durável.
type persisted struct {
	Identity Identity `json:"identity"`
	Token    string   `json:"token"`
}

// Holder guarda a identidade autenticada de uma sessão e expõe
// login/logout. O estado em memória é atualizado de forma síncrona e o
// armazenamento durável é escrito a cada login/logout, nunca em leituras.
type Holder struct {
	mu        sync.RWMutex
	kv        store.KV
	sessionID string
	ttl       time.Duration
	identity  *Identity
	token     string
}

// NewHolder constrói o holder e tenta reidratar do armazenamento durável.
// Dados ausentes ou corrompidos resultam em "sem sessão", nunca em erro.
func NewHolder(ctx context.Context, kv store.KV, sessionID string, ttl time.Duration, logger zerolog.Logger) *Holder {
	h := &Holder{kv: kv, sessionID: sessionID, ttl: ttl}

	raw, err := kv.Get(ctx, auth.SessionKey(sessionID))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn().Err(err).Msg("falha ao reidratar sessão")
		}
		return h
	}

	var state persisted
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		logger.Warn().Err(err).Msg("sessão persistida corrompida, descartando")
		_ = kv.Del(ctx, auth.SessionKey(sessionID))
		return h
	}

	h.identity = &state.Identity
	h.token = state.Token
	return h
}

// Login grava identidade e token no armazenamento durável e na memória.
func (h *Holder) Login(ctx context.Context, identity Identity, token string) error {
	payload, err := json.Marshal(persisted{Identity: identity, Token: token})
	if err != nil {
		return err
	}
	if err := h.kv.Set(ctx, auth.SessionKey(h.sessionID), string(payload), h.ttl); err != nil {
		return err
	}

	h.mu.Lock()
	h.identity = &identity
	h.token = token
	h.mu.Unlock()
	return nil
}

// Logout limpa memória e armazenamento durável.
func (h *Holder) Logout(ctx context.Context) error {
	if err := h.kv.Del(ctx, auth.SessionKey(h.sessionID)); err != nil {
		return err
	}

	h.mu.Lock()
	h.identity = nil
	h.token = ""
	h.mu.Unlock()
	return nil
}

// Identity devolve a identidade corrente; ok é falso quando não autenticado.
// Nenhuma operação pode assumir sessão presente sem checar ok.
func (h *Holder) Identity() (Identity, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.identity == nil {
		return Identity{}, false
	}
	return *h.identity, true
}

// Token devolve o token opaco do backend para a sessão corrente.
func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// SessionID devolve o identificador da sessão.
func (h *Holder) SessionID() string {
	return h.sessionID
}
