package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/auth"
	"github.com/urbanbyte/sentinela/internal/store"
)

// Preferences são os ajustes de interface de um policial. Independem da
// sessão: sobrevivem ao logout e são recarregadas no próximo acesso.
type Preferences struct {
	DarkMode         bool   `json:"darkMode"`
	Locale           string `json:"locale"`
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
}

// persisted guarda booleanos como string para manter compatibilidade com
// valores gravados por versões antigas do painel.
type persisted struct {
	DarkMode         string `json:"darkMode"`
	Locale           string `json:"locale"`
	SidebarCollapsed string `json:"sidebarCollapsed"`
}

// Holder mantém as preferências em memória e agenda a escrita durável a
// cada mutação. Leituras nunca falham: valores ausentes viram defaults.
type Holder struct {
	mu            sync.RWMutex
	kv            store.KV
	officerID     string
	defaultLocale string
	logger        zerolog.Logger
	current       Preferences
}

// NewHolder carrega as preferências do armazenamento durável, aplicando
// defaults para chaves ausentes ou ilegíveis.
func NewHolder(ctx context.Context, kv store.KV, officerID, defaultLocale string, logger zerolog.Logger) *Holder {
	h := &Holder{
		kv:            kv,
		officerID:     officerID,
		defaultLocale: defaultLocale,
		logger:        logger,
		current: Preferences{
			DarkMode:         false,
			Locale:           defaultLocale,
			SidebarCollapsed: false,
		},
	}

	raw, err := kv.Get(ctx, auth.PrefsKey(officerID))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn().Err(err).Msg("falha ao carregar preferências")
		}
		return h
	}

	var state persisted
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		logger.Warn().Err(err).Msg("preferências corrompidas, usando defaults")
		return h
	}

	h.current.DarkMode = coerceBool(state.DarkMode, false)
	h.current.SidebarCollapsed = coerceBool(state.SidebarCollapsed, false)
	if state.Locale != "" {
		h.current.Locale = state.Locale
	}
	return h
}

// Current devolve uma cópia das preferências correntes.
func (h *Holder) Current() Preferences {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// SetDarkMode atualiza o tema e persiste.
func (h *Holder) SetDarkMode(ctx context.Context, enabled bool) {
	h.mu.Lock()
	h.current.DarkMode = enabled
	h.mu.Unlock()
	h.persist(ctx)
}

// SetLocale atualiza o idioma e persiste.
func (h *Holder) SetLocale(ctx context.Context, locale string) {
	if locale == "" {
		locale = h.defaultLocale
	}
	h.mu.Lock()
	h.current.Locale = locale
	h.mu.Unlock()
	h.persist(ctx)
}

// SetSidebarCollapsed atualiza o estado da navegação e persiste.
func (h *Holder) SetSidebarCollapsed(ctx context.Context, collapsed bool) {
	h.mu.Lock()
	h.current.SidebarCollapsed = collapsed
	h.mu.Unlock()
	h.persist(ctx)
}

func (h *Holder) persist(ctx context.Context) {
	h.mu.RLock()
	state := persisted{
		DarkMode:         strconv.FormatBool(h.current.DarkMode),
		Locale:           h.current.Locale,
		SidebarCollapsed: strconv.FormatBool(h.current.SidebarCollapsed),
	}
	h.mu.RUnlock()

	payload, err := json.Marshal(state)
	if err != nil {
		h.logger.Error().Err(err).Msg("falha ao serializar preferências")
		return
	}
	if err := h.kv.Set(ctx, auth.PrefsKey(h.officerID), string(payload), 0); err != nil {
		h.logger.Error().Err(err).Msg("falha ao persistir preferências")
	}
}

// coerceBool converte flags guardadas como string de volta para booleano.
func coerceBool(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return parsed
}
