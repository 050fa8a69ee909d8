package http

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/cascade"
	"github.com/urbanbyte/sentinela/internal/config"
	"github.com/urbanbyte/sentinela/internal/criminals"
	"github.com/urbanbyte/sentinela/internal/location"
	"github.com/urbanbyte/sentinela/internal/messaging"
	"github.com/urbanbyte/sentinela/internal/officers"
	"github.com/urbanbyte/sentinela/internal/posts"
	"github.com/urbanbyte/sentinela/internal/prefs"
	"github.com/urbanbyte/sentinela/internal/reports"
	"github.com/urbanbyte/sentinela/internal/session"
	"github.com/urbanbyte/sentinela/internal/settings"
	"github.com/urbanbyte/sentinela/internal/stations"
	"github.com/urbanbyte/sentinela/internal/store"
)

// sessionState agrupa os detentores de estado de uma sessão do painel.
// Todos vivem na memória do processo; o que precisa sobreviver a reinício
// (identidade e preferências) é rehidratado do KV pelos próprios holders.
type sessionState struct {
	session   *session.Holder
	resolver  *location.Resolver
	selector  *cascade.Selector
	posts     *posts.Service
	reports   *reports.Service
	stations  *stations.Service
	officers  *officers.Service
	criminals *criminals.Service
	settings  *settings.Service

	mu        sync.Mutex
	prefs     *prefs.Holder
	messaging *messaging.Service
}

// stateRegistry mantém o estado por sessão com expiração simples, nos
// moldes do armazenamento de limiters por chave.
type stateRegistry struct {
	cfg    *config.Config
	kv     store.KV
	client *backend.Client
	logger zerolog.Logger

	mu      sync.Mutex
	entries map[string]*registryEntry
	maxAge  time.Duration
}

type registryEntry struct {
	state   *sessionState
	updated time.Time
}

func newStateRegistry(cfg *config.Config, kv store.KV, client *backend.Client, logger zerolog.Logger) *stateRegistry {
	return &stateRegistry{
		cfg:     cfg,
		kv:      kv,
		client:  client,
		logger:  logger,
		entries: make(map[string]*registryEntry),
		maxAge:  cfg.SessionTTL,
	}
}

// get devolve o estado da sessão, criando e rehidratando na primeira vez.
func (reg *stateRegistry) get(ctx context.Context, sessionID string) *sessionState {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if entry, ok := reg.entries[sessionID]; ok {
		entry.updated = time.Now()
		return entry.state
	}

	state := reg.build(ctx, sessionID)
	reg.entries[sessionID] = &registryEntry{state: state, updated: time.Now()}

	for key, entry := range reg.entries {
		if time.Since(entry.updated) > reg.maxAge {
			delete(reg.entries, key)
		}
	}

	return state
}

func (reg *stateRegistry) build(ctx context.Context, sessionID string) *sessionState {
	logger := reg.logger.With().Str("session", sessionID).Logger()

	holder := session.NewHolder(ctx, reg.kv, sessionID, reg.cfg.SessionTTL, logger)
	resolver := location.NewResolver(reg.client, logger)
	selector := cascade.NewSelector(reg.client, logger)

	state := &sessionState{
		session:   holder,
		resolver:  resolver,
		selector:  selector,
		posts:     posts.NewService(reg.client, resolver, reg.cfg.UploadsBaseURL, reg.cfg.CountryID, logger),
		reports:   reports.NewService(reg.client, reg.cfg.UploadsBaseURL, logger),
		stations:  stations.NewService(reg.client, selector, reg.cfg.UploadsBaseURL, reg.cfg.RootID, logger),
		officers:  officers.NewService(reg.client, reg.cfg.UploadsBaseURL, logger),
		criminals: criminals.NewService(reg.client, reg.cfg.UploadsBaseURL, logger),
		settings:  settings.NewService(reg.client, reg.cfg.UploadsBaseURL, logger),
	}

	// sessão sobrevivente a reinício: refaz a cadeia de localização sem
	// exigir novo login
	if identity, ok := holder.Identity(); ok {
		resolver.Resolve(ctx, identity.TownID)
	}

	return state
}

// drop esquece o estado da sessão encerrada.
func (reg *stateRegistry) drop(sessionID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.entries, sessionID)
}

// prefsHolder devolve o detentor de preferências do policial logado,
// criando e rehidratando na primeira vez.
func (s *sessionState) prefsHolder(ctx context.Context, kv store.KV, officerID, defaultLocale string, logger zerolog.Logger) *prefs.Holder {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prefs == nil {
		s.prefs = prefs.NewHolder(ctx, kv, officerID, defaultLocale, logger)
	}
	return s.prefs
}

// resetPrefs descarta o detentor de preferências no logout.
func (s *sessionState) resetPrefs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = nil
	s.messaging = nil
}

// messagingService devolve o serviço de mensagens da delegacia logada,
// criando na primeira vez.
func (s *sessionState) messagingService(client *backend.Client, kv store.KV, uploadsBaseURL, stationID string, logger zerolog.Logger) *messaging.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.messaging == nil {
		s.messaging = messaging.NewService(client, kv, uploadsBaseURL, stationID, logger)
	}
	return s.messaging
}
