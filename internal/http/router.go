package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/urbanbyte/sentinela/internal/auth"
	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/config"
	httpmiddleware "github.com/urbanbyte/sentinela/internal/http/middleware"
	"github.com/urbanbyte/sentinela/internal/session"
	"github.com/urbanbyte/sentinela/internal/store"
)

type Handler struct {
	cfg           *config.Config
	redis         *redis.Client
	kv            store.KV
	client        *backend.Client
	jwt           *auth.JWTManager
	registry      *stateRegistry
	publicLimiter *httpmiddleware.RateLimiter
	loginLimiter  *httpmiddleware.RateLimiter
}

// NewRouter devolve roteador configurado.
func NewRouter(cfg *config.Config, redisClient *redis.Client, client *backend.Client) http.Handler {
	kv := store.NewRedisKV(redisClient)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	registryLogger := log.With().Str("component", "session").Logger()

	h := &Handler{
		cfg:           cfg,
		redis:         redisClient,
		kv:            kv,
		client:        client,
		jwt:           jwtManager,
		registry:      newStateRegistry(cfg, kv, client, registryLogger),
		publicLimiter: httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst),
		loginLimiter:  httpmiddleware.NewRateLimiter(cfg.RateLimitLogin.RequestsPerSecond, cfg.RateLimitLogin.Burst),
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.IPRateLimit(h.publicLimiter))

		public.Get("/health", h.Health)
		public.Get("/ready", h.Ready)
	})

	r.Group(func(login chi.Router) {
		login.Use(httpmiddleware.IPRateLimit(h.loginLimiter))
		login.Post("/auth/login", h.Login)
	})

	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.Auth(jwtManager))
		private.Use(httpmiddleware.SessionRateLimit(h.publicLimiter))

		private.Post("/auth/logout", h.Logout)
		private.Get("/me", h.Me)

		private.Get("/prefs", h.GetPrefs)
		private.Patch("/prefs", h.UpdatePrefs)

		private.Route("/posts", func(p chi.Router) {
			p.Get("/tiers", h.PostTiers)
			p.Get("/station", h.StationPosts)
			p.Post("/query", h.QueryPosts)

			p.Post("/form", h.OpenAddPost)
			p.Patch("/form", h.UpdateAddPost)
			p.Post("/form/submit", h.SubmitAddPost)
			p.Delete("/form", h.CancelAddPost)

			p.Post("/{postID}/edit", h.OpenEditPost)
			p.Patch("/edit", h.UpdateEditPost)
			p.Post("/edit/submit", h.SubmitEditPost)
			p.Delete("/edit", h.CancelEditPost)

			p.Post("/{postID}/report", h.OpenReport)

			p.With(httpmiddleware.TierScope).Get("/{tier}", h.TierPosts)
			p.With(httpmiddleware.TierScope).Post("/{postID}/promote/{tier}", h.PromotePost)
		})

		private.Route("/selector", func(s chi.Router) {
			s.Get("/", h.SelectorSnapshot)
			s.Post("/regions", h.SelectorLoadRegions)
			s.Post("/{rank}", h.SelectorSelect)
			s.Delete("/{rank}", h.SelectorClear)
		})

		private.Route("/reports", func(rep chi.Router) {
			rep.Get("/", h.ListReports)
			rep.Post("/query", h.QueryReports)
			rep.Patch("/form", h.UpdateReport)
			rep.Post("/form/submit", h.SubmitReport)
			rep.Delete("/form", h.CancelReport)
		})

		private.Route("/stations", func(st chi.Router) {
			st.Use(httpmiddleware.RequireRootAdmin)
			st.Get("/", h.ListStations)
			st.Post("/query", h.QueryStations)
			st.Post("/form", h.OpenAddStation)
			st.Patch("/form", h.UpdateAddStation)
			st.Post("/form/submit", h.SubmitAddStation)
			st.Delete("/form", h.CancelAddStation)
		})

		private.Route("/officers", func(of chi.Router) {
			of.Use(httpmiddleware.RequireRootAdmin)
			of.Get("/", h.ListOfficers)
			of.Post("/query", h.QueryOfficers)
			of.Post("/form", h.OpenAddOfficer)
			of.Patch("/form", h.UpdateAddOfficer)
			of.Post("/form/submit", h.SubmitAddOfficer)
			of.Delete("/form", h.CancelAddOfficer)
			of.Post("/{officerID}/edit", h.OpenEditOfficer)
			of.Patch("/edit", h.UpdateEditOfficer)
			of.Post("/edit/submit", h.SubmitEditOfficer)
			of.Delete("/edit", h.CancelEditOfficer)
		})

		private.Route("/criminals", func(cr chi.Router) {
			cr.Get("/", h.ListCriminals)
			cr.Post("/filter", h.FilterCriminals)
			cr.Post("/form", h.OpenAddCriminal)
			cr.Patch("/form", h.UpdateAddCriminal)
			cr.Post("/form/submit", h.SubmitAddCriminal)
			cr.Delete("/form", h.CancelAddCriminal)
		})

		private.Route("/messages", func(m chi.Router) {
			m.Get("/counterparts", h.ListCounterparts)
			m.Get("/conversation", h.GetConversation)
			m.Post("/conversation/{stationID}", h.OpenConversation)
			m.Delete("/conversation", h.CloseConversation)
			m.Post("/send", h.SendMessage)
		})

		private.Route("/settings", func(s chi.Router) {
			s.Get("/profile", h.Profile)
			s.Post("/password", h.ChangePassword)
		})
	})

	return r
}

// Health responde status simples.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready valida conexões com Redis e com o backend de registros.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	redisErr := h.redis.Ping(ctx).Err()

	if redisErr != nil {
		WriteError(w, http.StatusServiceUnavailable, "INTERNAL", "dependências indisponíveis", map[string]any{
			"redis": redisErr.Error(),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"ready": true})
}

// state recupera o estado da sessão autenticada.
func (h *Handler) state(r *http.Request) *sessionState {
	sessionID := httpmiddleware.GetSessionID(r.Context())
	return h.registry.get(r.Context(), sessionID)
}

// identity recupera estado e identidade, exigindo sessão logada.
func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (*sessionState, session.Identity, bool) {
	state := h.state(r)
	identity, ok := state.session.Identity()
	if !ok {
		WriteError(w, http.StatusUnauthorized, "AUTH", "sessão não autenticada", nil)
		return nil, session.Identity{}, false
	}
	return state, identity, true
}

// writeBackendError traduz falhas do backend para o envelope de erro:
// indisponibilidade vira 503, respostas não-2xx espelham o status.
func writeBackendError(w http.ResponseWriter, err error) {
	if errors.Is(err, backend.ErrUnavailable) {
		WriteError(w, http.StatusServiceUnavailable, "UPSTREAM", "backend de registros indisponível", nil)
		return
	}
	if apiErr, ok := backend.IsAPIError(err); ok {
		status := apiErr.Status
		code := "UPSTREAM"
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			code = "AUTH"
		}
		WriteError(w, status, code, apiErr.Message, nil)
		return
	}
	WriteError(w, http.StatusBadGateway, "UPSTREAM", err.Error(), nil)
}
