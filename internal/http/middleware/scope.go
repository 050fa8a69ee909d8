package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/urbanbyte/sentinela/internal/posts"
)

// ContextKeyTier guarda o nível de listagem validado para a requisição.
const ContextKeyTier contextKey = "tier"

// TierScope valida o nível de listagem do parâmetro de rota contra as
// abas visíveis do papel autenticado e o injeta no contexto.
func TierScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tier := posts.Tier(chi.URLParam(r, "tier"))
		if !posts.ValidTier(tier) {
			writeError(w, http.StatusBadRequest, "VALIDATION", "nível de listagem inválido")
			return
		}

		role := GetRole(r.Context())
		allowed := false
		for _, visible := range posts.VisibleTiers(role) {
			if visible == tier {
				allowed = true
				break
			}
		}
		if !allowed {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "nível não disponível para o papel")
			return
		}

		if fields := logFieldsFrom(r.Context()); fields != nil {
			fields.tier = string(tier)
		}

		ctx := context.WithValue(r.Context(), ContextKeyTier, tier)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTier recupera o nível validado do contexto.
func GetTier(ctx context.Context) posts.Tier {
	val, _ := ctx.Value(ContextKeyTier).(posts.Tier)
	return val
}
