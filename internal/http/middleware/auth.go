package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/urbanbyte/sentinela/internal/auth"
	"github.com/urbanbyte/sentinela/internal/session"
)

type contextKey string

const (
	ContextKeySessionID contextKey = "session_id"
	ContextKeyRole      contextKey = "role"
	ContextKeyStationID contextKey = "station_id"
)

// Auth valida o token de sessão e injeta id da sessão, papel e delegacia
// no contexto.
func Auth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "AUTH", "token ausente")
				return
			}

			claims, err := jwtManager.ParseAndValidate(parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "AUTH", "token inválido")
				return
			}

			if !session.Role(claims.Role).Valid() {
				writeError(w, http.StatusUnauthorized, "AUTH", "papel inválido")
				return
			}

			if fields := logFieldsFrom(r.Context()); fields != nil {
				fields.sessionID = claims.Subject
			}

			ctx := context.WithValue(r.Context(), ContextKeySessionID, claims.Subject)
			ctx = context.WithValue(ctx, ContextKeyRole, session.Role(claims.Role))
			ctx = context.WithValue(ctx, ContextKeyStationID, claims.StationID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionID recupera o id da sessão do contexto.
func GetSessionID(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeySessionID).(string)
	return val
}

// GetRole recupera o papel do contexto.
func GetRole(ctx context.Context) session.Role {
	val, _ := ctx.Value(ContextKeyRole).(session.Role)
	return val
}

// GetStationID recupera a delegacia do contexto.
func GetStationID(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyStationID).(string)
	return val
}

// RequireRootAdmin restringe a rota ao administrador raiz.
func RequireRootAdmin(next http.Handler) http.Handler {
	return RequireRoles(session.RoleRootAdmin)(next)
}

// RequireRoles restringe a rota aos papéis informados.
func RequireRoles(allowed ...session.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := GetRole(r.Context())
			for _, candidate := range allowed {
				if role == candidate {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeError(w, http.StatusForbidden, "FORBIDDEN", "acesso restrito")
		})
	}
}
