package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// logFields acumula os campos que os middlewares internos conhecem e o
// logger externo não: o id da sessão autenticada e o nível de listagem
// validado. O ponteiro é injetado antes da cadeia e lido depois dela.
type logFields struct {
	sessionID string
	tier      string
}

const contextKeyLogFields contextKey = "log_fields"

func logFieldsFrom(ctx context.Context) *logFields {
	val, _ := ctx.Value(contextKeyLogFields).(*logFields)
	return val
}

// Logging escreve uma linha estruturada por requisição atendida. Sessão
// e nível só aparecem quando a requisição atravessou Auth e TierScope.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		fields := &logFields{}
		start := time.Now()

		ctx := context.WithValue(r.Context(), contextKeyLogFields, fields)
		next.ServeHTTP(ww, r.WithContext(ctx))

		event := log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("ip", realIPFromRequest(r))

		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			event = event.Str("request_id", reqID)
		}
		if fields.sessionID != "" {
			event = event.Str("session_id", fields.sessionID)
		}
		if fields.tier != "" {
			event = event.Str("tier", fields.tier)
		}

		event.Msg("requisição atendida")
	})
}
