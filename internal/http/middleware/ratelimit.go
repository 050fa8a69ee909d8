package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// bucketTTL limita a memória retida por chaves que pararam de chegar,
// como IPs de varredura que nunca autenticam.
const bucketTTL = 10 * time.Minute

// RateLimiter mantém um token bucket por chave. O gateway usa duas
// famílias de chave: "ip:" nas rotas públicas e "sess:" nas privadas.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*bucket
	lastGC  time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter cria o limitador com a taxa sustentada e o burst dados.
func NewRateLimiter(reqPerSec float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:   rate.Limit(reqPerSec),
		burst:   burst,
		buckets: make(map[string]*bucket),
		lastGC:  time.Now(),
	}
}

// Allow consome um token da chave, criando o bucket na primeira visita.
// Buckets parados há mais de bucketTTL são varridos de tempos em tempos.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastGC) > bucketTTL {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) > bucketTTL {
				delete(rl.buckets, k)
			}
		}
		rl.lastGC = now
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.Allow()
}

// IPRateLimit protege as rotas públicas usando o IP de origem como chave.
func IPRateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return limitWith(limiter, func(r *http.Request) string {
		return "ip:" + realIPFromRequest(r)
	})
}

// SessionRateLimit protege as rotas autenticadas usando a sessão como
// chave. Sem sessão no contexto a requisição passa direto; o Auth logo
// adiante a recusa.
func SessionRateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return limitWith(limiter, func(r *http.Request) string {
		if sessionID := GetSessionID(r.Context()); sessionID != "" {
			return "sess:" + sessionID
		}
		return ""
	})
}

func limitWith(limiter *RateLimiter, keyFor func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFor(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(key) {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "RATE_LIMIT", "limite de requisições excedido")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// realIPFromRequest resolve o IP de origem atrás do proxy reverso.
func realIPFromRequest(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
