package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// corsPolicy guarda as origens liberadas para o painel. Cada entrada de
// ALLOW_ORIGINS é uma origem exata (https://painel.urbanbyte.com.br) ou
// um wildcard de subdomínio (*.urbanbyte.com.br).
type corsPolicy struct {
	exact    map[string]struct{}
	suffixes []string
}

func newCORSPolicy(entries []string) *corsPolicy {
	p := &corsPolicy{exact: make(map[string]struct{}, len(entries))}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		switch {
		case entry == "":
		case strings.HasPrefix(entry, "*."):
			// guarda ".dominio" para casar subdomínios pelo sufixo
			p.suffixes = append(p.suffixes, strings.ToLower(strings.TrimPrefix(entry, "*")))
		default:
			p.exact[entry] = struct{}{}
		}
	}
	return p
}

func (p *corsPolicy) allows(origin string) bool {
	if origin == "" {
		return false
	}
	if _, ok := p.exact[origin]; ok {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, suffix := range p.suffixes {
		// o wildcard exige subdomínio: a raiz nua não passa
		if strings.HasSuffix(host, suffix) && host != strings.TrimPrefix(suffix, ".") {
			return true
		}
	}
	return false
}

// CORS restringe o painel às origens configuradas. Os métodos anunciados
// cobrem exatamente as rotas do gateway: leituras, criações, mutações
// parciais via PATCH e remoções; o preflight é respondido aqui mesmo.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	policy := newCORSPolicy(allowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Origin")

			if origin := r.Header.Get("Origin"); policy.allows(origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				h.Set("Access-Control-Max-Age", "300")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
