package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIPRateLimitBlocksAfterBurst(t *testing.T) {
	limiter := NewRateLimiter(0.0001, 1)
	handler := IPRateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "203.0.113.7")

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("primeira requisição deveria passar: %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("burst esgotado deveria recusar: %d", second.Code)
	}
	if code := decodeErrorCode(t, second); code != "RATE_LIMIT" {
		t.Fatalf("código inesperado: %q", code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatal("recusa sem Retry-After")
	}
}

func TestIPRateLimitKeysAreIndependent(t *testing.T) {
	limiter := NewRateLimiter(0.0001, 1)
	handler := IPRateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, ip := range []string{"203.0.113.7", "203.0.113.8"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", ip)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("ip %s deveria ter bucket próprio: %d", ip, rec.Code)
		}
	}
}

func TestSessionRateLimitPassesWithoutSession(t *testing.T) {
	limiter := NewRateLimiter(0.0001, 1)
	handler := SessionRateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// sem sessão no contexto o limitador não interfere
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("requisição sem sessão não deveria ser limitada: %d", rec.Code)
		}
	}
}

func TestSessionRateLimitUsesSessionKey(t *testing.T) {
	limiter := NewRateLimiter(0.0001, 1)
	handler := SessionRateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	newReq := func(sessionID string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(req.Context(), ContextKeySessionID, sessionID)
		return req.WithContext(ctx)
	}

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, newReq("sess-1"))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, newReq("sess-1"))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("mesma sessão deveria esgotar o burst: %d", second.Code)
	}

	other := httptest.NewRecorder()
	handler.ServeHTTP(other, newReq("sess-2"))
	if other.Code != http.StatusOK {
		t.Fatalf("outra sessão deveria ter bucket próprio: %d", other.Code)
	}
}
