package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecoverTurnsPanicIntoEnvelope(t *testing.T) {
	buf := captureLog(t)

	handler := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("estado inesperado")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/painel/posts", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status inesperado: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type inesperado: %q", ct)
	}
	if code := decodeErrorCode(t, rec); code != "INTERNAL" {
		t.Fatalf("código inesperado: %q", code)
	}

	line := buf.String()
	if !strings.Contains(line, `"path":"/painel/posts"`) {
		t.Fatalf("log do panic sem rota: %s", line)
	}
	if !strings.Contains(line, "stack") {
		t.Fatalf("log do panic sem stack: %s", line)
	}
}
