package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, srv
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{BaseURL: "   "}); err == nil {
		t.Fatal("base url vazia deveria falhar")
	}
}

func TestResolveTownDecodesChain(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/country/specificTownInfo/42" {
			t.Errorf("path inesperado: %s", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID ausente")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"message": "ok",
			"town": []map[string]any{
				{"zoneId": 4, "regionId": 1, "townName": "Cidade A", "zoneName": "Zona A", "regionName": "Norte"},
			},
		})
	}))

	info, err := client.ResolveTown(context.Background(), 42)
	if err != nil {
		t.Fatalf("ResolveTown: %v", err)
	}
	if info.TownID != 42 || info.ZoneID != 4 || info.RegionName != "Norte" {
		t.Fatalf("cadeia inesperada: %+v", info)
	}
}

func TestResolveTownEmptyListIsNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"message": "ok", "town": []any{}})
	}))

	if _, err := client.ResolveTown(context.Background(), 99); !errors.Is(err, ErrTownNotFound) {
		t.Fatalf("esperava ErrTownNotFound, veio %v", err)
	}
}

func TestDoWrapsTransportFailureAsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.Regions(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("esperava ErrUnavailable, veio %v", err)
	}
}

func TestDoTurnsErrorStatusIntoAPIError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"message": "credenciais inválidas"})
	}))

	_, err := client.Regions(context.Background())
	apiErr, ok := IsAPIError(err)
	if !ok {
		t.Fatalf("esperava APIError, veio %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "credenciais inválidas" {
		t.Fatalf("APIError inesperado: %+v", apiErr)
	}
}

func TestDoPrefersMessageOverErrorField(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"campo x", "message":"mensagem principal"}`))
	}))

	_, err := client.Regions(context.Background())
	apiErr, ok := IsAPIError(err)
	if !ok {
		t.Fatalf("esperava APIError, veio %v", err)
	}
	if apiErr.Message != "mensagem principal" {
		t.Fatalf("mensagem inesperada: %q", apiErr.Message)
	}
}

func TestAPIErrorFallbackMessage(t *testing.T) {
	err := &APIError{Status: 500}
	if err.Error() != "backend: status 500" {
		t.Fatalf("mensagem padrão inesperada: %q", err.Error())
	}
}

func TestCreatePostSendsMultipartWithBackendFieldNames(t *testing.T) {
	age := 27
	var gotMiddle, gotAge, gotFileName string
	var gotFile []byte

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		// o backend legado usa "middelName" na criação
		gotMiddle = r.FormValue("middelName")
		gotAge = r.FormValue("age")

		file, header, err := r.FormFile("photo")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		gotFileName = header.Filename
		buf := make([]byte, 8)
		n, _ := file.Read(buf)
		gotFile = buf[:n]

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "criado",
			"post":    map[string]any{"postId": 7, "firstName": "Ana"},
		})
	}))

	post, err := client.CreatePost(context.Background(), PostDraft{
		TownID:     42,
		FirstName:  "Ana",
		MiddleName: "Maria",
		LastName:   "Silva",
		Age:        &age,
	}, &FileField{Field: "photo", Name: "foto.jpg", Content: []byte("jpegdata")})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	if gotMiddle != "Maria" {
		t.Fatalf("middelName inesperado: %q", gotMiddle)
	}
	if gotAge != "27" {
		t.Fatalf("age inesperado: %q", gotAge)
	}
	if gotFileName != "foto.jpg" || string(gotFile) != "jpegdata" {
		t.Fatalf("arquivo inesperado: %q %q", gotFileName, gotFile)
	}
	if post.ID != 7 {
		t.Fatalf("post inesperado: %+v", post)
	}
}

func TestCreatePostSuccessFalseIsAPIError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "registro duplicado"})
	}))

	_, err := client.CreatePost(context.Background(), PostDraft{}, nil)
	apiErr, ok := IsAPIError(err)
	if !ok {
		t.Fatalf("esperava APIError, veio %v", err)
	}
	if apiErr.Message != "registro duplicado" {
		t.Fatalf("mensagem inesperada: %q", apiErr.Message)
	}
}

func TestPostPresence(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"exists": true})
	}))

	exists, err := client.PostInZone(context.Background(), 7)
	if err != nil {
		t.Fatalf("PostInZone: %v", err)
	}
	if !exists {
		t.Fatal("esperava exists verdadeiro")
	}
}

func TestMarkConversationReadUsesGet(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("método inesperado: %s", r.Method)
		}
		if r.URL.Path != "/api/message/readMessage/PS-2/PS-1" {
			t.Errorf("path inesperado: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "ok"})
	}))

	if err := client.MarkConversationRead(context.Background(), "PS-2", "PS-1"); err != nil {
		t.Fatalf("MarkConversationRead: %v", err)
	}
}
