package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnavailable indica falha de transporte: nenhuma resposta do backend.
	ErrUnavailable = errors.New("backend indisponível")
)

// APIError representa uma falha reportada pelo backend com mensagem legível.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("backend: status %d", e.Status)
	}
	return e.Message
}

// IsAPIError devolve a falha reportada pelo backend, quando houver.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Client encapsula chamadas ao backend de registros.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Config descreve os parâmetros essenciais do cliente.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// New cria um novo cliente para o backend de registros.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("backend: base url obrigatória")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    base,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	endpoint := c.baseURL + path

	if body == nil {
		return http.NewRequestWithContext(ctx, method, endpoint, nil)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// newMultipartRequest monta requisição multipart com campos e arquivo opcional.
func (c *Client) newMultipartRequest(ctx context.Context, method, path string, fields map[string]string, file *FileField) (*http.Request, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

// FileField descreve um arquivo binário anexado a uma mutação.
type FileField struct {
	Field   string
	Name    string
	Content []byte
}

// do executa a requisição e decodifica a resposta em v.
// Falhas de transporte viram ErrUnavailable; respostas não-2xx viram APIError
// com a mensagem do backend quando disponível.
func (c *Client) do(req *http.Request, v any) error {
	// id de correlação propagado para os logs do backend
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: extractMessage(body)}
	}

	if v == nil {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("backend: resposta inválida: %w", err)
	}
	return nil
}

// extractMessage tenta recuperar a mensagem legível de um corpo de erro.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if strings.TrimSpace(payload.Message) != "" {
		return payload.Message
	}
	return payload.Error
}

// checkSuccess cobre respostas 2xx com flag de sucesso explícita falsa.
func checkSuccess(ok bool, message string) error {
	if ok {
		return nil
	}
	return &APIError{Status: http.StatusOK, Message: message}
}
