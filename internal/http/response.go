package http

import (
	"encoding/json"
	"net/http"
)

// Envelope é o contrato de resposta do painel: data preenchido no
// sucesso, error nas falhas, nunca ambos.
type Envelope struct {
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error"`
}

// ErrorBody carrega o código estável consumido pelo painel e a mensagem
// exibível. Details é reservado a payloads de diagnóstico, como a lista
// de dependências do readiness.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// WriteJSON responde sucesso com o dado dentro do envelope padrão.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, Envelope{Data: data})
}

// WriteError responde falha normalizada com código estável.
func WriteError(w http.ResponseWriter, status int, code, message string, details any) {
	writeEnvelope(w, status, Envelope{Error: &ErrorBody{Code: code, Message: message, Details: details}})
}
