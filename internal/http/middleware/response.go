package middleware

import (
	"encoding/json"
	"net/http"
)

// errorEnvelope espelha o envelope de erro dos handlers para que uma
// recusa de middleware seja indistinguível das demais no painel.
type errorEnvelope struct {
	Data  any        `json:"data"`
	Error *errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError é o único ponto de escrita de erro do pacote. Auth, escopo,
// rate limit e recover passam todos por aqui.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: &errorBody{Code: code, Message: message}})
}
