package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NewSessionID gera um identificador de sessão aleatório seguro.
func NewSessionID() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// SessionKey monta a chave durável que guarda o estado da sessão.
func SessionKey(sessionID string) string {
	return fmt.Sprintf("sentinela:session:%s", sessionID)
}

// PrefsKey monta a chave durável das preferências de um policial.
func PrefsKey(officerID string) string {
	return fmt.Sprintf("sentinela:prefs:%s", officerID)
}
