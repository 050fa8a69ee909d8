package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound é retornado quando a chave não existe.
	ErrNotFound = errors.New("chave não encontrada")
)

// KV define o comportamento mínimo de armazenamento durável chave-valor.
// Sessão e preferências são os únicos escritores, cada um no seu namespace.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
