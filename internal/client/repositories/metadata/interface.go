// Package metadata is the key/value table of the local client database.
// The SQLite credential store keeps its slot here.
package metadata

import (
	"context"
)

type Repository interface {
	// GetMany reads several keys with a single statement; missing keys are
	// absent from the result.
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
