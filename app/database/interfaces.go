package database

import (
	"context"
	"errors"
)

// ErrDuplicateKey is returned by Insert when the identifier is already
// recorded. It is the dedup signal, not a storage failure.
var ErrDuplicateKey = errors.New("duplicate key")

// SeenStore is the durable set of processed item identifiers.
// Uniqueness is enforced by the backend itself.
type SeenStore interface {
	Has(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Close() error
}
