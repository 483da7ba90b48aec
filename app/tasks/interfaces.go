package tasks

import (
	"context"

	"github.com/lysyi3m/post-comb/app/feed"
)

// Stream is an endless, non-restartable source of items.
// Next blocks until an item arrives. Errors other than context cancellation
// concern a single slot and the caller may keep reading.
type Stream interface {
	Next(ctx context.Context) (feed.Item, error)
}

// Notifier delivers a message to a destination.
type Notifier interface {
	Send(ctx context.Context, target string, message string) error
}
