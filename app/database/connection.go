package database

import (
	"context"
	"strings"
)

// DefaultLocation is used when no storage location is configured.
const DefaultLocation = "./data/posts.db"

// Open picks a SeenStore backend from the storage location.
// redis:// and rediss:// URLs select Redis, anything else is a SQLite path
// with an optional sqlite:// prefix.
func Open(ctx context.Context, location string) (SeenStore, error) {
	if location == "" {
		location = DefaultLocation
	}

	if strings.HasPrefix(location, "redis://") || strings.HasPrefix(location, "rediss://") {
		return NewRedisSeenRepository(ctx, location)
	}

	return NewSeenRepository(strings.TrimPrefix(location, "sqlite://"))
}
