package api

import (
	"context"

	"github.com/lysyi3m/post-comb/app/feed"
	"github.com/lysyi3m/post-comb/app/tasks"
)

type StatsProvider interface {
	Stats() tasks.IngestStats
}

type SeenCounter interface {
	Count(ctx context.Context) (int, error)
}

var _ StatsProvider = (*tasks.IngestTask)(nil)

type Handler struct {
	stats    StatsProvider
	seen     SeenCounter
	keywords feed.Keywords
	version  string
}
