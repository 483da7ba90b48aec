package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/lysyi3m/post-comb/app/database"
	"github.com/lysyi3m/post-comb/app/feed"
)

var (
	ErrStore = errors.New("seen store failure")
	ErrSink  = errors.New("notification delivery failure")
)

// ItemState is where an item ended up after one pass of the pipeline.
type ItemState string

const (
	StateSkippedNoIdentifier ItemState = "skipped_no_identifier"
	StateSkippedSeen         ItemState = "skipped_seen"
	StateUntitled            ItemState = "untitled"
	StateFiltered            ItemState = "filtered"
	StateForwarded           ItemState = "forwarded"
)

// ForwardAction is a matched item on its way to the notifier.
type ForwardAction struct {
	Title string
	Link  string
}

func (a ForwardAction) Message() string {
	if a.Link == "" {
		return a.Title
	}
	return a.Title + "\n" + a.Link
}

type IngestStats struct {
	Received     int64 `json:"received"`
	StreamErrors int64 `json:"stream_errors"`
	NoIdentifier int64 `json:"skipped_no_identifier"`
	Seen         int64 `json:"skipped_seen"`
	Untitled     int64 `json:"untitled"`
	Filtered     int64 `json:"filtered"`
	Forwarded    int64 `json:"forwarded"`
}

type counters struct {
	received     atomic.Int64
	streamErrors atomic.Int64
	noIdentifier atomic.Int64
	seen         atomic.Int64
	untitled     atomic.Int64
	filtered     atomic.Int64
	forwarded    atomic.Int64
}

// IngestTask consumes the stream one item at a time, records every new
// identifier, and forwards titles accepted by the matcher.
type IngestTask struct {
	Task
	stream   Stream
	store    database.SeenStore
	matcher  *feed.Matcher
	notifier Notifier
	target   string
	counters counters
}

var _ TaskInterface = (*IngestTask)(nil)

func NewIngestTask(stream Stream, store database.SeenStore, matcher *feed.Matcher, notifier Notifier, target string) *IngestTask {
	return &IngestTask{
		Task:     NewTask(TaskTypeIngest),
		stream:   stream,
		store:    store,
		matcher:  matcher,
		notifier: notifier,
		target:   target,
	}
}

// Execute runs until the context is cancelled or a store or delivery
// failure occurs. Stream errors are logged and skipped.
func (t *IngestTask) Execute(ctx context.Context) error {
	for {
		item, err := t.stream.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			t.counters.streamErrors.Add(1)
			slog.Warn("Stream error", "error", err)
			continue
		}

		t.counters.received.Add(1)

		if _, err := t.Process(ctx, item); err != nil {
			return err
		}
	}
}

// Process moves a single item through dedup, filtering, and delivery.
func (t *IngestTask) Process(ctx context.Context, item feed.Item) (ItemState, error) {
	if item.ID == "" || item.Link == "" {
		t.counters.noIdentifier.Add(1)
		slog.Debug("Item skipped", "reason", StateSkippedNoIdentifier, "title", item.Title)
		return StateSkippedNoIdentifier, nil
	}

	seen, err := t.store.Has(ctx, item.ID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStore, err)
	}
	if seen {
		return t.skipSeen(item), nil
	}

	if err := t.store.Insert(ctx, item.ID); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return t.skipSeen(item), nil
		}
		return "", fmt.Errorf("%w: %w", ErrStore, err)
	}

	if item.Title == "" {
		t.counters.untitled.Add(1)
		slog.Debug("Item has no title, marked seen only", "id", item.ID)
		return StateUntitled, nil
	}

	outcome := t.matcher.Run(item.Title)
	if outcome.Kind != feed.Accepted {
		t.counters.filtered.Add(1)
		slog.Debug("Item filtered", "id", item.ID, "outcome", outcome.Kind.String(), "keyword", outcome.Keyword)
		return StateFiltered, nil
	}

	action := ForwardAction{Title: item.Title, Link: item.Link}
	if err := t.notifier.Send(ctx, t.target, action.Message()); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSink, err)
	}

	t.counters.forwarded.Add(1)
	slog.Info("Item forwarded", "id", item.ID, "keyword", outcome.Keyword, "title", item.Title)

	return StateForwarded, nil
}

func (t *IngestTask) skipSeen(item feed.Item) ItemState {
	t.counters.seen.Add(1)
	slog.Debug("Item skipped", "reason", StateSkippedSeen, "id", item.ID)
	return StateSkippedSeen
}

func (t *IngestTask) Stats() IngestStats {
	return IngestStats{
		Received:     t.counters.received.Load(),
		StreamErrors: t.counters.streamErrors.Load(),
		NoIdentifier: t.counters.noIdentifier.Load(),
		Seen:         t.counters.seen.Load(),
		Untitled:     t.counters.untitled.Load(),
		Filtered:     t.counters.filtered.Load(),
		Forwarded:    t.counters.forwarded.Load(),
	}
}
