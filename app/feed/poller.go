package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Poller turns a periodically fetched listing into an endless item stream.
// It is not safe for concurrent use.
type Poller struct {
	url        string
	userAgent  string
	interval   time.Duration
	httpClient *http.Client
	parser     *Parser

	pending  []Item
	previous map[string]struct{}
	nextPoll time.Time
}

func NewPoller(url string, interval time.Duration, httpClient *http.Client, parser *Parser, userAgent string) *Poller {
	return &Poller{
		url:        url,
		userAgent:  userAgent,
		interval:   interval,
		httpClient: httpClient,
		parser:     parser,
		previous:   make(map[string]struct{}),
	}
}

// Next blocks until an item is available. Fetch and parse failures are
// returned as errors; the following call waits one interval before retrying.
// Only context cancellation ends the stream.
func (p *Poller) Next(ctx context.Context) (Item, error) {
	for len(p.pending) == 0 {
		if err := p.wait(ctx); err != nil {
			return Item{}, err
		}

		p.nextPoll = time.Now().Add(p.interval)

		items, err := p.poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return Item{}, ctx.Err()
			}
			return Item{}, err
		}

		p.enqueue(items)
	}

	item := p.pending[0]
	p.pending = p.pending[1:]
	return item, nil
}

func (p *Poller) wait(ctx context.Context) error {
	delay := time.Until(p.nextPoll)
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// enqueue keeps entries that were not part of the previous listing.
// Entries without a link are always passed through so the consumer sees them.
func (p *Poller) enqueue(items []Item) {
	current := make(map[string]struct{}, len(items))
	fresh := 0

	for _, item := range items {
		if item.ID != "" {
			current[item.ID] = struct{}{}
			if _, ok := p.previous[item.ID]; ok {
				continue
			}
		}
		p.pending = append(p.pending, item)
		fresh++
	}

	p.previous = current
	slog.Debug("Listing polled", "url", p.url, "total", len(items), "fresh", fresh)
}

func (p *Poller) poll(ctx context.Context) ([]Item, error) {
	data, err := p.fetch(ctx)
	if err != nil {
		return nil, err
	}

	items, err := p.parser.Run(data)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (p *Poller) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
