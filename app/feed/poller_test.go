package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type listingServer struct {
	mu        sync.Mutex
	responses []string // "" means respond with 500
	calls     int
	userAgent string
}

func (s *listingServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userAgent = r.Header.Get("User-Agent")

	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++

	if s.responses[idx] == "" {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	fmt.Fprint(w, s.responses[idx])
}

func (s *listingServer) lastUserAgent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userAgent
}

func rssListing(ids ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>new</title>`)
	for _, id := range ids {
		fmt.Fprintf(&b, `<item><title>Post %s</title><link>https://example.com/%s</link></item>`, id, id)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func newTestPoller(url string) *Poller {
	return NewPoller(url, 10*time.Millisecond, &http.Client{Timeout: time.Second}, NewParser(), "Test Agent")
}

func TestPoller_YieldsOldestFirstWithoutRepeats(t *testing.T) {
	server := &listingServer{responses: []string{
		rssListing("p2", "p1"),
		rssListing("p3", "p2", "p1"),
	}}
	ts := httptest.NewServer(server)
	defer ts.Close()

	poller := newTestPoller(ts.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var got []string
	for i := 0; i < 3; i++ {
		item, err := poller.Next(ctx)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		got = append(got, item.ID)
	}

	expected := []string{"https://example.com/p1", "https://example.com/p2", "https://example.com/p3"}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Item %d: expected %s, got %s", i, expected[i], got[i])
		}
	}

	if ua := server.lastUserAgent(); ua != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", ua)
	}
}

func TestPoller_ErrorIsPerSlot(t *testing.T) {
	server := &listingServer{responses: []string{"", rssListing("p1")}}
	ts := httptest.NewServer(server)
	defer ts.Close()

	poller := newTestPoller(ts.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := poller.Next(ctx); err == nil {
		t.Fatal("Expected error for HTTP 500")
	}

	item, err := poller.Next(ctx)
	if err != nil {
		t.Fatalf("Expected recovery after error, got: %v", err)
	}
	if item.ID != "https://example.com/p1" {
		t.Errorf("Expected p1, got %s", item.ID)
	}
}

func TestPoller_CancelInterruptsWait(t *testing.T) {
	server := &listingServer{responses: []string{rssListing("p1")}}
	ts := httptest.NewServer(server)
	defer ts.Close()

	poller := NewPoller(ts.URL, time.Hour, &http.Client{Timeout: time.Second}, NewParser(), "Test Agent")

	ctx, cancel := context.WithCancel(context.Background())
	if _, err := poller.Next(ctx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := poller.Next(ctx)
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Next did not return after cancellation")
	}
}
