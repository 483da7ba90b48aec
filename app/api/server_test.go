package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lysyi3m/post-comb/app/feed"
	"github.com/lysyi3m/post-comb/app/tasks"
)

type staticStats struct {
	stats tasks.IngestStats
}

func (s staticStats) Stats() tasks.IngestStats {
	return s.stats
}

type staticCounter struct {
	count int
	err   error
}

func (c staticCounter) Count(ctx context.Context) (int, error) {
	return c.count, c.err
}

func newTestServer(counter SeenCounter) http.Handler {
	stats := staticStats{stats: tasks.IngestStats{Received: 3, Forwarded: 1, Filtered: 2}}
	keywords := feed.Keywords{Desired: []string{"gpu"}}
	return NewServer(NewHandler(stats, counter, keywords, "test"))
}

func TestHealth(t *testing.T) {
	server := newTestServer(staticCounter{})

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestStats(t *testing.T) {
	server := newTestServer(staticCounter{count: 42})

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Seen   int               `json:"seen"`
		Ingest tasks.IngestStats `json:"ingest"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 42, body.Seen)
	assert.Equal(t, int64(3), body.Ingest.Received)
	assert.Equal(t, int64(1), body.Ingest.Forwarded)
}

func TestStats_StorageError(t *testing.T) {
	server := newTestServer(staticCounter{err: errors.New("disk I/O error")})

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
