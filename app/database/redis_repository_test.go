package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisRepository(t *testing.T) (*RedisSeenRepository, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)

	repo, err := NewRedisSeenRepository(context.Background(), "redis://"+server.Addr()+"/0")
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, repo.Close())
	})

	return repo, server
}

func TestRedisSeenRepository_InsertAndHas(t *testing.T) {
	repo, server := setupRedisRepository(t)
	ctx := context.Background()

	seen, err := repo.Has(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, repo.Insert(ctx, "p1"))
	assert.ErrorIs(t, repo.Insert(ctx, "p1"), ErrDuplicateKey)

	seen, err = repo.Has(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, seen)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	members, err := server.Members(SeenSetKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, members)
}

func TestRedisSeenRepository_StoreFailure(t *testing.T) {
	repo, server := setupRedisRepository(t)
	server.Close()

	_, err := repo.Has(context.Background(), "p1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateKey)
}

func TestNewRedisSeenRepository_Unreachable(t *testing.T) {
	_, err := NewRedisSeenRepository(context.Background(), "redis://127.0.0.1:1/0")
	assert.Error(t, err)
}
