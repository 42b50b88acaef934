package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/marginalia-api/internal/models"
)

type memoryRevocationStore struct {
	records map[string]*models.RevokedToken
	finds   int
	findErr error
}

func (m *memoryRevocationStore) Insert(ctx context.Context, rec *models.RevokedToken) (string, error) {
	if m.records == nil {
		m.records = make(map[string]*models.RevokedToken)
	}
	m.records[rec.Token] = rec
	return rec.ID, nil
}

func (m *memoryRevocationStore) FindByToken(ctx context.Context, token string) (*models.RevokedToken, error) {
	m.finds++
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.records[token], nil
}

func (m *memoryRevocationStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func newCacheFixture(t *testing.T) (*CachedTokenRepository, *memoryRevocationStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	store := &memoryRevocationStore{}
	return NewCachedTokenRepository(store, client, zap.NewNop()), store, srv
}

func TestCachedRepositoryInsertWritesThrough(t *testing.T) {
	repo, store, srv := newCacheFixture(t)
	rec := sampleRecord()

	id, err := repo.Insert(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, id)

	// Database row and cache entry both exist.
	assert.NotNil(t, store.records[rec.Token])
	raw, err := srv.Get(revokedKeyPrefix + rec.Token)
	require.NoError(t, err)

	var cached models.RevokedToken
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, rec.ID, cached.ID)
}

func TestCachedRepositoryFindHitsCacheWithoutStore(t *testing.T) {
	repo, store, _ := newCacheFixture(t)
	rec := sampleRecord()
	_, err := repo.Insert(context.Background(), rec)
	require.NoError(t, err)

	found, err := repo.FindByToken(context.Background(), rec.Token)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, rec.ID, found.ID)
	assert.Zero(t, store.finds)
}

func TestCachedRepositoryFindMissFallsThroughAndBackfills(t *testing.T) {
	repo, store, srv := newCacheFixture(t)
	rec := sampleRecord()

	// Seed the database only, bypassing the cache.
	_, err := store.Insert(context.Background(), rec)
	require.NoError(t, err)

	found, err := repo.FindByToken(context.Background(), rec.Token)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 1, store.finds)

	// The hit was backfilled for the next lookup.
	assert.True(t, srv.Exists(revokedKeyPrefix+rec.Token))
}

func TestCachedRepositoryFindUnrevokedToken(t *testing.T) {
	repo, _, _ := newCacheFixture(t)

	found, err := repo.FindByToken(context.Background(), "never-revoked")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCachedRepositoryDegradesWhenRedisDown(t *testing.T) {
	repo, store, srv := newCacheFixture(t)
	rec := sampleRecord()
	_, err := store.Insert(context.Background(), rec)
	require.NoError(t, err)

	srv.Close()

	// Lookups still answer from the database.
	found, err := repo.FindByToken(context.Background(), rec.Token)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, rec.ID, found.ID)
}

func TestCachedRepositorySkipsExpiredEntries(t *testing.T) {
	repo, _, srv := newCacheFixture(t)
	rec := sampleRecord()
	rec.ExpiresAt = time.Now().Add(-time.Minute).UTC()

	_, err := repo.Insert(context.Background(), rec)
	require.NoError(t, err)

	// A token past its expiry gets no cache entry.
	assert.False(t, srv.Exists(revokedKeyPrefix+rec.Token))
}

func TestCachedRepositoryNilClientPassesThrough(t *testing.T) {
	store := &memoryRevocationStore{}
	repo := NewCachedTokenRepository(store, nil, nil)
	rec := sampleRecord()

	_, err := repo.Insert(context.Background(), rec)
	require.NoError(t, err)

	found, err := repo.FindByToken(context.Background(), rec.Token)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 1, store.finds)
}
