package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/marginalia-api/internal/models"
)

const revokedKeyPrefix = "revoked:"

type revocationStore interface {
	Insert(ctx context.Context, rec *models.RevokedToken) (string, error)
	FindByToken(ctx context.Context, token string) (*models.RevokedToken, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// CachedTokenRepository fronts the Postgres revocation store with a Redis
// point cache keyed by the encoded token string. Postgres stays the
// authority: a Redis outage degrades lookups to database reads, while a
// database failure propagates to the caller untouched. Entries carry a
// TTL matching the token's remaining life, after which the revocation row
// no longer matters.
type CachedTokenRepository struct {
	store  revocationStore
	client *redis.Client
	logger *zap.Logger
}

// NewCachedTokenRepository wraps the given store. A nil client disables
// caching entirely.
func NewCachedTokenRepository(store revocationStore, client *redis.Client, logger *zap.Logger) *CachedTokenRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedTokenRepository{store: store, client: client, logger: logger}
}

// Insert writes through: the database first, then the cache best-effort.
func (r *CachedTokenRepository) Insert(ctx context.Context, rec *models.RevokedToken) (string, error) {
	id, err := r.store.Insert(ctx, rec)
	if err != nil {
		return "", err
	}

	r.cacheSet(ctx, rec)
	return id, nil
}

// FindByToken consults the cache before falling back to the database. A
// database hit backfills the cache for subsequent lookups.
func (r *CachedTokenRepository) FindByToken(ctx context.Context, token string) (*models.RevokedToken, error) {
	if r.client != nil {
		raw, err := r.client.Get(ctx, revokedKeyPrefix+token).Bytes()
		switch {
		case err == nil:
			var rec models.RevokedToken
			if err := json.Unmarshal(raw, &rec); err == nil {
				return &rec, nil
			}
			r.logger.Warn("corrupt revocation cache entry, falling back to store", zap.Error(err))
		case err != redis.Nil:
			r.logger.Warn("revocation cache read failed, falling back to store", zap.Error(err))
		}
	}

	rec, err := r.store.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		r.cacheSet(ctx, rec)
	}
	return rec, nil
}

// DeleteExpired passes through; cache entries evict themselves via TTL.
func (r *CachedTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return r.store.DeleteExpired(ctx, before)
}

func (r *CachedTokenRepository) cacheSet(ctx context.Context, rec *models.RevokedToken) {
	if r.client == nil {
		return
	}

	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		r.logger.Warn("marshal revocation cache entry", zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, revokedKeyPrefix+rec.Token, payload, ttl).Err(); err != nil {
		r.logger.Warn("revocation cache write failed", zap.Error(err))
	}
}
