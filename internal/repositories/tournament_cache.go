package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/models"
)

const tournamentListKey = "tournaments:listing"

// TournamentCacheRepository caches the public tournament listing in Redis.
type TournamentCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewTournamentCacheRepository creates a new repository instance with the given TTL.
func NewTournamentCacheRepository(client *redis.Client, expiration time.Duration) *TournamentCacheRepository {
	return &TournamentCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// GetListing fetches the cached tournament listing.
func (r *TournamentCacheRepository) GetListing(ctx context.Context) ([]models.TournamentDB, error) {
	val, err := r.client.Get(ctx, tournamentListKey).Result()
	if err != nil {
		logger.Log.Infow(
			"key", tournamentListKey,
			"error", err,
		)
		if err == redis.Nil {
			return nil, fmt.Errorf("tournament listing not found in cache")
		}
		return nil, err
	}

	var tournaments []models.TournamentDB
	if err := json.Unmarshal([]byte(val), &tournaments); err != nil {
		logger.Log.Infow(
			"key", tournamentListKey,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow(
		"key", tournamentListKey,
		"result", len(tournaments),
		"error", nil,
	)

	return tournaments, nil
}

// SetListing caches the tournament listing with expiration.
func (r *TournamentCacheRepository) SetListing(ctx context.Context, tournaments []models.TournamentDB) error {
	data, err := json.Marshal(tournaments)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, tournamentListKey, data, r.exp).Err()

	logger.Log.Infow(
		"key", tournamentListKey,
		"count", len(tournaments),
		"result", "ok",
		"error", err,
	)

	return err
}
