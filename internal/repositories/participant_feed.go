package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
)

// ParticipantFeedRepository carries participant-change notifications over
// Redis pub/sub, one channel per tournament. Messages carry no payload;
// subscribers refetch the full participant list on every notification.
type ParticipantFeedRepository struct {
	client *redis.Client
}

func NewParticipantFeedRepository(client *redis.Client) *ParticipantFeedRepository {
	return &ParticipantFeedRepository{client: client}
}

func feedChannel(tournamentID uuid.UUID) string {
	return fmt.Sprintf("tournament:%s:participants", tournamentID)
}

// Publish signals that the participant set of a tournament changed.
func (r *ParticipantFeedRepository) Publish(ctx context.Context, tournamentID uuid.UUID) error {
	channel := feedChannel(tournamentID)
	err := r.client.Publish(ctx, channel, "changed").Err()

	logger.Log.Infow(
		"channel", channel,
		"result", "published",
		"error", err,
	)

	return err
}

// Subscribe returns a channel that receives a signal on every participant
// change for the tournament, and a release function. The subscription stays
// open until release is called or ctx is cancelled.
func (r *ParticipantFeedRepository) Subscribe(ctx context.Context, tournamentID uuid.UUID) (<-chan struct{}, func(), error) {
	channel := feedChannel(tournamentID)

	sub := r.client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		logger.Log.Errorw("failed to subscribe to participant feed", "channel", channel, "error", err)
		sub.Close()
		return nil, nil, err
	}

	signals := make(chan struct{}, 1)
	msgs := sub.Channel()

	go func() {
		defer close(signals)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case signals <- struct{}{}:
				default:
					// A refetch is already pending, collapse the signal.
				}
			}
		}
	}()

	release := func() {
		if err := sub.Close(); err != nil {
			logger.Log.Errorw("failed to close participant feed subscription", "channel", channel, "error", err)
		}
	}

	logger.Log.Infow(
		"channel", channel,
		"result", "subscribed",
		"error", nil,
	)

	return signals, release, nil
}
