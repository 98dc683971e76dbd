package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/models"
)

// FeedSubscriber delivers participant-change signals for one tournament.
type FeedSubscriber interface {
	Subscribe(ctx context.Context, tournamentID uuid.UUID) (<-chan struct{}, func(), error)
}

// RoomTournamentReader loads the tournament shown in the waiting room.
type RoomTournamentReader interface {
	GetByID(ctx context.Context, tournamentID uuid.UUID) (*models.TournamentDB, error)
}

// RoomSnapshot is the waiting-room view: tournament state, the full
// participant list and the room credentials once the admin has set them.
type RoomSnapshot struct {
	TournamentID   uuid.UUID                `json:"tournament_id"`
	Name           string                   `json:"name"`
	Status         string                   `json:"status"`
	StartTime      string                   `json:"start_time"`
	MaxPlayers     int                      `json:"max_players"`
	CurrentPlayers int                      `json:"current_players"`
	RoomID         *string                  `json:"room_id,omitempty"`
	RoomPassword   *string                  `json:"room_password,omitempty"`
	Participants   []models.ParticipantView `json:"participants"`
}

// WaitingRoomService serves live waiting-room snapshots. Every change
// signal triggers a full participant refetch; no incremental merge is
// attempted.
type WaitingRoomService struct {
	tournaments  RoomTournamentReader
	participants ParticipantReader
	feed         FeedSubscriber
}

// NewWaitingRoomService creates a new WaitingRoomService.
func NewWaitingRoomService(tournaments RoomTournamentReader, participants ParticipantReader, feed FeedSubscriber) *WaitingRoomService {
	return &WaitingRoomService{
		tournaments:  tournaments,
		participants: participants,
		feed:         feed,
	}
}

// Snapshot builds the current waiting-room view for a tournament.
func (s *WaitingRoomService) Snapshot(ctx context.Context, tournamentID uuid.UUID) (*RoomSnapshot, error) {
	tournament, err := s.tournaments.GetByID(ctx, tournamentID)
	if err != nil {
		logger.Log.Errorw("failed to load tournament for waiting room", "tournament_id", tournamentID, "error", err)
		return nil, err
	}

	participants, err := s.participants.ListByTournamentID(ctx, tournamentID)
	if err != nil {
		logger.Log.Errorw("failed to load participants for waiting room", "tournament_id", tournamentID, "error", err)
		return nil, err
	}

	return &RoomSnapshot{
		TournamentID:   tournament.TournamentID,
		Name:           tournament.Name,
		Status:         tournament.Status,
		StartTime:      tournament.StartTime.Format(time.RFC3339),
		MaxPlayers:     tournament.MaxPlayers,
		CurrentPlayers: tournament.CurrentPlayers,
		RoomID:         tournament.RoomID,
		RoomPassword:   tournament.RoomPassword,
		Participants:   participants,
	}, nil
}

// Watch streams waiting-room snapshots until ctx is cancelled. The first
// snapshot is sent immediately; afterwards one is sent per change signal.
// The feed subscription is released when the watcher stops.
func (s *WaitingRoomService) Watch(ctx context.Context, tournamentID uuid.UUID) (<-chan RoomSnapshot, error) {
	initial, err := s.Snapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	signals, release, err := s.feed.Subscribe(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	out := make(chan RoomSnapshot, 1)
	out <- *initial

	go func() {
		defer close(out)
		defer release()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
				snapshot, err := s.Snapshot(ctx, tournamentID)
				if err != nil {
					logger.Log.Errorw("failed to refresh waiting room snapshot", "tournament_id", tournamentID, "error", err)
					continue
				}
				select {
				case out <- *snapshot:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
