package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/models"
)

var (
	// ErrTournamentFull is returned when current_players has reached max_players.
	ErrTournamentFull = errors.New("tournament is full")
	// ErrAlreadyJoined is returned when the user already has a join record.
	ErrAlreadyJoined = errors.New("user already joined tournament")
)

// ParticipantReadRepository handles participant read operations.
type ParticipantReadRepository struct {
	db *sqlx.DB
}

func NewParticipantReadRepository(db *sqlx.DB) *ParticipantReadRepository {
	return &ParticipantReadRepository{db: db}
}

// ListByTournamentID returns all participants of a tournament joined with
// user display fields, ordered by join time.
func (r *ParticipantReadRepository) ListByTournamentID(ctx context.Context, tournamentID uuid.UUID) ([]models.ParticipantView, error) {
	const query = `
		SELECT p.participant_id, p.tournament_id, p.user_id, u.username, u.avatar_url, p.joined_at
		FROM tournament_participants p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.tournament_id = $1
		ORDER BY p.joined_at
	`

	var participants []models.ParticipantView
	err := r.db.SelectContext(ctx, &participants, query, tournamentID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{tournamentID},
		"result", len(participants),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return participants, nil
}

// ListByUserID returns all join records of a user, newest first.
func (r *ParticipantReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.ParticipantDB, error) {
	const query = `
		SELECT participant_id, tournament_id, user_id, joined_at, placement, kills, prize_won
		FROM tournament_participants
		WHERE user_id = $1
		ORDER BY joined_at DESC
	`

	var participants []models.ParticipantDB
	err := r.db.SelectContext(ctx, &participants, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(participants),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return participants, nil
}

// Exists reports whether the user has a join record for the tournament.
func (r *ParticipantReadRepository) Exists(ctx context.Context, tournamentID, userID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM tournament_participants
			WHERE tournament_id = $1 AND user_id = $2
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, tournamentID, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{tournamentID, userID},
		"result", exists,
		"error", err,
	)

	return exists, err
}

// ParticipantWriteRepository handles participant write operations.
type ParticipantWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewParticipantWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ParticipantWriteRepository {
	return &ParticipantWriteRepository{db: db, txGetter: txGetter}
}

func (r *ParticipantWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a join record and bumps the seat counter in one round trip.
// The conditional counter update enforces current_players <= max_players;
// the unique constraint on (tournament_id, user_id) enforces one join per
// user. Returns ErrTournamentFull or ErrAlreadyJoined accordingly.
func (r *ParticipantWriteRepository) Save(ctx context.Context, tournamentID, userID uuid.UUID) error {
	query := `
		WITH seat AS (
			UPDATE tournaments
			SET current_players = current_players + 1, updated_at = NOW()
			WHERE tournament_id = $2 AND current_players < max_players
			RETURNING tournament_id
		)
		INSERT INTO tournament_participants (participant_id, tournament_id, user_id, joined_at)
		SELECT $1, tournament_id, $3, NOW()
		FROM seat
		RETURNING participant_id
	`
	args := []any{uuid.New(), tournamentID, userID}

	var participantID uuid.UUID
	err := sqlx.GetContext(ctx, r.executor(ctx), &participantID, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{tournamentID, userID},
		"result", participantID,
		"error", err,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyJoined
		}
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTournamentFull
		}
		return err
	}
	return nil
}
