package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/models"
)

// TournamentReadRepository handles tournament read operations.
//
// List attempts a wide column selection first and retries once with a
// minimal column set when the wide query fails, so a partially migrated
// schema degrades the listing instead of breaking it.
type TournamentReadRepository struct {
	db *sqlx.DB
}

func NewTournamentReadRepository(db *sqlx.DB) *TournamentReadRepository {
	return &TournamentReadRepository{db: db}
}

const tournamentWideQuery = `
	SELECT tournament_id, name, game, description, entry_fee, prize_pool,
	       max_players, current_players, status, start_time, end_time,
	       room_id, room_password, created_at, updated_at
	FROM tournaments
	WHERE ($1 OR status IN ('upcoming', 'live'))
	ORDER BY start_time
`

const tournamentMinimalQuery = `
	SELECT tournament_id, name, game, entry_fee, prize_pool,
	       max_players, current_players, status, start_time,
	       created_at, updated_at
	FROM tournaments
	WHERE ($1 OR status IN ('upcoming', 'live'))
	ORDER BY start_time
`

// List returns tournaments ordered by start time. When includeCompleted is
// false only upcoming and live tournaments are returned.
func (r *TournamentReadRepository) List(ctx context.Context, includeCompleted bool) ([]models.TournamentDB, error) {
	var tournaments []models.TournamentDB

	err := r.db.SelectContext(ctx, &tournaments, tournamentWideQuery, includeCompleted)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(tournamentWideQuery), " "),
		"args", []any{includeCompleted},
		"result", len(tournaments),
		"error", err,
	)

	if err == nil {
		return tournaments, nil
	}

	// Wide selection failed, retry once with the minimal column set.
	tournaments = tournaments[:0]
	err = r.db.SelectContext(ctx, &tournaments, tournamentMinimalQuery, includeCompleted)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(tournamentMinimalQuery), " "),
		"args", []any{includeCompleted},
		"result", len(tournaments),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return tournaments, nil
}

// GetByID returns a single tournament with all columns.
func (r *TournamentReadRepository) GetByID(ctx context.Context, tournamentID uuid.UUID) (*models.TournamentDB, error) {
	const query = `
		SELECT tournament_id, name, game, description, entry_fee, prize_pool,
		       max_players, current_players, status, start_time, end_time,
		       room_id, room_password, created_at, updated_at
		FROM tournaments
		WHERE tournament_id = $1
	`

	var tournament models.TournamentDB
	err := r.db.GetContext(ctx, &tournament, query, tournamentID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{tournamentID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &tournament, nil
}

// ListByIDs returns tournaments for the given id set.
func (r *TournamentReadRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.TournamentDB, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT tournament_id, name, game, description, entry_fee, prize_pool,
		       max_players, current_players, status, start_time, end_time,
		       room_id, room_password, created_at, updated_at
		FROM tournaments
		WHERE tournament_id IN (?)
		ORDER BY start_time
	`, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var tournaments []models.TournamentDB
	err = r.db.SelectContext(ctx, &tournaments, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{ids},
		"result", len(tournaments),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return tournaments, nil
}
