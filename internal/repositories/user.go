package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/models"
)

// UserReadRepository handles user read operations.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsernameOrEmail returns the first user matching the given username
// and/or email, or nil when no such user exists.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, avatar_url,
		       wallet_balance, kills, wins, tournaments_played, total_winnings,
		       created_at, updated_at
		FROM users
		WHERE ($1::VARCHAR IS NULL OR username = $1)
		  AND ($2::VARCHAR IS NULL OR email = $2)
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username, email)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username, email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID returns a user by primary key.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, avatar_url,
		       wallet_balance, kills, wins, tournaments_played, total_winnings,
		       created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UserWriteRepository handles user write operations.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

func (r *UserWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save provisions a profile row with the starting wallet balance.
func (r *UserWriteRepository) Save(ctx context.Context, username, password, email string) error {
	query := `
		INSERT INTO users (user_id, username, email, password_hash, wallet_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	args := []any{uuid.New(), username, email, password, models.StartingWalletBalance}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username, email},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// DebitWallet subtracts amount from the user's wallet in a single
// conditional update. Returns sql.ErrNoRows when the balance is too low.
func (r *UserWriteRepository) DebitWallet(ctx context.Context, userID uuid.UUID, amount int64) error {
	query := `
		UPDATE users
		SET wallet_balance = wallet_balance - $2, updated_at = NOW()
		WHERE user_id = $1 AND wallet_balance >= $2
		RETURNING wallet_balance
	`

	var balance int64
	err := sqlx.GetContext(ctx, r.executor(ctx), &balance, query, userID, amount)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, amount},
		"result", balance,
		"error", err,
	)

	return err
}
