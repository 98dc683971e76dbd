package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/models"
)

// TransactionReadRepository handles transaction read operations.
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// ListByUserID returns the user's transaction history, newest first.
func (r *TransactionReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, user_id, type, amount, status, reference, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var transactions []models.TransactionDB
	err := r.db.SelectContext(ctx, &transactions, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(transactions),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// TransactionWriteRepository handles transaction write operations.
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

func (r *TransactionWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save records a completed wallet transaction.
func (r *TransactionWriteRepository) Save(ctx context.Context, userID uuid.UUID, txnType string, amount int64, reference *string) error {
	query := `
		INSERT INTO transactions (transaction_id, user_id, type, amount, status, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	args := []any{uuid.New(), userID, txnType, amount, models.TxnCompleted, reference}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, txnType, amount},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
