package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction types.
const (
	TxnDeposit    = "deposit"
	TxnWithdrawal = "withdrawal"
	TxnEntryFee   = "entry_fee"
	TxnPrize      = "prize"
)

// Transaction statuses.
const (
	TxnPending   = "pending"
	TxnCompleted = "completed"
	TxnFailed    = "failed"
)

// TransactionDB represents a wallet transaction row in the database.
type TransactionDB struct {
	TransactionID uuid.UUID `db:"transaction_id" json:"transaction_id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	Type          string    `db:"type" json:"type"`
	Amount        int64     `db:"amount" json:"amount"`
	Status        string    `db:"status" json:"status"`
	Reference     *string   `db:"reference" json:"reference,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// PaymentEvent is published to Kafka for every payment lifecycle step.
// It is an observability stream, not a settlement ledger.
type PaymentEvent struct {
	EventID   string  `json:"event_id"`
	Timestamp int64   `json:"timestamp"`
	OrderID   string  `json:"order_id"`
	Kind      string  `json:"kind"` // order_created | webhook_received
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	TxnID     string  `json:"txn_id,omitempty"`
}

// JoinEvent is published to Kafka when a user joins a tournament.
type JoinEvent struct {
	EventID      string `json:"event_id"`
	Timestamp    int64  `json:"timestamp"`
	TournamentID string `json:"tournament_id"`
	UserID       string `json:"user_id"`
	EntryFee     int64  `json:"entry_fee"`
}
