package models

import (
	"time"

	"github.com/google/uuid"
)

// StartingWalletBalance is credited to every profile created on registration.
const StartingWalletBalance int64 = 50

// UserDB represents a user row in the database.
type UserDB struct {
	UserID            uuid.UUID `db:"user_id"`
	Username          string    `db:"username"`
	Email             string    `db:"email"`
	PasswordHash      string    `db:"password_hash"`
	AvatarURL         *string   `db:"avatar_url"`
	WalletBalance     int64     `db:"wallet_balance"`
	Kills             int       `db:"kills"`
	Wins              int       `db:"wins"`
	TournamentsPlayed int       `db:"tournaments_played"`
	TotalWinnings     int64     `db:"total_winnings"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}
