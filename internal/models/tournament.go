package models

import (
	"time"

	"github.com/google/uuid"
)

// Tournament lifecycle statuses.
const (
	TournamentUpcoming  = "upcoming"
	TournamentLive      = "live"
	TournamentCompleted = "completed"
)

// TournamentDB represents a tournament row in the database.
//
// Description, RoomID and RoomPassword are only present when the wide
// column selection succeeds; the minimal fallback selection leaves them nil.
type TournamentDB struct {
	TournamentID   uuid.UUID  `db:"tournament_id" json:"tournament_id"`
	Name           string     `db:"name" json:"name"`
	Game           string     `db:"game" json:"game"`
	Description    *string    `db:"description" json:"description,omitempty"`
	EntryFee       int64      `db:"entry_fee" json:"entry_fee"`
	PrizePool      int64      `db:"prize_pool" json:"prize_pool"`
	MaxPlayers     int        `db:"max_players" json:"max_players"`
	CurrentPlayers int        `db:"current_players" json:"current_players"`
	Status         string     `db:"status" json:"status"`
	StartTime      time.Time  `db:"start_time" json:"start_time"`
	EndTime        *time.Time `db:"end_time" json:"end_time,omitempty"`
	RoomID         *string    `db:"room_id" json:"room_id,omitempty"`
	RoomPassword   *string    `db:"room_password" json:"room_password,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
