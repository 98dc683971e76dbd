package models

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantDB represents a tournament join record in the database.
// Placement, kills and prize are filled in post-match by an external process.
type ParticipantDB struct {
	ParticipantID uuid.UUID `db:"participant_id" json:"participant_id"`
	TournamentID  uuid.UUID `db:"tournament_id" json:"tournament_id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	JoinedAt      time.Time `db:"joined_at" json:"joined_at"`
	Placement     *int      `db:"placement" json:"placement,omitempty"`
	Kills         *int      `db:"kills" json:"kills,omitempty"`
	PrizeWon      *int64    `db:"prize_won" json:"prize_won,omitempty"`
}

// ParticipantView is a participant joined with user display fields,
// the shape rendered in waiting rooms and participant lists.
type ParticipantView struct {
	ParticipantID uuid.UUID `db:"participant_id" json:"participant_id"`
	TournamentID  uuid.UUID `db:"tournament_id" json:"tournament_id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	Username      string    `db:"username" json:"username"`
	AvatarURL     *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	JoinedAt      time.Time `db:"joined_at" json:"joined_at"`
}
