package esports

import (
	"time"

	"github.com/google/uuid"
)

type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentOngoing   TournamentStatus = "ongoing"
	TournamentCompleted TournamentStatus = "completed"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentUpcoming, TournamentOngoing, TournamentCompleted:
		return true
	}
	return false
}

// Tournament status is set by organizers; nothing derives it from the dates.
type Tournament struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	Name      string           `db:"name" json:"name"`
	GameID    uuid.UUID        `db:"game_id" json:"game_id"`
	StartDate time.Time        `db:"start_date" json:"start_date"`
	EndDate   time.Time        `db:"end_date" json:"end_date"`
	PrizePool float64          `db:"prize_pool" json:"prize_pool"`
	Status    TournamentStatus `db:"status" json:"status"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationRejected  RegistrationStatus = "rejected"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationConfirmed, RegistrationRejected:
		return true
	}
	return false
}

type Registration struct {
	ID           uuid.UUID          `db:"id" json:"id"`
	TeamID       uuid.UUID          `db:"team_id" json:"team_id"`
	TournamentID uuid.UUID          `db:"tournament_id" json:"tournament_id"`
	Status       RegistrationStatus `db:"status" json:"status"`
	RegisteredAt time.Time          `db:"registered_at" json:"registered_at"`
}

// TournamentListing is a tournament with its game title and the number of
// teams registered for it, whatever their registration status.
type TournamentListing struct {
	Tournament
	GameTitle string `db:"game_title" json:"game_title"`
	TeamCount int    `db:"team_count" json:"team_count"`
}
