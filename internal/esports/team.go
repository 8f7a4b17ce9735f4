package esports

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CaptainID uuid.UUID `db:"captain_id" json:"captain_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Player is a roster slot: one user playing for one team under an in-game tag.
type Player struct {
	ID       uuid.UUID `db:"id" json:"id"`
	UserID   uuid.UUID `db:"user_id" json:"user_id"`
	TeamID   uuid.UUID `db:"team_id" json:"team_id"`
	GameTag  string    `db:"game_tag" json:"game_tag"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}

type Game struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Title string    `db:"title" json:"title"`
	Genre string    `db:"genre" json:"genre"`
}

// RosterEntry is a roster slot joined to the user holding it.
type RosterEntry struct {
	PlayerID uuid.UUID `db:"player_id" json:"player_id"`
	UserID   uuid.UUID `db:"user_id" json:"user_id"`
	Name     string    `db:"name" json:"name"`
	Email    string    `db:"email" json:"email"`
	GameTag  string    `db:"game_tag" json:"game_tag"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}

// TeamTournamentRecord is a team's completed-match record inside one
// tournament it registered for.
type TeamTournamentRecord struct {
	TournamentID  uuid.UUID        `json:"tournament_id"`
	Name          string           `json:"name"`
	Game          string           `json:"game"`
	StartDate     time.Time        `json:"start_date"`
	EndDate       time.Time        `json:"end_date"`
	Status        TournamentStatus `json:"status"`
	MatchesPlayed int              `json:"matches_played"`
	Wins          int              `json:"wins"`
}

type TeamDetails struct {
	Team
	CaptainName string                 `json:"captain_name"`
	Roster      []RosterEntry          `json:"roster"`
	Summary     TeamSummary            `json:"summary"`
	Tournaments []TeamTournamentRecord `json:"tournaments"`
}
