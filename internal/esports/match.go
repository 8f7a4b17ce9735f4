package esports

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchCompleted MatchStatus = "completed"
	MatchCancelled MatchStatus = "cancelled"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchScheduled, MatchCompleted, MatchCancelled:
		return true
	}
	return false
}

type Match struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TournamentID uuid.UUID `db:"tournament_id" json:"tournament_id"`

	TeamAID uuid.UUID `db:"team_a_id" json:"team_a_id"`
	TeamBID uuid.UUID `db:"team_b_id" json:"team_b_id"`

	// Nil on a completed match means a draw
	WinnerID *uuid.UUID `db:"winner_id" json:"winner_id"`

	MatchTime   time.Time   `db:"match_time" json:"match_time"`
	RoundNumber int         `db:"round_number" json:"round_number"`
	Status      MatchStatus `db:"status" json:"status"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}

type Score struct {
	ID      uuid.UUID `db:"id" json:"id"`
	MatchID uuid.UUID `db:"match_id" json:"match_id"`
	TeamID  uuid.UUID `db:"team_id" json:"team_id"`
	Score   int       `db:"score" json:"score"`
}

// MatchResult is a match joined with both of its score rows.
type MatchResult struct {
	Match
	TeamAName string `db:"team_a_name" json:"team_a_name"`
	TeamBName string `db:"team_b_name" json:"team_b_name"`
	ScoreA    *int   `db:"score_a" json:"score_a"`
	ScoreB    *int   `db:"score_b" json:"score_b"`
}

func (m *Match) HasTeam(teamID uuid.UUID) bool {
	return m.TeamAID == teamID || m.TeamBID == teamID
}

func (m *Match) IsWinner(teamID uuid.UUID) bool {
	return m.Status == MatchCompleted && m.WinnerID != nil && *m.WinnerID == teamID
}

func (m *Match) IsLoser(teamID uuid.UUID) bool {
	return m.Status == MatchCompleted && m.WinnerID != nil && *m.WinnerID != teamID && m.HasTeam(teamID)
}

func (m *Match) IsDraw() bool {
	return m.Status == MatchCompleted && m.WinnerID == nil
}

// DecideWinner returns the team with the higher score, or nil on a draw.
func DecideWinner(teamA, teamB uuid.UUID, scoreA, scoreB int) *uuid.UUID {
	switch {
	case scoreA > scoreB:
		return &teamA
	case scoreB > scoreA:
		return &teamB
	default:
		return nil
	}
}

// MatchDetails is a match with whatever scores were recorded for it.
type MatchDetails struct {
	Match
	Scores []Score `json:"scores"`
}
