package esports

import "github.com/google/uuid"

// WinLossSentinel stands in for an unbeaten record's ratio. It stays finite so
// the value survives JSON. Ratios with at least one loss are capped one cent
// below it, so the sentinel is strictly greater than any of them.
const WinLossSentinel = 999.99

type LeaderboardEntry struct {
	Rank          int       `json:"rank"`
	TeamID        uuid.UUID `json:"team_id"`
	TeamName      string    `json:"team_name"`
	MatchesPlayed int       `json:"matches_played"`
	Wins          int       `json:"wins"`
	Losses        int       `json:"losses"`
	Draws         int       `json:"draws"`
	TotalScore    int       `json:"total_score"`
	AvgScore      float64   `json:"avg_score"`
	// Nil until the team has played a completed match
	WinRatePct *float64 `json:"win_rate_pct"`
}

type TeamSummary struct {
	TeamID                  uuid.UUID `json:"team_id"`
	TeamName                string    `json:"team_name"`
	TournamentsParticipated int       `json:"tournaments_participated"`
	TotalMatches            int       `json:"total_matches"`
	TotalWins               int       `json:"total_wins"`
	TotalLosses             int       `json:"total_losses"`
	TotalDraws              int       `json:"total_draws"`
	TotalScore              int       `json:"total_score"`
	AvgScoreAllTime         float64   `json:"avg_score_all_time"`
	OverallWinRatePct       *float64  `json:"overall_win_rate_pct"`
	WinLossRatio            float64   `json:"win_loss_ratio"`
}

type TopTeam struct {
	TeamID        uuid.UUID `json:"team_id"`
	TeamName      string    `json:"team_name"`
	MatchesPlayed int       `json:"matches_played"`
	AvgScore      float64   `json:"avg_score"`
	TotalScore    int       `json:"total_score"`
}

// Overview backs the front page.
type Overview struct {
	Upcoming []TournamentListing `json:"upcoming"`
	Ongoing  []TournamentListing `json:"ongoing"`
	TopTeams []TeamSummary       `json:"top_teams"`
}
