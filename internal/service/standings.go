package service

import (
	"cmp"
	"math"
	"slices"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/AdamBeresnev/esports-tracker/internal/utils"
	"github.com/google/uuid"
)

const defaultTopTeamsLimit = 5

type tally struct {
	played     int
	wins       int
	losses     int
	draws      int
	totalScore int
	scoreCount int
}

func (t *tally) avgScore() float64 {
	if t.scoreCount == 0 {
		return 0
	}
	return round2(float64(t.totalScore) / float64(t.scoreCount))
}

func (t *tally) winRatePct() *float64 {
	if t.played == 0 {
		return nil
	}
	return utils.Ptr(round2(float64(t.wins) / float64(t.played) * 100))
}

// tallyMatches folds completed matches and their scores into per-team counters.
// Scheduled and cancelled matches, and scores attached to them, are ignored.
func tallyMatches(matches []esports.Match, scores []esports.Score) map[uuid.UUID]*tally {
	tallies := make(map[uuid.UUID]*tally)
	get := func(teamID uuid.UUID) *tally {
		t, ok := tallies[teamID]
		if !ok {
			t = &tally{}
			tallies[teamID] = t
		}
		return t
	}

	completed := make(map[uuid.UUID]struct{}, len(matches))
	for i := range matches {
		m := &matches[i]
		if m.Status != esports.MatchCompleted {
			continue
		}
		completed[m.ID] = struct{}{}

		for _, teamID := range []uuid.UUID{m.TeamAID, m.TeamBID} {
			t := get(teamID)
			t.played++
			switch {
			case m.IsDraw():
				t.draws++
			case m.IsWinner(teamID):
				t.wins++
			default:
				t.losses++
			}
		}
	}

	for _, s := range scores {
		if _, ok := completed[s.MatchID]; !ok {
			continue
		}
		t := get(s.TeamID)
		t.totalScore += s.Score
		t.scoreCount++
	}
	return tallies
}

// BuildLeaderboard ranks the given teams on the given tournament facts.
// Ordering is wins desc, average score desc, total score desc, name asc and
// finally team id, so equal records always come out in the same order.
func BuildLeaderboard(teams []esports.Team, matches []esports.Match, scores []esports.Score) []esports.LeaderboardEntry {
	tallies := tallyMatches(matches, scores)

	entries := make([]esports.LeaderboardEntry, 0, len(teams))
	for _, team := range teams {
		t, ok := tallies[team.ID]
		if !ok {
			t = &tally{}
		}
		entries = append(entries, esports.LeaderboardEntry{
			TeamID:        team.ID,
			TeamName:      team.Name,
			MatchesPlayed: t.played,
			Wins:          t.wins,
			Losses:        t.losses,
			Draws:         t.draws,
			TotalScore:    t.totalScore,
			AvgScore:      t.avgScore(),
			WinRatePct:    t.winRatePct(),
		})
	}

	slices.SortFunc(entries, func(a, b esports.LeaderboardEntry) int {
		return cmp.Or(
			cmp.Compare(b.Wins, a.Wins),
			cmp.Compare(b.AvgScore, a.AvgScore),
			cmp.Compare(b.TotalScore, a.TotalScore),
			cmp.Compare(a.TeamName, b.TeamName),
			cmp.Compare(a.TeamID.String(), b.TeamID.String()),
		)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// BuildTeamSummary computes a team's all-time record. Registrations that were
// rejected do not count as participation.
func BuildTeamSummary(team esports.Team, registrations []esports.Registration, matches []esports.Match, scores []esports.Score) esports.TeamSummary {
	tournaments := make(map[uuid.UUID]struct{})
	for _, r := range registrations {
		if r.TeamID == team.ID && r.Status != esports.RegistrationRejected {
			tournaments[r.TournamentID] = struct{}{}
		}
	}

	t, ok := tallyMatches(matches, scores)[team.ID]
	if !ok {
		t = &tally{}
	}

	return esports.TeamSummary{
		TeamID:                  team.ID,
		TeamName:                team.Name,
		TournamentsParticipated: len(tournaments),
		TotalMatches:            t.played,
		TotalWins:               t.wins,
		TotalLosses:             t.losses,
		TotalDraws:              t.draws,
		TotalScore:              t.totalScore,
		AvgScoreAllTime:         t.avgScore(),
		OverallWinRatePct:       t.winRatePct(),
		WinLossRatio:            WinLossRatio(t.wins, t.losses),
	}
}

// BuildTeamSummaries summarises every team, best record first.
func BuildTeamSummaries(teams []esports.Team, registrations []esports.Registration, matches []esports.Match, scores []esports.Score) []esports.TeamSummary {
	byTeam := make(map[uuid.UUID][]esports.Registration)
	for _, r := range registrations {
		byTeam[r.TeamID] = append(byTeam[r.TeamID], r)
	}

	summaries := make([]esports.TeamSummary, 0, len(teams))
	for _, team := range teams {
		summaries = append(summaries, BuildTeamSummary(team, byTeam[team.ID], matches, scores))
	}

	slices.SortFunc(summaries, func(a, b esports.TeamSummary) int {
		return cmp.Or(
			cmp.Compare(b.TotalWins, a.TotalWins),
			cmp.Compare(b.AvgScoreAllTime, a.AvgScoreAllTime),
			cmp.Compare(a.TeamName, b.TeamName),
			cmp.Compare(a.TeamID.String(), b.TeamID.String()),
		)
	})
	return summaries
}

// BuildTeamTournamentRecords gives the team's played and won counts inside
// each listed tournament, latest tournament first.
func BuildTeamTournamentRecords(teamID uuid.UUID, tournaments []esports.TournamentListing, matches []esports.Match) []esports.TeamTournamentRecord {
	byTournament := make(map[uuid.UUID][]esports.Match)
	for _, m := range matches {
		byTournament[m.TournamentID] = append(byTournament[m.TournamentID], m)
	}

	records := make([]esports.TeamTournamentRecord, 0, len(tournaments))
	for _, tournament := range tournaments {
		record := esports.TeamTournamentRecord{
			TournamentID: tournament.ID,
			Name:         tournament.Name,
			Game:         tournament.GameTitle,
			StartDate:    tournament.StartDate,
			EndDate:      tournament.EndDate,
			Status:       tournament.Status,
		}
		if t, ok := tallyMatches(byTournament[tournament.ID], nil)[teamID]; ok {
			record.MatchesPlayed = t.played
			record.Wins = t.wins
		}
		records = append(records, record)
	}

	slices.SortFunc(records, func(a, b esports.TeamTournamentRecord) int {
		return cmp.Or(
			b.StartDate.Compare(a.StartDate),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.TournamentID.String(), b.TournamentID.String()),
		)
	})
	return records
}

// TopTeamsByAverageScore keeps teams with at least one completed match.
// A limit of zero or less falls back to five.
func TopTeamsByAverageScore(teams []esports.Team, matches []esports.Match, scores []esports.Score, limit int) []esports.TopTeam {
	if limit <= 0 {
		limit = defaultTopTeamsLimit
	}
	tallies := tallyMatches(matches, scores)

	var top []esports.TopTeam
	for _, team := range teams {
		t, ok := tallies[team.ID]
		if !ok || t.played == 0 {
			continue
		}
		top = append(top, esports.TopTeam{
			TeamID:        team.ID,
			TeamName:      team.Name,
			MatchesPlayed: t.played,
			AvgScore:      t.avgScore(),
			TotalScore:    t.totalScore,
		})
	}

	slices.SortFunc(top, func(a, b esports.TopTeam) int {
		return cmp.Or(
			cmp.Compare(b.AvgScore, a.AvgScore),
			cmp.Compare(b.TotalScore, a.TotalScore),
			cmp.Compare(a.TeamName, b.TeamName),
			cmp.Compare(a.TeamID.String(), b.TeamID.String()),
		)
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

// WinLossRatio returns wins per loss. An unbeaten record with at least one
// win yields esports.WinLossSentinel; no decided matches yields 0. Any record
// with a loss stays below the sentinel.
func WinLossRatio(wins, losses int) float64 {
	if losses > 0 {
		return min(round2(float64(wins)/float64(losses)), esports.WinLossSentinel-0.01)
	}
	if wins > 0 {
		return esports.WinLossSentinel
	}
	return 0
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
