package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/AdamBeresnev/esports-tracker/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// StandingsService loads facts for the standings builders. Each call reads
// inside one read-only transaction so a match is never seen without its scores.
type StandingsService struct {
	db          *sqlx.DB
	users       *store.UserStore
	teams       *store.TeamStore
	tournaments *store.TournamentStore
	matches     *store.MatchStore
}

func NewStandingsService(db *sqlx.DB, users *store.UserStore, teams *store.TeamStore, tournaments *store.TournamentStore, matches *store.MatchStore) *StandingsService {
	return &StandingsService{db: db, users: users, teams: teams, tournaments: tournaments, matches: matches}
}

func (s *StandingsService) read(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("failed to begin read: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *StandingsService) TournamentLeaderboard(ctx context.Context, tournamentID uuid.UUID) ([]esports.LeaderboardEntry, error) {
	var (
		teams   []esports.Team
		matches []esports.Match
		scores  []esports.Score
	)
	err := s.read(ctx, func(tx *sqlx.Tx) error {
		if _, err := s.tournaments.GetTournament(ctx, tx, tournamentID); err != nil {
			return err
		}
		var err error
		if teams, err = s.teams.ListRegisteredTeams(ctx, tx, tournamentID, esports.RegistrationConfirmed); err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		if matches, err = s.matches.ListMatchesByTournament(ctx, tx, tournamentID); err != nil {
			return fmt.Errorf("failed to load matches: %w", err)
		}
		if scores, err = s.matches.ListScoresByTournament(ctx, tx, tournamentID); err != nil {
			return fmt.Errorf("failed to load scores: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return BuildLeaderboard(teams, matches, scores), nil
}

func (s *StandingsService) TeamSummary(ctx context.Context, teamID uuid.UUID) (*esports.TeamSummary, error) {
	var (
		team          *esports.Team
		registrations []esports.Registration
		matches       []esports.Match
		scores        []esports.Score
	)
	err := s.read(ctx, func(tx *sqlx.Tx) error {
		var err error
		if team, err = s.teams.GetTeam(ctx, tx, teamID); err != nil {
			return err
		}
		if registrations, err = s.tournaments.ListRegistrationsByTeam(ctx, tx, teamID); err != nil {
			return fmt.Errorf("failed to load registrations: %w", err)
		}
		if matches, err = s.matches.ListMatchesByTeam(ctx, tx, teamID); err != nil {
			return fmt.Errorf("failed to load matches: %w", err)
		}
		if scores, err = s.matches.ListScoresByTeam(ctx, tx, teamID); err != nil {
			return fmt.Errorf("failed to load scores: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	summary := BuildTeamSummary(*team, registrations, matches, scores)
	return &summary, nil
}

func (s *StandingsService) TopTeamsByAverageScore(ctx context.Context, limit int) ([]esports.TopTeam, error) {
	var (
		teams   []esports.Team
		matches []esports.Match
		scores  []esports.Score
	)
	err := s.read(ctx, func(tx *sqlx.Tx) error {
		var err error
		if teams, err = s.teams.ListTeams(ctx, tx); err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		if matches, err = s.matches.ListAllMatches(ctx, tx); err != nil {
			return fmt.Errorf("failed to load matches: %w", err)
		}
		if scores, err = s.matches.ListAllScores(ctx, tx); err != nil {
			return fmt.Errorf("failed to load scores: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return TopTeamsByAverageScore(teams, matches, scores, limit), nil
}

func (s *StandingsService) ListTeamSummaries(ctx context.Context) ([]esports.TeamSummary, error) {
	var (
		teams         []esports.Team
		registrations []esports.Registration
		matches       []esports.Match
		scores        []esports.Score
	)
	err := s.read(ctx, func(tx *sqlx.Tx) error {
		var err error
		if teams, err = s.teams.ListTeams(ctx, tx); err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		if registrations, err = s.tournaments.ListRegistrations(ctx, tx); err != nil {
			return fmt.Errorf("failed to load registrations: %w", err)
		}
		if matches, err = s.matches.ListAllMatches(ctx, tx); err != nil {
			return fmt.Errorf("failed to load matches: %w", err)
		}
		if scores, err = s.matches.ListAllScores(ctx, tx); err != nil {
			return fmt.Errorf("failed to load scores: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return BuildTeamSummaries(teams, registrations, matches, scores), nil
}

// TeamDetails gathers the team page: captain, roster, all-time summary and
// the team's record in every tournament it registered for.
func (s *StandingsService) TeamDetails(ctx context.Context, teamID uuid.UUID) (*esports.TeamDetails, error) {
	var (
		details       esports.TeamDetails
		registrations []esports.Registration
		tournaments   []esports.TournamentListing
		matches       []esports.Match
		scores        []esports.Score
	)
	err := s.read(ctx, func(tx *sqlx.Tx) error {
		team, err := s.teams.GetTeam(ctx, tx, teamID)
		if err != nil {
			return err
		}
		details.Team = *team

		captain, err := s.users.GetUser(ctx, tx, team.CaptainID)
		if err != nil {
			return fmt.Errorf("failed to load captain: %w", err)
		}
		details.CaptainName = captain.Name

		if details.Roster, err = s.teams.ListRoster(ctx, tx, teamID); err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}
		if registrations, err = s.tournaments.ListRegistrationsByTeam(ctx, tx, teamID); err != nil {
			return fmt.Errorf("failed to load registrations: %w", err)
		}
		if tournaments, err = s.tournaments.ListTournaments(ctx, tx, store.TournamentFilter{TeamID: &teamID}); err != nil {
			return fmt.Errorf("failed to load tournaments: %w", err)
		}
		if matches, err = s.matches.ListMatchesByTeam(ctx, tx, teamID); err != nil {
			return fmt.Errorf("failed to load matches: %w", err)
		}
		if scores, err = s.matches.ListScoresByTeam(ctx, tx, teamID); err != nil {
			return fmt.Errorf("failed to load scores: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	details.Summary = BuildTeamSummary(details.Team, registrations, matches, scores)
	details.Tournaments = BuildTeamTournamentRecords(teamID, tournaments, matches)
	return &details, nil
}

// Overview lists the next upcoming tournaments, the ongoing ones and the
// teams with the most wins. A limit of zero or less falls back to five.
func (s *StandingsService) Overview(ctx context.Context, limit int) (*esports.Overview, error) {
	if limit <= 0 {
		limit = defaultTopTeamsLimit
	}
	var (
		overview      esports.Overview
		teams         []esports.Team
		registrations []esports.Registration
		matches       []esports.Match
		scores        []esports.Score
	)
	err := s.read(ctx, func(tx *sqlx.Tx) error {
		var err error
		if overview.Upcoming, err = s.tournaments.ListTournaments(ctx, tx, store.TournamentFilter{Status: esports.TournamentUpcoming, Limit: limit}); err != nil {
			return fmt.Errorf("failed to load upcoming tournaments: %w", err)
		}
		if overview.Ongoing, err = s.tournaments.ListTournaments(ctx, tx, store.TournamentFilter{Status: esports.TournamentOngoing}); err != nil {
			return fmt.Errorf("failed to load ongoing tournaments: %w", err)
		}
		if teams, err = s.teams.ListTeams(ctx, tx); err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		if registrations, err = s.tournaments.ListRegistrations(ctx, tx); err != nil {
			return fmt.Errorf("failed to load registrations: %w", err)
		}
		if matches, err = s.matches.ListAllMatches(ctx, tx); err != nil {
			return fmt.Errorf("failed to load matches: %w", err)
		}
		if scores, err = s.matches.ListAllScores(ctx, tx); err != nil {
			return fmt.Errorf("failed to load scores: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	overview.TopTeams = BuildTeamSummaries(teams, registrations, matches, scores)
	if len(overview.TopTeams) > limit {
		overview.TopTeams = overview.TopTeams[:limit]
	}
	return &overview, nil
}
