package store

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type MatchStore struct {
	db *sqlx.DB
}

func NewMatchStore(db *sqlx.DB) *MatchStore {
	return &MatchStore{db: db}
}

type MatchFilter struct {
	TournamentID *uuid.UUID
	TeamID       *uuid.UUID
	Status       esports.MatchStatus
	Limit        int
}

func (s *MatchStore) CreateMatch(ctx context.Context, exec Executor, match *esports.Match) error {
	_, err := sqlx.NamedExecContext(ctx, pick(s.db, exec), `INSERT INTO matches (id, tournament_id, team_a_id, team_b_id, winner_id, match_time, round_number, status, created_at)
		VALUES (:id, :tournament_id, :team_a_id, :team_b_id, :winner_id, :match_time, :round_number, :status, :created_at)`, match)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("insert match: %w", esports.ErrMatchExists)
		case isForeignKeyViolation(err):
			return fmt.Errorf("insert match: %w", esports.ErrNotFound)
		case isCheckViolation(err):
			return fmt.Errorf("insert match: %w", esports.ErrInvalidMatch)
		}
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (s *MatchStore) CreateScores(ctx context.Context, exec Executor, scores []esports.Score) error {
	if len(scores) == 0 {
		return nil
	}
	_, err := sqlx.NamedExecContext(ctx, pick(s.db, exec), `INSERT INTO scores (id, match_id, team_id, score)
		VALUES (:id, :match_id, :team_id, :score)`, scores)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("insert scores: %w", esports.ErrMatchExists)
		case isCheckViolation(err):
			return fmt.Errorf("insert scores: %w", esports.ErrInvalidScore)
		}
		return fmt.Errorf("insert scores: %w", err)
	}
	return nil
}

func (s *MatchStore) GetMatch(ctx context.Context, exec Executor, id uuid.UUID) (*esports.Match, error) {
	e := pick(s.db, exec)
	var match esports.Match
	if err := sqlx.GetContext(ctx, e, &match, e.Rebind("SELECT * FROM matches WHERE id = ?"), id); err != nil {
		return nil, notFound(err)
	}
	return &match, nil
}

// CompleteMatch moves a scheduled match to completed with the given winner.
func (s *MatchStore) CompleteMatch(ctx context.Context, exec Executor, id uuid.UUID, winnerID *uuid.UUID) error {
	e := pick(s.db, exec)
	result, err := e.ExecContext(ctx, e.Rebind(`UPDATE matches SET status = ?, winner_id = ?
		WHERE id = ? AND status = ?`), esports.MatchCompleted, winnerID, id, esports.MatchScheduled)
	if err != nil {
		return fmt.Errorf("complete match: %w", err)
	}
	return checkAffectedRows(result, esports.ErrMatchNotScheduled)
}

func (s *MatchStore) CancelMatch(ctx context.Context, exec Executor, id uuid.UUID) error {
	e := pick(s.db, exec)
	result, err := e.ExecContext(ctx, e.Rebind("UPDATE matches SET status = ? WHERE id = ? AND status = ?"),
		esports.MatchCancelled, id, esports.MatchScheduled)
	if err != nil {
		return fmt.Errorf("cancel match: %w", err)
	}
	return checkAffectedRows(result, esports.ErrMatchNotScheduled)
}

// ListMatches returns matches with team names and both scores, newest first.
func (s *MatchStore) ListMatches(ctx context.Context, exec Executor, filter MatchFilter) ([]esports.MatchResult, error) {
	e := pick(s.db, exec)

	q := sq.Select("m.*", "ta.name AS team_a_name", "tb.name AS team_b_name", "sa.score AS score_a", "sb.score AS score_b").
		From("matches m").
		Join("teams ta ON ta.id = m.team_a_id").
		Join("teams tb ON tb.id = m.team_b_id").
		LeftJoin("scores sa ON sa.match_id = m.id AND sa.team_id = m.team_a_id").
		LeftJoin("scores sb ON sb.match_id = m.id AND sb.team_id = m.team_b_id").
		OrderBy("m.match_time DESC")

	if filter.TournamentID != nil {
		q = q.Where(sq.Eq{"m.tournament_id": filter.TournamentID.String()})
	}
	if filter.TeamID != nil {
		teamID := filter.TeamID.String()
		q = q.Where(sq.Or{sq.Eq{"m.team_a_id": teamID}, sq.Eq{"m.team_b_id": teamID}})
	}
	if filter.Status != "" {
		q = q.Where(sq.Eq{"m.status": string(filter.Status)})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build match query: %w", err)
	}

	var matches []esports.MatchResult
	if err := sqlx.SelectContext(ctx, e, &matches, e.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

func (s *MatchStore) ListMatchesByTournament(ctx context.Context, exec Executor, tournamentID uuid.UUID) ([]esports.Match, error) {
	e := pick(s.db, exec)
	var matches []esports.Match
	err := sqlx.SelectContext(ctx, e, &matches, e.Rebind("SELECT * FROM matches WHERE tournament_id = ? ORDER BY match_time ASC"), tournamentID)
	return matches, err
}

func (s *MatchStore) ListMatchesByTeam(ctx context.Context, exec Executor, teamID uuid.UUID) ([]esports.Match, error) {
	e := pick(s.db, exec)
	var matches []esports.Match
	err := sqlx.SelectContext(ctx, e, &matches, e.Rebind("SELECT * FROM matches WHERE team_a_id = ? OR team_b_id = ? ORDER BY match_time ASC"), teamID, teamID)
	return matches, err
}

func (s *MatchStore) ListAllMatches(ctx context.Context, exec Executor) ([]esports.Match, error) {
	var matches []esports.Match
	err := sqlx.SelectContext(ctx, pick(s.db, exec), &matches, "SELECT * FROM matches ORDER BY match_time ASC")
	return matches, err
}

func (s *MatchStore) ListScoresByMatch(ctx context.Context, exec Executor, matchID uuid.UUID) ([]esports.Score, error) {
	e := pick(s.db, exec)
	var scores []esports.Score
	err := sqlx.SelectContext(ctx, e, &scores, e.Rebind("SELECT * FROM scores WHERE match_id = ?"), matchID)
	return scores, err
}

func (s *MatchStore) ListScoresByTournament(ctx context.Context, exec Executor, tournamentID uuid.UUID) ([]esports.Score, error) {
	e := pick(s.db, exec)
	var scores []esports.Score
	err := sqlx.SelectContext(ctx, e, &scores, e.Rebind(`
		SELECT s.* FROM scores s
		INNER JOIN matches m ON m.id = s.match_id
		WHERE m.tournament_id = ?`), tournamentID)
	return scores, err
}

func (s *MatchStore) ListScoresByTeam(ctx context.Context, exec Executor, teamID uuid.UUID) ([]esports.Score, error) {
	e := pick(s.db, exec)
	var scores []esports.Score
	err := sqlx.SelectContext(ctx, e, &scores, e.Rebind("SELECT * FROM scores WHERE team_id = ?"), teamID)
	return scores, err
}

func (s *MatchStore) ListAllScores(ctx context.Context, exec Executor) ([]esports.Score, error) {
	var scores []esports.Score
	err := sqlx.SelectContext(ctx, pick(s.db, exec), &scores, "SELECT * FROM scores")
	return scores, err
}
