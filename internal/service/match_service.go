package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/AdamBeresnev/esports-tracker/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type MatchService struct {
	db    *sqlx.DB
	store *store.MatchStore
	guard *Guard
}

func NewMatchService(db *sqlx.DB, store *store.MatchStore, guard *Guard) *MatchService {
	return &MatchService{db: db, store: store, guard: guard}
}

type RecordMatchInput struct {
	TournamentID uuid.UUID
	TeamAID      uuid.UUID
	TeamBID      uuid.UUID
	ScoreA       int
	ScoreB       int
	MatchTime    time.Time
	RoundNumber  int
}

type ScheduleMatchInput struct {
	TournamentID uuid.UUID
	TeamAID      uuid.UUID
	TeamBID      uuid.UUID
	MatchTime    time.Time
	RoundNumber  int
}

// RecordMatch stores a completed match and both of its scores as one unit.
// The winner is derived from the scores; equal scores record a draw.
func (s *MatchService) RecordMatch(ctx context.Context, input RecordMatchInput) (uuid.UUID, error) {
	if input.ScoreA < 0 || input.ScoreB < 0 {
		return uuid.Nil, esports.ErrInvalidScore
	}
	if err := s.guard.ValidateMatchCreate(input.TeamAID, input.TeamBID); err != nil {
		return uuid.Nil, err
	}

	now := time.Now().UTC()
	match := &esports.Match{
		ID:           uuid.New(),
		TournamentID: input.TournamentID,
		TeamAID:      input.TeamAID,
		TeamBID:      input.TeamBID,
		WinnerID:     esports.DecideWinner(input.TeamAID, input.TeamBID, input.ScoreA, input.ScoreB),
		MatchTime:    orNow(input.MatchTime, now),
		RoundNumber:  normalizeRound(input.RoundNumber),
		Status:       esports.MatchCompleted,
		CreatedAt:    now,
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", esports.ErrRecordingFailed, err)
	}
	defer tx.Rollback()

	if err := s.store.CreateMatch(ctx, tx, match); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", esports.ErrRecordingFailed, err)
	}
	if err := s.store.CreateScores(ctx, tx, matchScores(match, input.ScoreA, input.ScoreB)); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", esports.ErrRecordingFailed, err)
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", esports.ErrRecordingFailed, err)
	}

	slog.Info("match recorded", "match_id", match.ID, "tournament_id", match.TournamentID, "draw", match.WinnerID == nil)
	return match.ID, nil
}

// ScheduleMatch creates a match without scores. It does not count towards
// any standings until it is completed.
func (s *MatchService) ScheduleMatch(ctx context.Context, input ScheduleMatchInput) (uuid.UUID, error) {
	if err := s.guard.ValidateMatchCreate(input.TeamAID, input.TeamBID); err != nil {
		return uuid.Nil, err
	}

	now := time.Now().UTC()
	match := &esports.Match{
		ID:           uuid.New(),
		TournamentID: input.TournamentID,
		TeamAID:      input.TeamAID,
		TeamBID:      input.TeamBID,
		MatchTime:    orNow(input.MatchTime, now),
		RoundNumber:  normalizeRound(input.RoundNumber),
		Status:       esports.MatchScheduled,
		CreatedAt:    now,
	}
	if err := s.store.CreateMatch(ctx, nil, match); err != nil {
		return uuid.Nil, err
	}
	return match.ID, nil
}

func (s *MatchService) CompleteMatch(ctx context.Context, matchID uuid.UUID, scoreA, scoreB int) error {
	if scoreA < 0 || scoreB < 0 {
		return esports.ErrInvalidScore
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", esports.ErrRecordingFailed, err)
	}
	defer tx.Rollback()

	match, err := s.store.GetMatch(ctx, tx, matchID)
	if err != nil {
		return err
	}
	if match.Status != esports.MatchScheduled {
		return esports.ErrMatchNotScheduled
	}

	winnerID := esports.DecideWinner(match.TeamAID, match.TeamBID, scoreA, scoreB)
	if err := s.guard.ValidateMatchWinner(match.TeamAID, match.TeamBID, winnerID); err != nil {
		return err
	}

	if err := s.store.CompleteMatch(ctx, tx, match.ID, winnerID); err != nil {
		return err
	}
	if err := s.store.CreateScores(ctx, tx, matchScores(match, scoreA, scoreB)); err != nil {
		return fmt.Errorf("%w: %w", esports.ErrRecordingFailed, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", esports.ErrRecordingFailed, err)
	}
	return nil
}

func (s *MatchService) CancelMatch(ctx context.Context, matchID uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Unknown ids report not found rather than a status conflict
	if _, err := s.store.GetMatch(ctx, tx, matchID); err != nil {
		return err
	}
	if err := s.store.CancelMatch(ctx, tx, matchID); err != nil {
		return err
	}
	return tx.Commit()
}

// GetMatch returns the match with its recorded scores, read together.
func (s *MatchService) GetMatch(ctx context.Context, matchID uuid.UUID) (*esports.MatchDetails, error) {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin read: %w", err)
	}
	defer tx.Rollback()

	match, err := s.store.GetMatch(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}
	scores, err := s.store.ListScoresByMatch(ctx, tx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &esports.MatchDetails{Match: *match, Scores: scores}, nil
}

func (s *MatchService) ListMatches(ctx context.Context, filter store.MatchFilter) ([]esports.MatchResult, error) {
	return s.store.ListMatches(ctx, nil, filter)
}

func matchScores(match *esports.Match, scoreA, scoreB int) []esports.Score {
	return []esports.Score{
		{ID: uuid.New(), MatchID: match.ID, TeamID: match.TeamAID, Score: scoreA},
		{ID: uuid.New(), MatchID: match.ID, TeamID: match.TeamBID, Score: scoreB},
	}
}

func normalizeRound(round int) int {
	if round < 1 {
		return 1
	}
	return round
}

func orNow(t, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t.UTC()
}
