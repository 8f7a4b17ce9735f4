package store

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TournamentFilter struct {
	Status esports.TournamentStatus
	// Only tournaments this team registered for
	TeamID *uuid.UUID
	Limit  int
}

type TournamentStore struct {
	db *sqlx.DB
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

func (s *TournamentStore) CreateGame(ctx context.Context, exec Executor, game *esports.Game) error {
	_, err := sqlx.NamedExecContext(ctx, pick(s.db, exec), `INSERT INTO games (id, title, genre)
		VALUES (:id, :title, :genre)`, game)
	if err != nil {
		if isUniqueViolation(err) {
			return esports.ErrGameTitleTaken
		}
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

func (s *TournamentStore) ListGames(ctx context.Context, exec Executor) ([]esports.Game, error) {
	var games []esports.Game
	err := sqlx.SelectContext(ctx, pick(s.db, exec), &games, "SELECT * FROM games ORDER BY title ASC")
	return games, err
}

func (s *TournamentStore) CreateTournament(ctx context.Context, exec Executor, tournament *esports.Tournament) error {
	_, err := sqlx.NamedExecContext(ctx, pick(s.db, exec), `INSERT INTO tournaments (id, name, game_id, start_date, end_date, prize_pool, status, created_at)
		VALUES (:id, :name, :game_id, :start_date, :end_date, :prize_pool, :status, :created_at)`, tournament)
	if err != nil {
		if isForeignKeyViolation(err) {
			return esports.NewValidationError(map[string]string{"game_id": "unknown game"})
		}
		if isCheckViolation(err) {
			return esports.NewValidationError(map[string]string{"tournament": "violates a schedule or prize pool constraint"})
		}
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (s *TournamentStore) GetTournament(ctx context.Context, exec Executor, id uuid.UUID) (*esports.Tournament, error) {
	e := pick(s.db, exec)
	var tournament esports.Tournament
	if err := sqlx.GetContext(ctx, e, &tournament, e.Rebind("SELECT * FROM tournaments WHERE id = ?"), id); err != nil {
		return nil, notFound(err)
	}
	return &tournament, nil
}

// ListTournaments returns tournaments with their game title and registered
// team count, earliest start first. Empty filter fields match everything.
func (s *TournamentStore) ListTournaments(ctx context.Context, exec Executor, filter TournamentFilter) ([]esports.TournamentListing, error) {
	e := pick(s.db, exec)

	q := sq.Select("t.*", "g.title AS game_title", "COUNT(r.id) AS team_count").
		From("tournaments t").
		Join("games g ON g.id = t.game_id").
		LeftJoin("registrations r ON r.tournament_id = t.id").
		GroupBy("t.id", "g.id").
		OrderBy("t.start_date ASC", "t.name ASC")

	if filter.Status != "" {
		q = q.Where(sq.Eq{"t.status": string(filter.Status)})
	}
	if filter.TeamID != nil {
		q = q.Where("t.id IN (SELECT tournament_id FROM registrations WHERE team_id = ?)", filter.TeamID.String())
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tournament query: %w", err)
	}

	var tournaments []esports.TournamentListing
	if err := sqlx.SelectContext(ctx, e, &tournaments, e.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *TournamentStore) UpdateTournamentStatus(ctx context.Context, exec Executor, id uuid.UUID, status esports.TournamentStatus) error {
	e := pick(s.db, exec)
	result, err := e.ExecContext(ctx, e.Rebind("UPDATE tournaments SET status = ? WHERE id = ?"), status, id)
	if err != nil {
		return fmt.Errorf("failed to update tournament status: %w", err)
	}
	return checkAffectedRows(result, esports.ErrNotFound)
}

func (s *TournamentStore) CreateRegistration(ctx context.Context, exec Executor, registration *esports.Registration) error {
	_, err := sqlx.NamedExecContext(ctx, pick(s.db, exec), `INSERT INTO registrations (id, team_id, tournament_id, status, registered_at)
		VALUES (:id, :team_id, :tournament_id, :status, :registered_at)`, registration)
	if err != nil {
		if isUniqueViolation(err) {
			return esports.ErrDuplicateRegistration
		}
		if isForeignKeyViolation(err) {
			return esports.ErrNotFound
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (s *TournamentStore) RegistrationExists(ctx context.Context, exec Executor, teamID, tournamentID uuid.UUID) (bool, error) {
	e := pick(s.db, exec)
	var count int
	err := sqlx.GetContext(ctx, e, &count, e.Rebind("SELECT COUNT(*) FROM registrations WHERE team_id = ? AND tournament_id = ?"), teamID, tournamentID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *TournamentStore) GetRegistration(ctx context.Context, exec Executor, id uuid.UUID) (*esports.Registration, error) {
	e := pick(s.db, exec)
	var registration esports.Registration
	if err := sqlx.GetContext(ctx, e, &registration, e.Rebind("SELECT * FROM registrations WHERE id = ?"), id); err != nil {
		return nil, notFound(err)
	}
	return &registration, nil
}

func (s *TournamentStore) UpdateRegistrationStatus(ctx context.Context, exec Executor, id uuid.UUID, status esports.RegistrationStatus) error {
	e := pick(s.db, exec)
	result, err := e.ExecContext(ctx, e.Rebind("UPDATE registrations SET status = ? WHERE id = ?"), status, id)
	if err != nil {
		return fmt.Errorf("failed to update registration status: %w", err)
	}
	return checkAffectedRows(result, esports.ErrNotFound)
}

func (s *TournamentStore) ListRegistrationsByTeam(ctx context.Context, exec Executor, teamID uuid.UUID) ([]esports.Registration, error) {
	e := pick(s.db, exec)
	var registrations []esports.Registration
	err := sqlx.SelectContext(ctx, e, &registrations, e.Rebind("SELECT * FROM registrations WHERE team_id = ? ORDER BY registered_at ASC"), teamID)
	return registrations, err
}

func (s *TournamentStore) ListRegistrations(ctx context.Context, exec Executor) ([]esports.Registration, error) {
	var registrations []esports.Registration
	err := sqlx.SelectContext(ctx, pick(s.db, exec), &registrations, "SELECT * FROM registrations ORDER BY registered_at ASC")
	return registrations, err
}
