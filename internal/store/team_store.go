package store

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TeamStore struct {
	db *sqlx.DB
}

func NewTeamStore(db *sqlx.DB) *TeamStore {
	return &TeamStore{db: db}
}

func (s *TeamStore) CreateTeam(ctx context.Context, exec Executor, team *esports.Team) error {
	_, err := sqlx.NamedExecContext(ctx, pick(s.db, exec), `INSERT INTO teams (id, name, captain_id, created_at)
		VALUES (:id, :name, :captain_id, :created_at)`, team)
	if err != nil {
		if isUniqueViolation(err) {
			return esports.ErrTeamNameTaken
		}
		if isForeignKeyViolation(err) {
			return esports.NewValidationError(map[string]string{"captain_id": "unknown user"})
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (s *TeamStore) GetTeam(ctx context.Context, exec Executor, id uuid.UUID) (*esports.Team, error) {
	e := pick(s.db, exec)
	var team esports.Team
	if err := sqlx.GetContext(ctx, e, &team, e.Rebind("SELECT * FROM teams WHERE id = ?"), id); err != nil {
		return nil, notFound(err)
	}
	return &team, nil
}

func (s *TeamStore) ListTeams(ctx context.Context, exec Executor) ([]esports.Team, error) {
	var teams []esports.Team
	err := sqlx.SelectContext(ctx, pick(s.db, exec), &teams, "SELECT * FROM teams ORDER BY name ASC")
	return teams, err
}

// ListRegisteredTeams returns the teams holding a registration with the given
// status in a tournament.
func (s *TeamStore) ListRegisteredTeams(ctx context.Context, exec Executor, tournamentID uuid.UUID, status esports.RegistrationStatus) ([]esports.Team, error) {
	e := pick(s.db, exec)
	var teams []esports.Team
	err := sqlx.SelectContext(ctx, e, &teams, e.Rebind(`
		SELECT t.* FROM teams t
		INNER JOIN registrations r ON r.team_id = t.id
		WHERE r.tournament_id = ? AND r.status = ?
		ORDER BY t.name ASC`), tournamentID, status)
	return teams, err
}

func (s *TeamStore) AddPlayer(ctx context.Context, exec Executor, player *esports.Player) error {
	_, err := sqlx.NamedExecContext(ctx, pick(s.db, exec), `INSERT INTO players (id, user_id, team_id, game_tag, joined_at)
		VALUES (:id, :user_id, :team_id, :game_tag, :joined_at)`, player)
	if err != nil {
		if isUniqueViolation(err) {
			return esports.ErrAlreadyOnRoster
		}
		if isForeignKeyViolation(err) {
			return esports.ErrNotFound
		}
		return fmt.Errorf("failed to add player: %w", err)
	}
	return nil
}

// ListRoster returns the team's players joined to their user accounts, in
// the order they joined.
func (s *TeamStore) ListRoster(ctx context.Context, exec Executor, teamID uuid.UUID) ([]esports.RosterEntry, error) {
	e := pick(s.db, exec)
	var roster []esports.RosterEntry
	err := sqlx.SelectContext(ctx, e, &roster, e.Rebind(`
		SELECT p.id AS player_id, p.user_id, u.name, u.email, p.game_tag, p.joined_at
		FROM players p
		INNER JOIN users u ON u.id = p.user_id
		WHERE p.team_id = ?
		ORDER BY p.joined_at ASC, u.name ASC`), teamID)
	return roster, err
}
