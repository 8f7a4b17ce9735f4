package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/AdamBeresnev/esports-tracker/internal/middleware"
	"github.com/AdamBeresnev/esports-tracker/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TeamService struct {
	db    *sqlx.DB
	store *store.TeamStore
}

func NewTeamService(db *sqlx.DB, store *store.TeamStore) *TeamService {
	return &TeamService{db: db, store: store}
}

// CreateTeam makes the acting user the captain and puts them on the roster.
func (s *TeamService) CreateTeam(ctx context.Context, name, captainTag string) (*esports.Team, error) {
	captainID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, esports.NewValidationError(map[string]string{"captain_id": "an acting user is required"})
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, esports.NewValidationError(map[string]string{"name": "cannot be blank"})
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	team := &esports.Team{
		ID:        uuid.New(),
		Name:      name,
		CaptainID: captainID,
		CreatedAt: now,
	}
	if err := s.store.CreateTeam(ctx, tx, team); err != nil {
		return nil, err
	}

	if captainTag = strings.TrimSpace(captainTag); captainTag != "" {
		captain := &esports.Player{ID: uuid.New(), UserID: captainID, TeamID: team.ID, GameTag: captainTag, JoinedAt: now}
		if err := s.store.AddPlayer(ctx, tx, captain); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit team: %w", err)
	}
	return team, nil
}

func (s *TeamService) GetTeam(ctx context.Context, id uuid.UUID) (*esports.Team, error) {
	return s.store.GetTeam(ctx, nil, id)
}

func (s *TeamService) ListTeams(ctx context.Context) ([]esports.Team, error) {
	return s.store.ListTeams(ctx, nil)
}

func (s *TeamService) AddPlayer(ctx context.Context, teamID, userID uuid.UUID, gameTag string) (*esports.Player, error) {
	gameTag = strings.TrimSpace(gameTag)
	if gameTag == "" {
		return nil, esports.NewValidationError(map[string]string{"game_tag": "cannot be blank"})
	}

	player := &esports.Player{
		ID:       uuid.New(),
		UserID:   userID,
		TeamID:   teamID,
		GameTag:  gameTag,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.store.AddPlayer(ctx, nil, player); err != nil {
		return nil, err
	}
	return player, nil
}

// ListRoster returns the team's players with their names and emails. An
// unknown team is ErrNotFound rather than an empty roster.
func (s *TeamService) ListRoster(ctx context.Context, teamID uuid.UUID) ([]esports.RosterEntry, error) {
	if _, err := s.store.GetTeam(ctx, nil, teamID); err != nil {
		return nil, err
	}
	return s.store.ListRoster(ctx, nil, teamID)
}
