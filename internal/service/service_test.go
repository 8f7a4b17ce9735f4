package service

import (
	"context"
	"testing"
	"time"

	"github.com/AdamBeresnev/esports-tracker/internal/config"
	"github.com/AdamBeresnev/esports-tracker/internal/db"
	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/AdamBeresnev/esports-tracker/internal/middleware"
	"github.com/AdamBeresnev/esports-tracker/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

const memoryDSN = "file::memory:?_foreign_keys=on"

// setupTestDB opens a SQLite database at dsn and applies migrations
func setupTestDB(t *testing.T, dsn string) *sqlx.DB {
	t.Helper()

	database, err := db.Open(config.DriverSQLite, dsn)
	require.NoError(t, err, "Failed to connect to test DB")
	if dsn == memoryDSN {
		// Every connection to :memory: is a separate database
		database.SetMaxOpenConns(1)
	}

	require.NoError(t, db.RunMigrations(database), "Failed to apply migrations")
	t.Cleanup(func() { database.Close() })
	return database
}

type services struct {
	db            *sqlx.DB
	users         *UserService
	teams         *TeamService
	tournaments   *TournamentService
	registrations *RegistrationService
	matches       *MatchService
	standings     *StandingsService
}

func newServices(t *testing.T) *services {
	t.Helper()
	return newServicesOn(t, setupTestDB(t, memoryDSN))
}

func newServicesOn(t *testing.T, database *sqlx.DB) *services {
	t.Helper()
	userStore := store.NewUserStore(database)
	teamStore := store.NewTeamStore(database)
	tournamentStore := store.NewTournamentStore(database)
	matchStore := store.NewMatchStore(database)
	guard := NewGuard(tournamentStore)

	return &services{
		db:            database,
		users:         NewUserService(database, userStore),
		teams:         NewTeamService(database, teamStore),
		tournaments:   NewTournamentService(database, tournamentStore),
		registrations: NewRegistrationService(database, tournamentStore, guard),
		matches:       NewMatchService(database, matchStore, guard),
		standings:     NewStandingsService(database, userStore, teamStore, tournamentStore, matchStore),
	}
}

// actingAs returns a context carrying a freshly created user.
func (s *services) actingAs(t *testing.T, name string) context.Context {
	t.Helper()
	user, err := s.users.CreateUser(context.Background(), name, name+"@example.com", esports.RolePlayer)
	require.NoError(t, err)
	return middleware.WithUser(context.Background(), user)
}

func (s *services) createTournament(t *testing.T, name string) *esports.Tournament {
	t.Helper()
	ctx := context.Background()

	game, err := s.tournaments.CreateGame(ctx, "Game for "+name, "FPS")
	require.NoError(t, err)

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	tournament, err := s.tournaments.CreateTournament(ctx, CreateTournamentInput{
		Name:      name,
		GameID:    game.ID,
		StartDate: start,
		EndDate:   start.Add(72 * time.Hour),
		PrizePool: 5000,
	})
	require.NoError(t, err)
	return tournament
}

func (s *services) createTeam(t *testing.T, name string) *esports.Team {
	t.Helper()
	team, err := s.teams.CreateTeam(s.actingAs(t, "captain-of-"+name), name, "")
	require.NoError(t, err)
	return team
}

// confirm registers the team and confirms the registration.
func (s *services) confirm(t *testing.T, team *esports.Team, tournament *esports.Tournament) {
	t.Helper()
	ctx := context.Background()
	registrationID, err := s.registrations.RegisterTeam(ctx, team.ID, tournament.ID)
	require.NoError(t, err)
	require.NoError(t, s.registrations.SetRegistrationStatus(ctx, registrationID, esports.RegistrationConfirmed))
}

func (s *services) count(t *testing.T, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.Get(&n, query, args...))
	return n
}
