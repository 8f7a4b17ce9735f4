package store

import (
	"context"
	"testing"
	"time"

	"github.com/AdamBeresnev/esports-tracker/internal/config"
	"github.com/AdamBeresnev/esports-tracker/internal/db"
	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Open(config.DriverSQLite, "file::memory:?_foreign_keys=on")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	// Every connection to :memory: is a separate database
	database.SetMaxOpenConns(1)

	require.NoError(t, db.RunMigrations(database), "Failed to apply migrations")
	t.Cleanup(func() { database.Close() })
	return database
}

type fixture struct {
	captain    esports.User
	game       esports.Game
	tournament esports.Tournament
	teams      []esports.Team
}

func newFixture(t *testing.T, database *sqlx.DB, teamNames ...string) *fixture {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	f := &fixture{}
	f.captain = esports.User{ID: uuid.New(), Name: "Captain", Email: uuid.NewString() + "@example.com", Role: esports.RolePlayer, CreatedAt: now}
	require.NoError(t, NewUserStore(database).CreateUser(ctx, nil, &f.captain))

	tournaments := NewTournamentStore(database)
	f.game = esports.Game{ID: uuid.New(), Title: "Game " + uuid.NewString(), Genre: "FPS"}
	require.NoError(t, tournaments.CreateGame(ctx, nil, &f.game))

	f.tournament = esports.Tournament{
		ID:        uuid.New(),
		Name:      "Spring Cup",
		GameID:    f.game.ID,
		StartDate: now,
		EndDate:   now.Add(48 * time.Hour),
		PrizePool: 1000,
		Status:    esports.TournamentUpcoming,
		CreatedAt: now,
	}
	require.NoError(t, tournaments.CreateTournament(ctx, nil, &f.tournament))

	teams := NewTeamStore(database)
	for _, name := range teamNames {
		team := esports.Team{ID: uuid.New(), Name: name, CaptainID: f.captain.ID, CreatedAt: now}
		require.NoError(t, teams.CreateTeam(ctx, nil, &team))
		f.teams = append(f.teams, team)
	}
	return f
}
