package service

import (
	"context"
	"testing"
	"time"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	user, err := s.users.CreateUser(ctx, "Ana", " Ana@Example.com ", "")
	require.NoError(t, err)
	assert.Equal(t, esports.RolePlayer, user.Role)
	assert.Equal(t, "ana@example.com", user.Email)

	_, err = s.users.CreateUser(ctx, "Ana Again", "ana@example.com", esports.RoleOrganizer)
	assert.ErrorIs(t, err, esports.ErrEmailTaken)

	_, err = s.users.CreateUser(ctx, "", "x@example.com", "referee")
	var validationErr *esports.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "name")
	assert.Contains(t, validationErr.Fields, "role")
}

func TestCreateTeam(t *testing.T) {
	s := newServices(t)

	_, err := s.teams.CreateTeam(context.Background(), "Nobody's Team", "")
	assert.ErrorIs(t, err, esports.ErrValidation)

	ctx := s.actingAs(t, "cap")
	team, err := s.teams.CreateTeam(ctx, "Alpha", "cap_tag")
	require.NoError(t, err)

	roster, err := s.teams.ListRoster(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, team.CaptainID, roster[0].UserID)
	assert.Equal(t, "cap", roster[0].Name)
	assert.Equal(t, "cap@example.com", roster[0].Email)

	_, err = s.teams.ListRoster(ctx, uuid.New())
	assert.ErrorIs(t, err, esports.ErrNotFound)

	_, err = s.teams.CreateTeam(ctx, "Alpha", "cap_tag")
	assert.ErrorIs(t, err, esports.ErrTeamNameTaken)
	assert.Equal(t, 1, s.count(t, "SELECT COUNT(*) FROM players"))
}

func TestAddPlayer(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	team := s.createTeam(t, "Alpha")
	player, err := s.users.CreateUser(ctx, "Rookie", "rookie@example.com", esports.RolePlayer)
	require.NoError(t, err)

	_, err = s.teams.AddPlayer(ctx, team.ID, player.ID, "  ")
	assert.ErrorIs(t, err, esports.ErrValidation)

	_, err = s.teams.AddPlayer(ctx, team.ID, player.ID, "rook")
	require.NoError(t, err)

	_, err = s.teams.AddPlayer(ctx, team.ID, player.ID, "rook2")
	assert.ErrorIs(t, err, esports.ErrAlreadyOnRoster)

	_, err = s.teams.AddPlayer(ctx, uuid.New(), player.ID, "rook")
	assert.ErrorIs(t, err, esports.ErrNotFound)
}

func TestTournamentLifecycle(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	game, err := s.tournaments.CreateGame(ctx, "Valorant", "Tactical FPS")
	require.NoError(t, err)
	_, err = s.tournaments.CreateGame(ctx, "Valorant", "")
	assert.ErrorIs(t, err, esports.ErrGameTitleTaken)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err = s.tournaments.CreateTournament(ctx, CreateTournamentInput{Name: "Backwards", GameID: game.ID, StartDate: start, EndDate: start.Add(-time.Hour), PrizePool: -1})
	var validationErr *esports.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "end_date")
	assert.Contains(t, validationErr.Fields, "prize_pool")

	tournament, err := s.tournaments.CreateTournament(ctx, CreateTournamentInput{Name: "Champions", GameID: game.ID, StartDate: start, EndDate: start.Add(48 * time.Hour), PrizePool: 10000})
	require.NoError(t, err)
	assert.Equal(t, esports.TournamentUpcoming, tournament.Status)

	require.NoError(t, s.tournaments.SetTournamentStatus(ctx, tournament.ID, esports.TournamentOngoing))
	assert.ErrorIs(t, s.tournaments.SetTournamentStatus(ctx, tournament.ID, "paused"), esports.ErrValidation)

	ongoing, err := s.tournaments.ListTournaments(ctx, esports.TournamentOngoing)
	require.NoError(t, err)
	require.Len(t, ongoing, 1)
	assert.Equal(t, "Champions", ongoing[0].Name)
	assert.Equal(t, "Valorant", ongoing[0].GameTitle)
	assert.Zero(t, ongoing[0].TeamCount)

	upcoming, err := s.tournaments.ListTournaments(ctx, esports.TournamentUpcoming)
	require.NoError(t, err)
	assert.Empty(t, upcoming)

	_, err = s.tournaments.ListTournaments(ctx, "paused")
	assert.ErrorIs(t, err, esports.ErrValidation)
}
