package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTeamTwice(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	tournament := s.createTournament(t, "Register Cup")
	team := s.createTeam(t, "Alpha")

	registrationID, err := s.registrations.RegisterTeam(ctx, team.ID, tournament.ID)
	require.NoError(t, err)

	_, err = s.registrations.RegisterTeam(ctx, team.ID, tournament.ID)
	assert.ErrorIs(t, err, esports.ErrDuplicateRegistration)

	assert.Equal(t, 1, s.count(t, "SELECT COUNT(*) FROM registrations WHERE team_id = ? AND tournament_id = ?", team.ID, tournament.ID))

	registration, err := s.registrations.GetRegistration(ctx, registrationID)
	require.NoError(t, err)
	assert.Equal(t, esports.RegistrationPending, registration.Status)
}

func TestRegisterTeamConcurrently(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "reg.db") + "?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
	s := newServicesOn(t, setupTestDB(t, dsn))
	ctx := context.Background()
	tournament := s.createTournament(t, "Race Cup")
	team := s.createTeam(t, "Alpha")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.registrations.RegisterTeam(ctx, team.ID, tournament.ID)
		}()
	}
	wg.Wait()

	var succeeded, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, esports.ErrDuplicateRegistration):
			duplicates++
		default:
			t.Fatalf("unexpected registration error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, duplicates)
	assert.Equal(t, 1, s.count(t, "SELECT COUNT(*) FROM registrations WHERE team_id = ? AND tournament_id = ?", team.ID, tournament.ID))
}

func TestRegisterTeamUnknownRefs(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	tournament := s.createTournament(t, "Ghost Cup")
	team := s.createTeam(t, "Alpha")

	_, err := s.registrations.RegisterTeam(ctx, uuid.New(), tournament.ID)
	assert.ErrorIs(t, err, esports.ErrNotFound)

	_, err = s.registrations.RegisterTeam(ctx, team.ID, uuid.New())
	assert.ErrorIs(t, err, esports.ErrNotFound)
}

func TestSetRegistrationStatus(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	tournament := s.createTournament(t, "Status Cup")
	team := s.createTeam(t, "Alpha")

	registrationID, err := s.registrations.RegisterTeam(ctx, team.ID, tournament.ID)
	require.NoError(t, err)

	err = s.registrations.SetRegistrationStatus(ctx, registrationID, "approved")
	assert.ErrorIs(t, err, esports.ErrValidation)

	require.NoError(t, s.registrations.SetRegistrationStatus(ctx, registrationID, esports.RegistrationRejected))
	registration, err := s.registrations.GetRegistration(ctx, registrationID)
	require.NoError(t, err)
	assert.Equal(t, esports.RegistrationRejected, registration.Status)

	err = s.registrations.SetRegistrationStatus(ctx, uuid.New(), esports.RegistrationConfirmed)
	assert.ErrorIs(t, err, esports.ErrNotFound)
}
