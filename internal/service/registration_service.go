package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/AdamBeresnev/esports-tracker/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type RegistrationService struct {
	db    *sqlx.DB
	store *store.TournamentStore
	guard *Guard
}

func NewRegistrationService(db *sqlx.DB, store *store.TournamentStore, guard *Guard) *RegistrationService {
	return &RegistrationService{db: db, store: store, guard: guard}
}

// RegisterTeam enters a team into a tournament as a pending registration.
// The duplicate check and the insert share one transaction, and the unique
// constraint still rejects a racing insert that slips past the check.
func (s *RegistrationService) RegisterTeam(ctx context.Context, teamID, tournamentID uuid.UUID) (uuid.UUID, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if err := s.guard.ValidateRegistration(ctx, tx, teamID, tournamentID); err != nil {
		return uuid.Nil, err
	}

	registration := &esports.Registration{
		ID:           uuid.New(),
		TeamID:       teamID,
		TournamentID: tournamentID,
		Status:       esports.RegistrationPending,
		RegisteredAt: time.Now().UTC(),
	}
	if err := s.store.CreateRegistration(ctx, tx, registration); err != nil {
		return uuid.Nil, err
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit registration: %w", err)
	}
	return registration.ID, nil
}

func (s *RegistrationService) SetRegistrationStatus(ctx context.Context, registrationID uuid.UUID, status esports.RegistrationStatus) error {
	if !status.Valid() {
		return esports.NewValidationError(map[string]string{"status": "must be pending, confirmed or rejected"})
	}
	return s.store.UpdateRegistrationStatus(ctx, nil, registrationID, status)
}

func (s *RegistrationService) GetRegistration(ctx context.Context, registrationID uuid.UUID) (*esports.Registration, error) {
	return s.store.GetRegistration(ctx, nil, registrationID)
}
