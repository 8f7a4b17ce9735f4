package service

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/AdamBeresnev/esports-tracker/internal/store"
	"github.com/google/uuid"
)

// Guard checks writes before they reach the store. The schema enforces the
// same rules as a backstop.
type Guard struct {
	tournaments *store.TournamentStore
}

func NewGuard(tournaments *store.TournamentStore) *Guard {
	return &Guard{tournaments: tournaments}
}

// ValidateRegistration must run on the transaction that performs the insert.
func (g *Guard) ValidateRegistration(ctx context.Context, exec store.Executor, teamID, tournamentID uuid.UUID) error {
	exists, err := g.tournaments.RegistrationExists(ctx, exec, teamID, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to check registration: %w", err)
	}
	if exists {
		return esports.ErrDuplicateRegistration
	}
	return nil
}

func (g *Guard) ValidateMatchCreate(teamA, teamB uuid.UUID) error {
	if teamA == teamB {
		return esports.ErrInvalidMatch
	}
	return nil
}

func (g *Guard) ValidateMatchWinner(teamA, teamB uuid.UUID, winner *uuid.UUID) error {
	if winner == nil {
		return nil
	}
	if *winner != teamA && *winner != teamB {
		return esports.ErrInvalidWinner
	}
	return nil
}
