package service

import (
	"context"
	"strings"
	"time"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/AdamBeresnev/esports-tracker/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TournamentService struct {
	db    *sqlx.DB
	store *store.TournamentStore
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore) *TournamentService {
	return &TournamentService{db: db, store: store}
}

type CreateTournamentInput struct {
	Name      string
	GameID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	PrizePool float64
}

func (s *TournamentService) CreateGame(ctx context.Context, title, genre string) (*esports.Game, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, esports.NewValidationError(map[string]string{"title": "cannot be blank"})
	}

	game := &esports.Game{
		ID:    uuid.New(),
		Title: title,
		Genre: strings.TrimSpace(genre),
	}
	if err := s.store.CreateGame(ctx, nil, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *TournamentService) ListGames(ctx context.Context) ([]esports.Game, error) {
	return s.store.ListGames(ctx, nil)
}

// CreateTournament opens a tournament in the upcoming state.
func (s *TournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*esports.Tournament, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "cannot be blank"
	}
	if input.EndDate.Before(input.StartDate) {
		fields["end_date"] = "must not be before start_date"
	}
	if input.PrizePool < 0 {
		fields["prize_pool"] = "must not be negative"
	}
	if len(fields) > 0 {
		return nil, esports.NewValidationError(fields)
	}

	tournament := &esports.Tournament{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(input.Name),
		GameID:    input.GameID,
		StartDate: input.StartDate.UTC(),
		EndDate:   input.EndDate.UTC(),
		PrizePool: input.PrizePool,
		Status:    esports.TournamentUpcoming,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateTournament(ctx, nil, tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, id uuid.UUID) (*esports.Tournament, error) {
	return s.store.GetTournament(ctx, nil, id)
}

// ListTournaments returns every tournament when status is empty, each with
// its game title and registered team count.
func (s *TournamentService) ListTournaments(ctx context.Context, status esports.TournamentStatus) ([]esports.TournamentListing, error) {
	if status != "" && !status.Valid() {
		return nil, esports.NewValidationError(map[string]string{"status": "must be upcoming, ongoing or completed"})
	}
	return s.store.ListTournaments(ctx, nil, store.TournamentFilter{Status: status})
}

func (s *TournamentService) SetTournamentStatus(ctx context.Context, id uuid.UUID, status esports.TournamentStatus) error {
	if !status.Valid() {
		return esports.NewValidationError(map[string]string{"status": "must be upcoming, ongoing or completed"})
	}
	return s.store.UpdateTournamentStatus(ctx, nil, id, status)
}
