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

type UserService struct {
	db    *sqlx.DB
	store *store.UserStore
}

func NewUserService(db *sqlx.DB, store *store.UserStore) *UserService {
	return &UserService{db: db, store: store}
}

// CreateUser registers a user. An empty role defaults to player.
func (s *UserService) CreateUser(ctx context.Context, name, email string, role esports.UserRole) (*esports.User, error) {
	if role == "" {
		role = esports.RolePlayer
	}

	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "cannot be blank"
	}
	if strings.TrimSpace(email) == "" {
		fields["email"] = "cannot be blank"
	}
	if !role.Valid() {
		fields["role"] = "must be admin, player or organizer"
	}
	if len(fields) > 0 {
		return nil, esports.NewValidationError(fields)
	}

	user := &esports.User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*esports.User, error) {
	return s.store.GetUser(ctx, nil, id)
}
