package store

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type UserStore struct {
	db *sqlx.DB
}

const (
	getUserQuery    = "SELECT * FROM users WHERE id = ?"
	createUserQuery = `
		INSERT INTO users (id, name, email, role, created_at) VALUES
		(:id, :name, :email, :role, :created_at)
	`
)

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) CreateUser(ctx context.Context, exec Executor, user *esports.User) error {
	_, err := sqlx.NamedExecContext(ctx, pick(s.db, exec), createUserQuery, user)
	if err != nil {
		if isUniqueViolation(err) {
			return esports.ErrEmailTaken
		}
		if isCheckViolation(err) {
			return esports.NewValidationError(map[string]string{"role": "must be admin, player or organizer"})
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *UserStore) GetUser(ctx context.Context, exec Executor, id uuid.UUID) (*esports.User, error) {
	e := pick(s.db, exec)
	var user esports.User
	if err := sqlx.GetContext(ctx, e, &user, e.Rebind(getUserQuery), id); err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}
