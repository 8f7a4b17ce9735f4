package esports

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RolePlayer    UserRole = "player"
	RoleOrganizer UserRole = "organizer"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RolePlayer, RoleOrganizer:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Role      UserRole  `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
