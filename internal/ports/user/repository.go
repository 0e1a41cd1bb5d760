package user

import (
	"context"

	"blogify/internal/core/user"

	"github.com/gofrs/uuid"
)

// UserRepository persists accounts
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*user.User, error)
}

type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expiresAt"`
	User      *UserDTO `json:"user"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SummaryDTO is the public view of a user embedded in posts and comments.
type SummaryDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func NewUserDTO(u *user.User) *UserDTO {
	return &UserDTO{ID: u.ID.String(), Username: u.Username, Email: u.Email}
}

// NewSummaryDTO takes the foreign key separately so an unloaded association
// still yields the right id.
func NewSummaryDTO(id uuid.UUID, u user.User) *SummaryDTO {
	return &SummaryDTO{ID: id.String(), Username: u.Username}
}
