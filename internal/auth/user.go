package auth

import (
	"context"
	"errors"
	"time"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

var (
	ErrEmailExists        = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID        string
	Username  string
	Email     string
	Hash      []byte
	Role      string
	CreatedAt time.Time
}

// PublicUser is the wire shape of a user. The password hash never leaves the store.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

type UserStore interface {
	Create(ctx context.Context, username, email, password, role string) (User, error)
	Verify(ctx context.Context, email, password string) (User, error)
	Get(ctx context.Context, id string) (User, bool, error)
	Ping(ctx context.Context) error
}
