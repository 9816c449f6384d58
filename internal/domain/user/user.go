package user

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already in use")
)

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Public is the projection of a user that is safe to return to clients.
type Public struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) Public() Public {
	return Public{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUser is the insert shape; the store assigns id and timestamps.
type NewUser struct {
	Email        string
	Name         string
	PasswordHash string
	Role         string
}

// Patch carries only the fields an update actually changes. Nil means
// "leave as is".
type Patch struct {
	Name         *string
	Email        *string
	Role         *string
	PasswordHash *string
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Role == nil && p.PasswordHash == nil
}
