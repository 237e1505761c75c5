package domain

import (
	"context"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	XP        int       `json:"xp"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSummary is the public view of another user
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	XP        int    `json:"xp"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, XP: u.XP}
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByIDs returns the users that exist, keyed by id
	GetByIDs(ctx context.Context, ids []string) (map[string]User, error)
	IncrementXP(ctx context.Context, id string, amount int) error
}

type UserUsecase interface {
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
