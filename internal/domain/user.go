package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"displayName"`
	Bio          string    `json:"bio"`
	CreatedAt    time.Time `json:"createdAt"`
	IsActive     bool      `json:"isActive"`
}

// UserSummary is the denormalized author view attached to feed items at read
// time.
type UserSummary struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
}

// Summary projects a user onto its presentation summary.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName}
}

// UserStore persists user accounts. Lookups only return active users.
type UserStore interface {
	// Insert stores a new user. Returns ErrUsernameTaken or ErrEmailTaken
	// when the respective unique index rejects the document.
	Insert(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// Update persists the mutable profile fields of an existing user.
	Update(ctx context.Context, user *User) error
	// Deactivate soft-deletes a user by clearing its isActive flag.
	Deactivate(ctx context.Context, id uuid.UUID) error
	// Summaries resolves a batch of user IDs to presentation summaries.
	// Unknown or inactive IDs are silently absent from the result.
	Summaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]UserSummary, error)
}
