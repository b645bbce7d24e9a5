package domain

import (
	"context"
	"time"
)

type User struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"` // identity provider subject
	Email      string    `json:"email"`
	Industry   *string   `json:"industry,omitempty"`
	Experience int       `json:"experience"`
	Skills     []string  `json:"skills"`
	Bio        string    `json:"bio"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsOnboarded reports whether the user has picked an industry.
func (u *User) IsOnboarded() bool {
	return u != nil && u.Industry != nil && *u.Industry != ""
}

// IndustryLabel returns the industry or an empty string when not onboarded.
func (u *User) IndustryLabel() string {
	if !u.IsOnboarded() {
		return ""
	}
	return *u.Industry
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByExternalID(ctx context.Context, externalID string) (*User, error)
}

type AuthUsecase interface {
	// EnsureUser returns the local user for externalID, creating it on first access.
	EnsureUser(ctx context.Context, externalID, email string) (*User, error)
	// CurrentUser resolves the caller identity stored in ctx to a local user.
	CurrentUser(ctx context.Context) (*User, error)
}
