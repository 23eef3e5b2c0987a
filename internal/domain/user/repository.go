package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Save(ctx context.Context, u *User) error
}

// PreferenceRepository defines persistence operations for user preferences.
type PreferenceRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Preferences, error)
	Save(ctx context.Context, p *Preferences) error
	// Update applies optimistic locking on the previous version.
	Update(ctx context.Context, p *Preferences) error
}
