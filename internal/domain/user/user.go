package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
)

// User is a traveller known to the service. Accounts are provisioned here
// without credentials.
type User struct {
	id        uuid.UUID
	email     string
	firstName string
	lastName  string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a user with a validated email address.
func NewUser(email, firstName, lastName string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperr.NewValidationError("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.NewValidationError("invalid email: " + email)
	}
	if strings.TrimSpace(firstName) == "" {
		return nil, apperr.NewValidationError("first name is required")
	}

	now := time.Now().UTC()
	return &User{
		id:        uuid.New(),
		email:     email,
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, email, firstName, lastName string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		email:     email,
		firstName: firstName,
		lastName:  lastName,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) FirstName() string    { return u.firstName }
func (u *User) LastName() string     { return u.lastName }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
