package reservation

import (
	"context"

	"github.com/google/uuid"
)

// ReservationRepository defines the persistence contract for reservation aggregates.
type ReservationRepository interface {
	// FindByID retrieves a reservation by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)

	// FindByUserID retrieves reservations belonging to a user with pagination.
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Reservation, int64, error)

	// Save persists a new reservation.
	Save(ctx context.Context, r *Reservation) error

	// CheckReferences returns a not-found error when the user, the activity or
	// the optional route does not exist.
	CheckReferences(ctx context.Context, userID, activityID uuid.UUID, routeID *uuid.UUID) error

	// CountByStatus returns reservation counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
