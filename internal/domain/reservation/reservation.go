package reservation

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
)

const referenceChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Reservation is the aggregate root for activity reservations.
type Reservation struct {
	id              uuid.UUID
	reference       string
	userID          uuid.UUID
	activityID      uuid.UUID
	routeID         *uuid.UUID
	reservationDate time.Time
	numberOfPeople  int

	totalAmountCents int64
	currency         string
	status           ReservationStatus

	paymentIntentID string
	clientSecret    string

	confirmedAt *time.Time
	cancelledAt *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// generateReference creates a reference in the format "RS-XXXXXX".
func generateReference() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate reservation reference: %w", err)
		}
		result[i] = referenceChars[n.Int64()]
	}
	return "RS-" + string(result), nil
}

// NewReservation creates a pending Reservation bound to a payment intent.
func NewReservation(
	userID uuid.UUID,
	activityID uuid.UUID,
	routeID *uuid.UUID,
	reservationDate time.Time,
	numberOfPeople int,
	totalAmountCents int64,
	currency string,
	paymentIntentID string,
	clientSecret string,
) (*Reservation, error) {
	if userID == uuid.Nil {
		return nil, apperr.NewValidationError("user ID is required")
	}
	if activityID == uuid.Nil {
		return nil, apperr.NewValidationError("activity ID is required")
	}
	if reservationDate.IsZero() {
		return nil, apperr.NewValidationError("reservation date is required")
	}
	if numberOfPeople < 1 {
		return nil, apperr.NewValidationError("number of people must be at least 1")
	}
	if totalAmountCents <= 0 {
		return nil, apperr.NewValidationError("total amount must be positive")
	}
	if len(currency) != 3 {
		return nil, apperr.NewValidationError(fmt.Sprintf("invalid currency: %q", currency))
	}

	reference, err := generateReference()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Reservation{
		id:               uuid.New(),
		reference:        reference,
		userID:           userID,
		activityID:       activityID,
		routeID:          routeID,
		reservationDate:  reservationDate.UTC(),
		numberOfPeople:   numberOfPeople,
		totalAmountCents: totalAmountCents,
		currency:         currency,
		status:           StatusPending,
		paymentIntentID:  paymentIntentID,
		clientSecret:     clientSecret,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructReservation rebuilds a Reservation from persistence data (no validation).
func ReconstructReservation(
	id uuid.UUID,
	reference string,
	userID uuid.UUID,
	activityID uuid.UUID,
	routeID *uuid.UUID,
	reservationDate time.Time,
	numberOfPeople int,
	totalAmountCents int64,
	currency string,
	status ReservationStatus,
	paymentIntentID string,
	clientSecret string,
	confirmedAt *time.Time,
	cancelledAt *time.Time,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:               id,
		reference:        reference,
		userID:           userID,
		activityID:       activityID,
		routeID:          routeID,
		reservationDate:  reservationDate,
		numberOfPeople:   numberOfPeople,
		totalAmountCents: totalAmountCents,
		currency:         currency,
		status:           status,
		paymentIntentID:  paymentIntentID,
		clientSecret:     clientSecret,
		confirmedAt:      confirmedAt,
		cancelledAt:      cancelledAt,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

// ID returns the reservation's unique identifier.
func (r *Reservation) ID() uuid.UUID { return r.id }

// Reference returns the human-readable reservation reference.
func (r *Reservation) Reference() string { return r.reference }

// UserID returns the reserving user's ID.
func (r *Reservation) UserID() uuid.UUID { return r.userID }

// ActivityID returns the reserved activity's ID.
func (r *Reservation) ActivityID() uuid.UUID { return r.activityID }

// RouteID returns the route the reservation was made from, or nil.
func (r *Reservation) RouteID() *uuid.UUID { return r.routeID }

// ReservationDate returns the date of the reserved visit.
func (r *Reservation) ReservationDate() time.Time { return r.reservationDate }

// NumberOfPeople returns the party size.
func (r *Reservation) NumberOfPeople() int { return r.numberOfPeople }

// TotalAmountCents returns the total in minor currency units.
func (r *Reservation) TotalAmountCents() int64 { return r.totalAmountCents }

// Currency returns the ISO currency code.
func (r *Reservation) Currency() string { return r.currency }

// Status returns the current reservation status.
func (r *Reservation) Status() ReservationStatus { return r.status }

// PaymentIntentID returns the payment provider intent ID.
func (r *Reservation) PaymentIntentID() string { return r.paymentIntentID }

// ClientSecret returns the payment intent client secret.
func (r *Reservation) ClientSecret() string { return r.clientSecret }

// ConfirmedAt returns the confirmation time, or nil.
func (r *Reservation) ConfirmedAt() *time.Time { return r.confirmedAt }

// CancelledAt returns the cancellation time, or nil.
func (r *Reservation) CancelledAt() *time.Time { return r.cancelledAt }

// Version returns the entity version.
func (r *Reservation) Version() int64 { return r.version }

// CreatedAt returns the creation timestamp.
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
