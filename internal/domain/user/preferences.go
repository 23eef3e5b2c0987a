package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-travel/service-travel/internal/domain/activity"
	"github.com/wayfarer-travel/service-travel/internal/domain/route"
	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
)

// Limits accepted for stored search defaults.
const (
	MaxRadiusMeters       = 50000
	MaxSamplingDistanceKm = 500
)

// Preference is the JSON document stored per user.
type Preference struct {
	ActivityTypes      []activity.PertinentCategory `json:"activity_types,omitempty"`
	RadiusMeters       float64                      `json:"radius_meters,omitempty"`
	SamplingDistanceKm float64                      `json:"sampling_distance_km,omitempty"`
	TravelMode         route.TravelMode             `json:"travel_mode,omitempty"`
	Language           string                       `json:"language,omitempty"`
}

// Validate checks every field and reports the first problem found.
func (p Preference) Validate() error {
	for _, t := range p.ActivityTypes {
		if !t.IsValid() {
			return apperr.NewValidationError(fmt.Sprintf("invalid activity type: %s", t))
		}
	}
	if p.RadiusMeters < 0 || p.RadiusMeters > MaxRadiusMeters {
		return apperr.NewValidationError(fmt.Sprintf("radius must be between 0 and %d meters", MaxRadiusMeters))
	}
	if p.SamplingDistanceKm < 0 || p.SamplingDistanceKm > MaxSamplingDistanceKm {
		return apperr.NewValidationError(fmt.Sprintf("sampling distance must be between 0 and %d km", MaxSamplingDistanceKm))
	}
	if p.TravelMode != "" && !p.TravelMode.IsValid() {
		return apperr.NewValidationError(fmt.Sprintf("invalid travel mode: %s", p.TravelMode))
	}
	return nil
}

// Preferences is the aggregate holding a user's search defaults.
type Preferences struct {
	id         uuid.UUID
	userID     uuid.UUID
	preference Preference
	version    int64
	createdAt  time.Time
	updatedAt  time.Time
}

// NewPreferences creates the first preferences record for a user.
func NewPreferences(userID uuid.UUID, p Preference) (*Preferences, error) {
	if userID == uuid.Nil {
		return nil, apperr.NewValidationError("user ID is required")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Preferences{
		id:         uuid.New(),
		userID:     userID,
		preference: p,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructPreferences rebuilds Preferences from persistence data (no validation).
func ReconstructPreferences(id, userID uuid.UUID, p Preference, version int64, createdAt, updatedAt time.Time) *Preferences {
	return &Preferences{
		id:         id,
		userID:     userID,
		preference: p,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (p *Preferences) ID() uuid.UUID          { return p.id }
func (p *Preferences) UserID() uuid.UUID      { return p.userID }
func (p *Preferences) Preference() Preference { return p.preference }
func (p *Preferences) Version() int64         { return p.version }
func (p *Preferences) CreatedAt() time.Time   { return p.createdAt }
func (p *Preferences) UpdatedAt() time.Time   { return p.updatedAt }

// Replace swaps the stored document and bumps the version.
func (p *Preferences) Replace(next Preference) error {
	if err := next.Validate(); err != nil {
		return err
	}
	p.preference = next
	p.version++
	p.updatedAt = time.Now().UTC()
	return nil
}
