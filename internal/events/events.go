// Package events defines the topics and payloads the travel service publishes.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies this service in CloudEvent envelopes.
const Source = "service-travel"

// Topics.
const (
	TopicRouteEvents       = "travel.route.events"
	TopicPaymentEvents     = "travel.payment.events"
	TopicReservationEvents = "travel.reservation.events"
)

// Event types.
const (
	RouteActivitiesFound   = "travel.route.activities_found"
	PaymentIntentCreated   = "travel.payment.intent_created"
	PaymentIntentConfirmed = "travel.payment.intent_confirmed"
	PaymentIntentCanceled  = "travel.payment.intent_canceled"
	ReservationCreated     = "travel.reservation.created"
)

// RouteActivitiesFoundEvent is published after an along-route search.
type RouteActivitiesFoundEvent struct {
	RouteID      *uuid.UUID `json:"route_id,omitempty"`
	StartLat     float64    `json:"start_lat"`
	StartLng     float64    `json:"start_lng"`
	EndLat       float64    `json:"end_lat"`
	EndLng       float64    `json:"end_lng"`
	ActivityType string     `json:"activity_type"`
	SamplePoints int        `json:"sample_points"`
	PlaceIDs     []string   `json:"place_ids"`
	OccurredAt   time.Time  `json:"occurred_at"`
}

// PaymentIntentEvent is published when an intent is created or confirmed.
type PaymentIntentEvent struct {
	PaymentIntentID string    `json:"payment_intent_id"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// ReservationCreatedEvent is published when a reservation is stored.
type ReservationCreatedEvent struct {
	ReservationID   uuid.UUID `json:"reservation_id"`
	Reference       string    `json:"reference"`
	UserID          uuid.UUID `json:"user_id"`
	ActivityID      uuid.UUID `json:"activity_id"`
	AmountCents     int64     `json:"amount_cents"`
	Currency        string    `json:"currency"`
	PaymentIntentID string    `json:"payment_intent_id"`
	OccurredAt      time.Time `json:"occurred_at"`
}
