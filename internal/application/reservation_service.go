package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wayfarer-travel/service-travel/internal/domain/payment"
	"github.com/wayfarer-travel/service-travel/internal/domain/reservation"
	"github.com/wayfarer-travel/service-travel/internal/events"
	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
)

// CreateReservationRequest holds the data needed to reserve an activity.
type CreateReservationRequest struct {
	UserID          uuid.UUID  `json:"user_id" binding:"required"`
	ActivityID      uuid.UUID  `json:"activity_id" binding:"required"`
	RouteID         *uuid.UUID `json:"route_id"`
	ReservationDate time.Time  `json:"reservation_date" binding:"required"`
	NumberOfPeople  int        `json:"number_of_people"`
	TotalAmount     float64    `json:"total_amount" binding:"required"`
	Currency        string     `json:"currency"`
}

// ReservationDTO is the response representation of a reservation.
type ReservationDTO struct {
	ID               uuid.UUID  `json:"id"`
	Reference        string     `json:"reference"`
	UserID           uuid.UUID  `json:"user_id"`
	ActivityID       uuid.UUID  `json:"activity_id"`
	RouteID          *uuid.UUID `json:"route_id,omitempty"`
	ReservationDate  time.Time  `json:"reservation_date"`
	NumberOfPeople   int        `json:"number_of_people"`
	TotalAmountCents int64      `json:"total_amount_cents"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	PaymentIntentID  string     `json:"payment_intent_id,omitempty"`
	ClientSecret     string     `json:"client_secret,omitempty"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	Version          int64      `json:"version"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// PaginatedReservations is a page of reservations.
type PaginatedReservations struct {
	Items []ReservationDTO
	Total int64
	Page  int
	Limit int
}

// ReservationService is the application service for activity reservations.
type ReservationService struct {
	repo      reservation.ReservationRepository
	payments  *PaymentService
	publisher EventPublisher
	logger    *zap.Logger
}

// NewReservationService creates a new ReservationService.
func NewReservationService(
	repo reservation.ReservationRepository,
	payments *PaymentService,
	publisher EventPublisher,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		repo:      repo,
		payments:  payments,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateReservation opens a payment intent for the total and stores a pending reservation.
func (s *ReservationService) CreateReservation(ctx context.Context, req CreateReservationRequest) (*ReservationDTO, error) {
	if req.NumberOfPeople == 0 {
		req.NumberOfPeople = 1
	}
	currency := payment.NormalizeCurrency(req.Currency)

	if req.TotalAmount <= 0 || math.IsNaN(req.TotalAmount) || math.IsInf(req.TotalAmount, 0) {
		return nil, apperr.NewValidationError("total amount must be positive")
	}
	amountCents := int64(math.Round(req.TotalAmount * 100))

	// Validate before talking to the payment provider.
	if _, err := reservation.NewReservation(
		req.UserID, req.ActivityID, req.RouteID, req.ReservationDate,
		req.NumberOfPeople, amountCents, currency, "", "",
	); err != nil {
		return nil, err
	}
	if err := s.repo.CheckReferences(ctx, req.UserID, req.ActivityID, req.RouteID); err != nil {
		return nil, err
	}

	intent, err := s.payments.createIntent(ctx, amountCents, currency, map[string]string{
		"user_id":     req.UserID.String(),
		"activity_id": req.ActivityID.String(),
	})
	if err != nil {
		return nil, err
	}

	r, err := reservation.NewReservation(
		req.UserID, req.ActivityID, req.RouteID, req.ReservationDate,
		req.NumberOfPeople, amountCents, currency, intent.ID, intent.ClientSecret,
	)
	if err != nil {
		s.payments.abandonIntent(ctx, intent.ID)
		return nil, err
	}

	// References can disappear between the check and the insert.
	if err := s.repo.Save(ctx, r); err != nil {
		s.payments.abandonIntent(ctx, intent.ID)
		return nil, fmt.Errorf("failed to save reservation: %w", err)
	}

	s.logger.Info("reservation created",
		zap.String("reservation_id", r.ID().String()),
		zap.String("reference", r.Reference()),
		zap.String("payment_intent_id", intent.ID),
	)

	evt := events.ReservationCreatedEvent{
		ReservationID:   r.ID(),
		Reference:       r.Reference(),
		UserID:          r.UserID(),
		ActivityID:      r.ActivityID(),
		AmountCents:     r.TotalAmountCents(),
		Currency:        r.Currency(),
		PaymentIntentID: r.PaymentIntentID(),
		OccurredAt:      time.Now().UTC(),
	}
	publishEvent(ctx, s.publisher, s.logger, events.TopicReservationEvents, events.ReservationCreated, r.ID().String(), evt)

	result := toReservationDTO(r)
	return &result, nil
}

// GetReservation retrieves a single reservation by ID.
func (s *ReservationService) GetReservation(ctx context.Context, id uuid.UUID) (*ReservationDTO, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toReservationDTO(r)
	return &result, nil
}

// ListUserReservations retrieves paginated reservations for a user.
func (s *ReservationService) ListUserReservations(ctx context.Context, userID uuid.UUID, page, limit int) (*PaginatedReservations, error) {
	reservations, total, err := s.repo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]ReservationDTO, len(reservations))
	for i, r := range reservations {
		dtos[i] = toReservationDTO(r)
	}
	return &PaginatedReservations{Items: dtos, Total: total, Page: page, Limit: limit}, nil
}

// ReservationStatsDTO holds reservation counts.
type ReservationStatsDTO struct {
	TotalReservations int64            `json:"total_reservations"`
	ByStatus          map[string]int64 `json:"by_status"`
}

// GetReservationStats returns reservation counts grouped by status.
func (s *ReservationService) GetReservationStats(ctx context.Context) (*ReservationStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &ReservationStatsDTO{
		TotalReservations: total,
		ByStatus:          counts,
	}, nil
}

func toReservationDTO(r *reservation.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:               r.ID(),
		Reference:        r.Reference(),
		UserID:           r.UserID(),
		ActivityID:       r.ActivityID(),
		RouteID:          r.RouteID(),
		ReservationDate:  r.ReservationDate(),
		NumberOfPeople:   r.NumberOfPeople(),
		TotalAmountCents: r.TotalAmountCents(),
		Currency:         r.Currency(),
		Status:           r.Status().String(),
		PaymentIntentID:  r.PaymentIntentID(),
		ClientSecret:     r.ClientSecret(),
		ConfirmedAt:      r.ConfirmedAt(),
		CancelledAt:      r.CancelledAt(),
		Version:          r.Version(),
		CreatedAt:        r.CreatedAt(),
		UpdatedAt:        r.UpdatedAt(),
	}
}
