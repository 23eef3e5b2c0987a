package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	reservationDomain "github.com/wayfarer-travel/service-travel/internal/domain/reservation"
	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
)

// ReservationModel is the GORM model for the reservations table.
type ReservationModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Reference        string     `gorm:"uniqueIndex;not null;size:20"`
	UserID           uuid.UUID  `gorm:"type:uuid;index;not null"`
	ActivityID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	RouteID          *uuid.UUID `gorm:"type:uuid;index"`
	ReservationDate  time.Time  `gorm:"not null"`
	NumberOfPeople   int        `gorm:"not null;default:1"`
	TotalAmountCents int64      `gorm:"not null"`
	Currency         string     `gorm:"not null;size:3;default:'eur'"`
	Status           string     `gorm:"not null;size:20;index"`
	PaymentIntentID  string     `gorm:"size:255;index"`
	ClientSecret     string     `gorm:"size:255"`
	ConfirmedAt      *time.Time `gorm:""`
	CancelledAt      *time.Time `gorm:""`
	Version          int64      `gorm:"not null;default:1"`
	CreatedAt        time.Time  `gorm:"not null"`
	UpdatedAt        time.Time  `gorm:"not null"`

	User     UserModel     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Activity ActivityModel `gorm:"foreignKey:ActivityID;constraint:OnDelete:RESTRICT"`
	Route    *RouteModel   `gorm:"foreignKey:RouteID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for the GORM model.
func (ReservationModel) TableName() string {
	return "reservations"
}

// GormReservationRepository is the GORM-based implementation of ReservationRepository.
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository.
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// FindByID retrieves a reservation by its unique identifier.
func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservationDomain.Reservation, error) {
	var model ReservationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("reservation", id.String())
		}
		return nil, fmt.Errorf("failed to find reservation by ID: %w", err)
	}
	return toDomainReservation(&model)
}

// FindByUserID retrieves reservations for a user with pagination, newest first.
func (r *GormReservationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*reservationDomain.Reservation, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ReservationModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count user reservations: %w", err)
	}

	var models []ReservationModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find user reservations: %w", err)
	}

	reservations := make([]*reservationDomain.Reservation, len(models))
	for i, m := range models {
		res, err := toDomainReservation(&m)
		if err != nil {
			return nil, 0, err
		}
		reservations[i] = res
	}

	return reservations, total, nil
}

// Save persists a new reservation. A dangling user, activity or route
// reference is reported as not found.
func (r *GormReservationRepository) Save(ctx context.Context, res *reservationDomain.Reservation) error {
	model := toReservationModel(res)
	if err := r.db.WithContext(ctx).Omit("User", "Activity", "Route").Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return apperr.NewNotFoundError("referenced user, activity or route", "")
		}
		return fmt.Errorf("failed to save reservation: %w", err)
	}
	return nil
}

// CheckReferences verifies that the rows a reservation points to exist.
func (r *GormReservationRepository) CheckReferences(ctx context.Context, userID, activityID uuid.UUID, routeID *uuid.UUID) error {
	checks := []struct {
		entity string
		model  any
		id     uuid.UUID
	}{
		{"user", &UserModel{}, userID},
		{"activity", &ActivityModel{}, activityID},
	}
	if routeID != nil {
		checks = append(checks, struct {
			entity string
			model  any
			id     uuid.UUID
		}{"route", &RouteModel{}, *routeID})
	}

	for _, c := range checks {
		var count int64
		if err := r.db.WithContext(ctx).Model(c.model).Where("id = ?", c.id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check %s: %w", c.entity, err)
		}
		if count == 0 {
			return apperr.NewNotFoundError(c.entity, c.id.String())
		}
	}
	return nil
}

// CountByStatus returns reservation counts grouped by status.
func (r *GormReservationRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&ReservationModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// --- Conversion Helpers ---

func toReservationModel(res *reservationDomain.Reservation) *ReservationModel {
	return &ReservationModel{
		ID:               res.ID(),
		Reference:        res.Reference(),
		UserID:           res.UserID(),
		ActivityID:       res.ActivityID(),
		RouteID:          res.RouteID(),
		ReservationDate:  res.ReservationDate(),
		NumberOfPeople:   res.NumberOfPeople(),
		TotalAmountCents: res.TotalAmountCents(),
		Currency:         res.Currency(),
		Status:           string(res.Status()),
		PaymentIntentID:  res.PaymentIntentID(),
		ClientSecret:     res.ClientSecret(),
		ConfirmedAt:      res.ConfirmedAt(),
		CancelledAt:      res.CancelledAt(),
		Version:          res.Version(),
		CreatedAt:        res.CreatedAt(),
		UpdatedAt:        res.UpdatedAt(),
	}
}

func toDomainReservation(m *ReservationModel) (*reservationDomain.Reservation, error) {
	status, err := reservationDomain.ParseReservationStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return reservationDomain.ReconstructReservation(
		m.ID,
		m.Reference,
		m.UserID,
		m.ActivityID,
		m.RouteID,
		m.ReservationDate,
		m.NumberOfPeople,
		m.TotalAmountCents,
		m.Currency,
		status,
		m.PaymentIntentID,
		m.ClientSecret,
		m.ConfirmedAt,
		m.CancelledAt,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
