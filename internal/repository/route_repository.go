package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wayfarer-travel/service-travel/internal/domain/activity"
	"github.com/wayfarer-travel/service-travel/internal/domain/geo"
	routeDomain "github.com/wayfarer-travel/service-travel/internal/domain/route"
	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
)

// ActivityModel is the GORM model for the activities table.
type ActivityModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PlaceID     string          `gorm:"uniqueIndex;not null;size:255"`
	Name        string          `gorm:"not null;size:255"`
	Description string          `gorm:"type:text"`
	Category    string          `gorm:"not null;size:50;index"`
	Types       json.RawMessage `gorm:"type:jsonb;not null"`
	Rating      float64         `gorm:"not null;default:0"`
	Lat         float64         `gorm:"not null"`
	Lng         float64         `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ActivityModel) TableName() string {
	return "activities"
}

// RouteModel is the GORM model for the routes table.
type RouteModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	StartLat        float64   `gorm:"not null"`
	StartLng        float64   `gorm:"not null"`
	EndLat          float64   `gorm:"not null"`
	EndLng          float64   `gorm:"not null"`
	DistanceKm      float64   `gorm:"not null"`
	DurationSeconds int       `gorm:"not null"`
	Polyline        string    `gorm:"type:text;not null"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RouteModel) TableName() string {
	return "routes"
}

// RouteActivityModel links a route to the activities found along it.
type RouteActivityModel struct {
	RouteID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActivityID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position          int       `gorm:"not null"`
	DistanceFromRoute float64   `gorm:"not null"`

	Route    RouteModel    `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
	Activity ActivityModel `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the GORM model.
func (RouteActivityModel) TableName() string {
	return "route_activities"
}

// GormRouteRepository is the GORM-based implementation of SavedRouteRepository.
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GormRouteRepository.
func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

// Save stores the route and links its activities in one transaction.
// Activities are upserted by place ID; the stored IDs are written back to r.
func (r *GormRouteRepository) Save(ctx context.Context, sr *routeDomain.SavedRoute) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(toRouteModel(sr)).Error; err != nil {
			return fmt.Errorf("failed to save route: %w", err)
		}

		for i := range sr.Activities {
			id, err := upsertActivity(tx, sr.Activities[i].Place)
			if err != nil {
				return err
			}
			sr.Activities[i].ActivityID = id

			link := RouteActivityModel{
				RouteID:           sr.ID,
				ActivityID:        id,
				Position:          i,
				DistanceFromRoute: sr.Activities[i].DistanceFromRouteKm,
			}
			if err := tx.Omit(clause.Associations).Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link activity to route: %w", err)
			}
		}
		return nil
	})
}

// FindByID retrieves a route with its activities in discovery order.
func (r *GormRouteRepository) FindByID(ctx context.Context, id uuid.UUID) (*routeDomain.SavedRoute, error) {
	var model RouteModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("route", id.String())
		}
		return nil, fmt.Errorf("failed to find route by ID: %w", err)
	}

	var links []RouteActivityModel
	if err := r.db.WithContext(ctx).
		Preload("Activity").
		Where("route_id = ?", id).
		Order("position ASC").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load route activities: %w", err)
	}

	activities := make([]routeDomain.SavedActivity, 0, len(links))
	for _, l := range links {
		place, err := toCandidatePlace(&l.Activity)
		if err != nil {
			return nil, err
		}
		activities = append(activities, routeDomain.SavedActivity{
			ActivityID:          l.ActivityID,
			Place:               place,
			DistanceFromRouteKm: l.DistanceFromRoute,
		})
	}

	return &routeDomain.SavedRoute{
		ID:              model.ID,
		Start:           geo.Coordinate{Lat: model.StartLat, Lng: model.StartLng},
		End:             geo.Coordinate{Lat: model.EndLat, Lng: model.EndLng},
		DistanceKm:      model.DistanceKm,
		DurationSeconds: model.DurationSeconds,
		Polyline:        model.Polyline,
		Activities:      activities,
		CreatedAt:       model.CreatedAt,
	}, nil
}

// upsertActivity inserts or refreshes the activity row for p and returns its ID.
func upsertActivity(tx *gorm.DB, p activity.CandidatePlace) (uuid.UUID, error) {
	model, err := toActivityModel(p)
	if err != nil {
		return uuid.Nil, err
	}

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "place_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "category", "types", "rating", "lat", "lng", "updated_at"}),
	}).Create(model).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert activity %s: %w", p.ID, err)
	}

	// On conflict the existing row keeps its ID.
	var stored ActivityModel
	if err := tx.Select("id").Where("place_id = ?", p.ID).Take(&stored).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to read activity %s: %w", p.ID, err)
	}
	return stored.ID, nil
}

// --- Conversions ---

func toRouteModel(sr *routeDomain.SavedRoute) *RouteModel {
	return &RouteModel{
		ID:              sr.ID,
		StartLat:        sr.Start.Lat,
		StartLng:        sr.Start.Lng,
		EndLat:          sr.End.Lat,
		EndLng:          sr.End.Lng,
		DistanceKm:      sr.DistanceKm,
		DurationSeconds: sr.DurationSeconds,
		Polyline:        sr.Polyline,
		CreatedAt:       sr.CreatedAt,
	}
}

func toActivityModel(p activity.CandidatePlace) (*ActivityModel, error) {
	types := p.Types
	if types == nil {
		types = []string{}
	}
	typesJSON, err := json.Marshal(types)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal activity types: %w", err)
	}

	now := time.Now().UTC()
	return &ActivityModel{
		ID:          uuid.New(),
		PlaceID:     p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category(),
		Types:       typesJSON,
		Rating:      p.Rating,
		Lat:         p.Location.Lat,
		Lng:         p.Location.Lng,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func toCandidatePlace(m *ActivityModel) (activity.CandidatePlace, error) {
	var types []string
	if len(m.Types) > 0 {
		if err := json.Unmarshal(m.Types, &types); err != nil {
			return activity.CandidatePlace{}, fmt.Errorf("failed to unmarshal activity types: %w", err)
		}
	}
	return activity.CandidatePlace{
		ID:          m.PlaceID,
		Location:    geo.Coordinate{Lat: m.Lat, Lng: m.Lng},
		Name:        m.Name,
		Description: m.Description,
		Types:       types,
		Rating:      m.Rating,
	}, nil
}
