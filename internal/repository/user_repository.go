package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userDomain "github.com/wayfarer-travel/service-travel/internal/domain/user"
	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"uniqueIndex;not null;size:255"`
	FirstName string    `gorm:"not null;size:100"`
	LastName  string    `gorm:"size:100"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (UserModel) TableName() string { return "users" }

// UserPreferenceModel is the GORM model for the user_preferences table.
type UserPreferenceModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Preference json.RawMessage `gorm:"type:jsonb;not null"`
	Version    int64           `gorm:"not null;default:1"`
	CreatedAt  time.Time       `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt  time.Time       `gorm:"type:timestamptz;not null;default:now()"`

	User UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserPreferenceModel) TableName() string { return "user_preferences" }

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("user", id.String())
		}
		return nil, err
	}
	return userDomain.Reconstruct(model.ID, model.Email, model.FirstName, model.LastName, model.CreatedAt, model.UpdatedAt), nil
}

func (r *GormUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	model := &UserModel{
		ID:        u.ID(),
		Email:     u.Email(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.NewConflictError("a user with this email already exists")
		}
		return err
	}
	return nil
}

// GormPreferenceRepository implements PreferenceRepository using GORM.
type GormPreferenceRepository struct {
	db *gorm.DB
}

func NewGormPreferenceRepository(db *gorm.DB) *GormPreferenceRepository {
	return &GormPreferenceRepository{db: db}
}

func (r *GormPreferenceRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*userDomain.Preferences, error) {
	var model UserPreferenceModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("preferences", userID.String())
		}
		return nil, err
	}
	return toPreferencesDomain(&model)
}

func (r *GormPreferenceRepository) Save(ctx context.Context, p *userDomain.Preferences) error {
	model, err := toPreferenceModel(p)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(model).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return apperr.NewNotFoundError("user", p.UserID().String())
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return apperr.NewConflictError("preferences already exist for this user")
		}
		return err
	}
	return nil
}

func (r *GormPreferenceRepository) Update(ctx context.Context, p *userDomain.Preferences) error {
	model, err := toPreferenceModel(p)
	if err != nil {
		return err
	}
	previousVersion := p.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&UserPreferenceModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Updates(map[string]interface{}{
			"preference": model.Preference,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NewConflictError("preferences were modified by another transaction")
	}
	return nil
}

// --- Conversions ---

func toPreferenceModel(p *userDomain.Preferences) (*UserPreferenceModel, error) {
	data, err := json.Marshal(p.Preference())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preference: %w", err)
	}
	return &UserPreferenceModel{
		ID:         p.ID(),
		UserID:     p.UserID(),
		Preference: data,
		Version:    p.Version(),
		CreatedAt:  p.CreatedAt(),
		UpdatedAt:  p.UpdatedAt(),
	}, nil
}

func toPreferencesDomain(m *UserPreferenceModel) (*userDomain.Preferences, error) {
	var pref userDomain.Preference
	if err := json.Unmarshal(m.Preference, &pref); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preference: %w", err)
	}
	return userDomain.ReconstructPreferences(m.ID, m.UserID, pref, m.Version, m.CreatedAt, m.UpdatedAt), nil
}
