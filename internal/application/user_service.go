package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wayfarer-travel/service-travel/internal/domain/activity"
	userDomain "github.com/wayfarer-travel/service-travel/internal/domain/user"
	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
)

// CreateUserRequest is the request DTO for registering a traveller.
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
}

// UserDTO is the API response representation of a user.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PreferencesDTO is the API response representation of a user's search defaults.
type PreferencesDTO struct {
	UserID     uuid.UUID             `json:"user_id"`
	Preference userDomain.Preference `json:"preference"`
	Version    int64                 `json:"version"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// UserService implements use cases for users and their preferences.
type UserService struct {
	users  userDomain.UserRepository
	prefs  userDomain.PreferenceRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users userDomain.UserRepository, prefs userDomain.PreferenceRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, prefs: prefs, logger: logger}
}

// CreateUser registers a new user.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	u, err := userDomain.NewUser(req.Email, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, u); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", zap.String("user_id", u.ID().String()))
	result := toUserDTO(u)
	return &result, nil
}

// GetUser returns a single user.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// GetPreferences returns the stored preferences. A user without any gets an
// empty document at version 0.
func (s *UserService) GetPreferences(ctx context.Context, userID uuid.UUID) (*PreferencesDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	p, err := s.prefs.FindByUserID(ctx, userID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return &PreferencesDTO{UserID: userID, Preference: userDomain.Preference{}}, nil
		}
		return nil, err
	}
	result := toPreferencesDTO(p)
	return &result, nil
}

// UpdatePreferences replaces the user's preference document, creating it on first write.
func (s *UserService) UpdatePreferences(ctx context.Context, userID uuid.UUID, pref userDomain.Preference) (*PreferencesDTO, error) {
	if err := pref.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	existing, err := s.prefs.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		if err := existing.Replace(pref); err != nil {
			return nil, err
		}
		if err := s.prefs.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update preferences: %w", err)
		}
	case apperr.Is(err, apperr.KindNotFound):
		existing, err = userDomain.NewPreferences(userID, pref)
		if err != nil {
			return nil, err
		}
		if err := s.prefs.Save(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to save preferences: %w", err)
		}
	default:
		return nil, err
	}

	s.logger.Info("preferences updated",
		zap.String("user_id", userID.String()),
		zap.Int64("version", existing.Version()),
	)
	result := toPreferencesDTO(existing)
	return &result, nil
}

// ApplyPreferences fills the unset fields of q from the user's preferences.
// Missing users or preferences leave q untouched.
func (s *UserService) ApplyPreferences(ctx context.Context, userID uuid.UUID, q *AlongRouteQuery) error {
	p, err := s.prefs.FindByUserID(ctx, userID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}

	pref := p.Preference()
	if q.ActivityType == "" && len(pref.ActivityTypes) > 0 {
		q.ActivityType = pref.ActivityTypes[0]
	}
	if q.RadiusMeters == 0 && pref.RadiusMeters > 0 {
		q.RadiusMeters = pref.RadiusMeters
	}
	if q.SamplingDistanceKm == 0 && pref.SamplingDistanceKm > 0 {
		q.SamplingDistanceKm = pref.SamplingDistanceKm
	}
	return nil
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Email:     u.Email(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		CreatedAt: u.CreatedAt(),
	}
}

func toPreferencesDTO(p *userDomain.Preferences) PreferencesDTO {
	pref := p.Preference()
	if pref.ActivityTypes == nil {
		pref.ActivityTypes = []activity.PertinentCategory{}
	}
	return PreferencesDTO{
		UserID:     p.UserID(),
		Preference: pref,
		Version:    p.Version(),
		UpdatedAt:  p.UpdatedAt(),
	}
}
