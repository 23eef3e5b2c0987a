package application

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/wayfarer-travel/service-travel/internal/domain/activity"
	"github.com/wayfarer-travel/service-travel/internal/domain/geo"
	"github.com/wayfarer-travel/service-travel/internal/domain/payment"
	"github.com/wayfarer-travel/service-travel/internal/domain/reservation"
	"github.com/wayfarer-travel/service-travel/internal/domain/route"
	"github.com/wayfarer-travel/service-travel/internal/domain/user"
	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
	"github.com/wayfarer-travel/service-travel/internal/platform/kafka"
)

type fakeDirections struct {
	fn    func(ctx context.Context, origin, destination geo.Coordinate, mode route.TravelMode) ([]route.Route, error)
	modes []route.TravelMode
}

func (f *fakeDirections) Directions(ctx context.Context, origin, destination geo.Coordinate, mode route.TravelMode) ([]route.Route, error) {
	f.modes = append(f.modes, mode)
	return f.fn(ctx, origin, destination, mode)
}

type placesCall struct {
	point     geo.Coordinate
	radius    float64
	placeType activity.PertinentCategory
}

type fakePlaces struct {
	mu    sync.Mutex
	fn    func(ctx context.Context, point geo.Coordinate) ([]activity.CandidatePlace, error)
	calls []placesCall
}

func (f *fakePlaces) Nearby(ctx context.Context, point geo.Coordinate, radiusMeters float64, placeType activity.PertinentCategory) ([]activity.CandidatePlace, error) {
	f.mu.Lock()
	f.calls = append(f.calls, placesCall{point: point, radius: radiusMeters, placeType: placeType})
	f.mu.Unlock()
	return f.fn(ctx, point)
}

type fakeGeocoder struct {
	fn func(ctx context.Context, address, language string) ([]route.GeocodeResult, error)
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address, language string) ([]route.GeocodeResult, error) {
	return f.fn(ctx, address, language)
}

type fakeRouteRepo struct {
	saved   []*route.SavedRoute
	saveErr error
}

func (f *fakeRouteRepo) Save(_ context.Context, r *route.SavedRoute) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeRouteRepo) FindByID(_ context.Context, id uuid.UUID) (*route.SavedRoute, error) {
	for _, r := range f.saved {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperr.NewNotFoundError("route", id.String())
}

type publishedEvent struct {
	topic string
	key   string
	event kafka.CloudEvent
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (f *fakePublisher) PublishEvent(_ context.Context, topic, key string, ce kafka.CloudEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{topic: topic, key: key, event: ce})
	return f.err
}

type fakeGateway struct {
	created   []payment.CreateIntentParams
	calls     []string
	intent    *payment.Intent
	createErr error
	getErr    error
	cancelErr error
}

func (f *fakeGateway) CreateIntent(_ context.Context, params payment.CreateIntentParams) (*payment.Intent, error) {
	f.calls = append(f.calls, "create")
	f.created = append(f.created, params)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &payment.Intent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
		Amount:       params.Amount,
		Currency:     params.Currency,
		Status:       "requires_payment_method",
	}, nil
}

func (f *fakeGateway) GetIntent(_ context.Context, id string) (*payment.Intent, error) {
	f.calls = append(f.calls, "get:"+id)
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.intent, nil
}

func (f *fakeGateway) ConfirmIntent(_ context.Context, id string) (*payment.Intent, error) {
	f.calls = append(f.calls, "confirm:"+id)
	confirmed := *f.intent
	confirmed.Status = "succeeded"
	return &confirmed, nil
}

func (f *fakeGateway) CancelIntent(_ context.Context, id string) (*payment.Intent, error) {
	f.calls = append(f.calls, "cancel:"+id)
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return &payment.Intent{ID: id, Status: "canceled"}, nil
}

type fakeReservationRepo struct {
	saved   map[uuid.UUID]*reservation.Reservation
	saveErr error
	refErr  error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{saved: make(map[uuid.UUID]*reservation.Reservation)}
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	r, ok := f.saved[id]
	if !ok {
		return nil, apperr.NewNotFoundError("reservation", id.String())
	}
	return r, nil
}

func (f *fakeReservationRepo) FindByUserID(_ context.Context, userID uuid.UUID, page, limit int) ([]*reservation.Reservation, int64, error) {
	var out []*reservation.Reservation
	for _, r := range f.saved {
		if r.UserID() == userID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReservationRepo) Save(_ context.Context, r *reservation.Reservation) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[r.ID()] = r
	return nil
}

func (f *fakeReservationRepo) CheckReferences(_ context.Context, _, _ uuid.UUID, _ *uuid.UUID) error {
	return f.refErr
}

func (f *fakeReservationRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, r := range f.saved {
		counts[r.Status().String()]++
	}
	return counts, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
	for _, u := range users {
		f.users[u.ID()] = u
	}
	return f
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NewNotFoundError("user", id.String())
	}
	return u, nil
}

func (f *fakeUserRepo) Save(_ context.Context, u *user.User) error {
	for _, existing := range f.users {
		if existing.Email() == u.Email() {
			return apperr.NewConflictError("a user with this email already exists")
		}
	}
	f.users[u.ID()] = u
	return nil
}

type fakePreferenceRepo struct {
	byUser  map[uuid.UUID]*user.Preferences
	saves   int
	updates int
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{byUser: make(map[uuid.UUID]*user.Preferences)}
}

func (f *fakePreferenceRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*user.Preferences, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, apperr.NewNotFoundError("preferences", userID.String())
	}
	return p, nil
}

func (f *fakePreferenceRepo) Save(_ context.Context, p *user.Preferences) error {
	f.saves++
	f.byUser[p.UserID()] = p
	return nil
}

func (f *fakePreferenceRepo) Update(_ context.Context, p *user.Preferences) error {
	f.updates++
	f.byUser[p.UserID()] = p
	return nil
}
