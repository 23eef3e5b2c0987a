//go:build integration

package main_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wayfarer-travel/service-travel/internal/application"
	"github.com/wayfarer-travel/service-travel/internal/domain/activity"
	"github.com/wayfarer-travel/service-travel/internal/domain/geo"
	"github.com/wayfarer-travel/service-travel/internal/domain/payment"
	"github.com/wayfarer-travel/service-travel/internal/domain/route"
	"github.com/wayfarer-travel/service-travel/internal/events"
	"github.com/wayfarer-travel/service-travel/internal/platform/kafka"
	"github.com/wayfarer-travel/service-travel/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// travelStack holds wired-up service components backed by the containers.
type travelStack struct {
	Travel          *application.TravelService
	Users           *application.UserService
	Reservations    *application.ReservationService
	RouteRepo       *repository.GormRouteRepository
	PreferenceRepo  *repository.GormPreferenceRepository
	Gateway         *stubGateway
	CleanupProducer func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_travel",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_travel sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.UserPreferenceModel{},
		&repository.ActivityModel{},
		&repository.RouteModel{},
		&repository.RouteActivityModel{},
		&repository.ReservationModel{},
	))

	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, events.TopicRouteEvents, events.TopicPaymentEvents, events.TopicReservationEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupTravelStack wires the services to the real repositories and producer.
// Map and payment providers are stubbed.
func setupTravelStack(t *testing.T, db *gorm.DB, brokers []string, directions route.DirectionsProvider, places activity.PlacesFinder) *travelStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	producer := kafka.NewProducer(brokers, logger)
	routeRepo := repository.NewGormRouteRepository(db)
	prefRepo := repository.NewGormPreferenceRepository(db)

	travel := application.NewTravelService(directions, places, nil, routeRepo, producer,
		application.TravelServiceOptions{
			Aggregator: application.AggregatorOptions{Concurrency: 2, LookupTimeout: 5 * time.Second},
		}, logger)
	gateway := &stubGateway{}
	payments := application.NewPaymentService(gateway, "test", producer, logger)

	return &travelStack{
		Travel:          travel,
		Users:           application.NewUserService(repository.NewGormUserRepository(db), prefRepo, logger),
		Reservations:    application.NewReservationService(repository.NewGormReservationRepository(db), payments, producer, logger),
		RouteRepo:       routeRepo,
		PreferenceRepo:  prefRepo,
		Gateway:         gateway,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// stubDirections always returns the same route.
type stubDirections struct{ route route.Route }

func (s stubDirections) Directions(context.Context, geo.Coordinate, geo.Coordinate, route.TravelMode) ([]route.Route, error) {
	return []route.Route{s.route}, nil
}

// stubPlaces returns the places registered for the nearest route point.
type stubPlaces struct {
	points []geo.Coordinate
	byIdx  map[int][]activity.CandidatePlace
}

func (s stubPlaces) Nearby(_ context.Context, p geo.Coordinate, _ float64, _ activity.PertinentCategory) ([]activity.CandidatePlace, error) {
	best, bestDist := 0, -1.0
	for i, q := range s.points {
		if d := geo.DistanceKm(p, q); bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return s.byIdx[best], nil
}

type stubGateway struct {
	mu    sync.Mutex
	calls []string
}

func (g *stubGateway) record(call string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, call)
}

// Calls returns the gateway operations seen so far.
func (g *stubGateway) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

func (g *stubGateway) CreateIntent(_ context.Context, p payment.CreateIntentParams) (*payment.Intent, error) {
	g.record("create")
	id := "pi_" + uuid.NewString()[:8]
	return &payment.Intent{ID: id, ClientSecret: id + "_secret", Amount: p.Amount, Currency: p.Currency, Status: "requires_payment_method"}, nil
}

func (g *stubGateway) GetIntent(_ context.Context, id string) (*payment.Intent, error) {
	g.record("get")
	return &payment.Intent{ID: id, Status: "requires_confirmation"}, nil
}

func (g *stubGateway) ConfirmIntent(_ context.Context, id string) (*payment.Intent, error) {
	g.record("confirm")
	return &payment.Intent{ID: id, Status: "succeeded"}, nil
}

func (g *stubGateway) CancelIntent(_ context.Context, id string) (*payment.Intent, error) {
	g.record("cancel")
	return &payment.Intent{ID: id, Status: "canceled"}, nil
}

// equatorRoute builds a route through n points spaced stepKm apart on the equator.
func equatorRoute(n int, stepKm float64) ([]geo.Coordinate, route.Route) {
	points := make([]geo.Coordinate, n)
	for i := range points {
		points[i] = geo.Coordinate{Lat: 0, Lng: float64(i) * stepKm / 111.319}
	}
	encoded := geo.EncodePolyline(points)
	return points, route.Route{
		OverviewPolyline: route.Polyline{Points: encoded},
		Legs: []route.Leg{{
			Distance: route.Distance{Text: "80 km", Value: 80000},
			Duration: route.Duration{Text: "1 hour", Value: 3600},
			Steps:    []route.Step{{Polyline: route.Polyline{Points: encoded}}},
		}},
	}
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		var ce kafka.CloudEvent
		if err := json.Unmarshal(msg.Value, &ce); err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
