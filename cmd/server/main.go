package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wayfarer-travel/service-travel/internal/application"
	"github.com/wayfarer-travel/service-travel/internal/config"
	"github.com/wayfarer-travel/service-travel/internal/domain/activity"
	"github.com/wayfarer-travel/service-travel/internal/domain/route"
	"github.com/wayfarer-travel/service-travel/internal/handler"
	"github.com/wayfarer-travel/service-travel/internal/maps/cache"
	"github.com/wayfarer-travel/service-travel/internal/maps/google"
	"github.com/wayfarer-travel/service-travel/internal/maps/overpass"
	"github.com/wayfarer-travel/service-travel/internal/payment/stripe"
	"github.com/wayfarer-travel/service-travel/internal/platform/database"
	"github.com/wayfarer-travel/service-travel/internal/platform/health"
	"github.com/wayfarer-travel/service-travel/internal/platform/kafka"
	"github.com/wayfarer-travel/service-travel/internal/platform/logger"
	"github.com/wayfarer-travel/service-travel/internal/platform/metrics"
	"github.com/wayfarer-travel/service-travel/internal/platform/middleware"
	"github.com/wayfarer-travel/service-travel/internal/repository"
)

const serviceName = "service-travel"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-travel",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("places_provider", cfg.Maps.PlacesProvider),
	)

	// Connect to database
	var db *gorm.DB
	if cfg.Database.Enabled {
		db = connectDatabase(cfg, log)
	} else {
		log.Warn("database disabled; routes are not persisted and reservation endpoints are off")
	}

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize map providers
	googleClient, err := google.NewClient(cfg.Maps.APIKey, cfg.Maps.Timeout, log)
	if err != nil {
		log.Fatal("failed to create maps client", zap.Error(err))
	}

	var places activity.PlacesFinder = googleClient
	if cfg.Maps.PlacesProvider == "overpass" {
		places = overpass.NewClient(cfg.Maps.OverpassEndpoint, cfg.Maps.Timeout, log)
	}

	var geocoder route.Geocoder = googleClient
	if cfg.Valkey.Addr != "" {
		store, err := cache.NewValkeyStore(cfg.Valkey.Addr)
		if err != nil {
			log.Fatal("failed to connect to valkey", zap.Error(err))
		}
		defer store.Close()
		geocoder = cache.NewGeocoder(googleClient, store, cfg.Valkey.TTL, log)
	}

	// Initialize application services
	var routeRepo route.SavedRouteRepository
	if db != nil {
		routeRepo = repository.NewGormRouteRepository(db)
	}

	travelService := application.NewTravelService(
		googleClient,
		places,
		geocoder,
		routeRepo,
		kafkaProducer,
		application.TravelServiceOptions{
			Aggregator: application.AggregatorOptions{
				Concurrency:       cfg.Travel.LookupConcurrency,
				LookupTimeout:     cfg.Travel.LookupTimeout,
				SkipFailedLookups: cfg.Travel.SkipFailedLookups,
			},
			RequestTimeout:   cfg.Travel.RequestTimeout,
			NearbyStepPoints: cfg.Travel.NearbyStepPoints,
			GeocodeLanguage:  cfg.Maps.Language,
		},
		log,
	)
	paymentService := application.NewPaymentService(stripe.NewGateway(cfg.Stripe.SecretKey), cfg.AppEnv, kafkaProducer, log)

	var userService *application.UserService
	var reservationService *application.ReservationService
	if db != nil {
		userService = application.NewUserService(
			repository.NewGormUserRepository(db),
			repository.NewGormPreferenceRepository(db),
			log,
		)
		reservationService = application.NewReservationService(
			repository.NewGormReservationRepository(db),
			paymentService,
			kafkaProducer,
			log,
		)
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(metrics.Middleware())

	// Register health check and metrics routes
	healthHandler := health.NewHandler(db, serviceName)
	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", metrics.Handler())

	// Register routes
	handler.NewTravelHandler(travelService, userService).RegisterRoutes(&router.RouterGroup)
	handler.NewPaymentHandler(paymentService).RegisterRoutes(&router.RouterGroup)
	if db != nil {
		handler.NewUserHandler(userService).RegisterRoutes(&router.RouterGroup)
		handler.NewReservationHandler(reservationService).RegisterRoutes(&router.RouterGroup)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-travel...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-travel stopped")
}

// connectDatabase opens the pool and brings the schema up to date:
// auto-migration in development, SQL migrations elsewhere.
func connectDatabase(cfg *config.ServiceConfig, log *zap.Logger) *gorm.DB {
	dbConfig := database.PostgresConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.UserPreferenceModel{},
			&repository.ActivityModel{},
			&repository.RouteModel{},
			&repository.RouteActivityModel{},
			&repository.ReservationModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
		return db
	}

	if err := database.RunMigrations(dbConfig.DatabaseURL(), cfg.Database.MigrationsPath, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	return db
}
