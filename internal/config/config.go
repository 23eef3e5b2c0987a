package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServiceConfig holds all configuration for the travel service.
type ServiceConfig struct {
	AppEnv   string         `mapstructure:"app_env"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Valkey   ValkeyConfig   `mapstructure:"valkey"`
	Maps     MapsConfig     `mapstructure:"maps"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	Travel   TravelConfig   `mapstructure:"travel"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"dbname"`
	SSLMode        string `mapstructure:"sslmode"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
}

// ValkeyConfig configures the geocode cache. An empty Addr disables caching.
type ValkeyConfig struct {
	Addr string        `mapstructure:"addr"`
	TTL  time.Duration `mapstructure:"ttl"`
}

// MapsConfig selects and configures the mapping/places provider.
type MapsConfig struct {
	// PlacesProvider is "google" or "overpass". Directions and geocoding always use Google.
	PlacesProvider   string        `mapstructure:"places_provider"`
	APIKey           string        `mapstructure:"api_key"`
	Language         string        `mapstructure:"language"`
	OverpassEndpoint string        `mapstructure:"overpass_endpoint"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

// TravelConfig tunes the along-route aggregation.
type TravelConfig struct {
	LookupConcurrency int           `mapstructure:"lookup_concurrency"`
	LookupTimeout     time.Duration `mapstructure:"lookup_timeout"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	SkipFailedLookups bool          `mapstructure:"skip_failed_lookups"`
	NearbyStepPoints  int           `mapstructure:"nearby_step_points"`
}

// Load reads configuration from defaults, an optional config.yaml and TRAVEL_* environment variables.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// TRAVEL_DATABASE_HOST -> database.host
	v.SetEnvPrefix("TRAVEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg ServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.cors_origins", []string{})

	v.SetDefault("database.enabled", true)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "travel")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "travel")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.migrations_path", "migrations")

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})

	v.SetDefault("valkey.addr", "")
	v.SetDefault("valkey.ttl", 24*time.Hour)

	v.SetDefault("maps.places_provider", "google")
	v.SetDefault("maps.api_key", "")
	v.SetDefault("maps.language", "fr")
	v.SetDefault("maps.overpass_endpoint", "https://overpass-api.de/api/interpreter")
	v.SetDefault("maps.timeout", 30*time.Second)

	v.SetDefault("stripe.secret_key", "")

	v.SetDefault("travel.lookup_concurrency", 4)
	v.SetDefault("travel.lookup_timeout", 10*time.Second)
	v.SetDefault("travel.request_timeout", 60*time.Second)
	v.SetDefault("travel.skip_failed_lookups", false)
	v.SetDefault("travel.nearby_step_points", 10)
}

// Validate checks that required configuration fields are present and sane.
func (c *ServiceConfig) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Database.Enabled {
		if c.Database.Host == "" {
			errs = append(errs, "database.host is required")
		}
		if c.Database.DBName == "" {
			errs = append(errs, "database.dbname is required")
		}
	}
	if len(c.Kafka.Brokers) == 0 {
		errs = append(errs, "kafka.brokers is required")
	}
	if c.Valkey.Addr != "" && c.Valkey.TTL <= 0 {
		errs = append(errs, "valkey.ttl must be positive when valkey.addr is set")
	}
	if c.Maps.APIKey == "" {
		errs = append(errs, "maps.api_key is required")
	}
	switch c.Maps.PlacesProvider {
	case "google", "overpass":
	default:
		errs = append(errs, fmt.Sprintf("maps.places_provider must be google or overpass, got %q", c.Maps.PlacesProvider))
	}
	if c.Stripe.SecretKey == "" {
		errs = append(errs, "stripe.secret_key is required")
	}
	if c.Travel.LookupConcurrency < 1 {
		errs = append(errs, "travel.lookup_concurrency must be at least 1")
	}
	if c.Travel.LookupTimeout <= 0 {
		errs = append(errs, "travel.lookup_timeout must be positive")
	}
	if c.Travel.RequestTimeout <= 0 {
		errs = append(errs, "travel.request_timeout must be positive")
	}
	if c.Travel.NearbyStepPoints < 1 {
		errs = append(errs, "travel.nearby_step_points must be at least 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
