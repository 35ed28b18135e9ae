package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Backend modes
const (
	BackendModeHTTP = "http"
	BackendModeMock = "mock"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Tracker TrackerConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Auth    AuthConfig
}

// ServerConfig holds gateway server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development" validate:"oneof=development staging production"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10" validate:"gte=0"`
}

// BackendConfig describes how to reach the memory backend
type BackendConfig struct {
	Mode                string        `envconfig:"BACKEND_MODE" default:"http" validate:"oneof=http mock"`
	BaseURL             string        `envconfig:"BACKEND_URL" default:"http://localhost:8000" validate:"omitempty,url"`
	Timeout             time.Duration `envconfig:"BACKEND_TIMEOUT" default:"30s" validate:"gt=0"`
	MaxRetries          uint64        `envconfig:"BACKEND_MAX_RETRIES" default:"3"`
	MockProcessingDelay time.Duration `envconfig:"MOCK_PROCESSING_DELAY" default:"3s" validate:"gte=0"`
	MockSeed            bool          `envconfig:"MOCK_SEED" default:"true"`
}

// TrackerConfig holds job tracker settings
type TrackerConfig struct {
	PollInterval time.Duration `envconfig:"TRACKER_POLL_INTERVAL" default:"2s" validate:"gt=0"`
	SnapshotTTL  time.Duration `envconfig:"TRACKER_SNAPSHOT_TTL" default:"1h" validate:"gte=0"`
}

// CacheConfig selects the snapshot store
type CacheConfig struct {
	Driver string `envconfig:"CACHE_DRIVER" default:"memory" validate:"oneof=memory redis"`
	Prefix string `envconfig:"CACHE_PREFIX" default:"meetingmind:"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// AuthConfig holds bearer token settings. An empty secret disables auth.
type AuthConfig struct {
	JWTSecret   string        `envconfig:"JWT_SECRET"`
	TokenExpiry time.Duration `envconfig:"JWT_EXPIRY" default:"24h" validate:"gt=0"`
	Issuer      string        `envconfig:"JWT_ISSUER" default:"meetingmind"`
}

// Load loads configuration from .env and environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to read .env file: %v", err)
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Backend.Mode == BackendModeHTTP && c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_URL is required when BACKEND_MODE=http")
	}
	if c.Server.Environment == "production" && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// AuthEnabled reports whether the gateway requires bearer tokens
func (c *Config) AuthEnabled() bool {
	return c.Auth.JWTSecret != ""
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetServerAddr returns the address the gateway listens on
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
