package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, weights, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Match     MatchConfig
	Claim     ClaimConfig
	Redis     RedisConfig
	AMQP      AMQPConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
	// Service time zone used to evaluate organization opening hours.
	TimeZone string `envconfig:"SERVICE_TIMEZONE" default:"UTC"`

	ReadHeaderTimeout time.Duration `envconfig:"SERVER_READ_HEADER_TIMEOUT" default:"5s"`
	ShutdownTimeout   time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
}

type StoreConfig struct {
	// postgres | memory
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
	// Apply embedded migrations on startup.
	AutoMigrate bool `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"saveserve"`
	Password string `envconfig:"DB_PASSWORD" default:""`
	DBName   string `envconfig:"DB_NAME" default:"saveserve"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`

	MaxConns       int32         `envconfig:"DB_MAX_CONNS" default:"20"`
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"30s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// Tokens are issued by the account service; this service only verifies them.
type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
	// Empty disables the iss check.
	Issuer string `envconfig:"JWT_ISSUER" default:""`
}

type MatchConfig struct {
	WeightDistance  float64       `envconfig:"MATCH_WEIGHT_DISTANCE" default:"0.6"`
	WeightCapacity  float64       `envconfig:"MATCH_WEIGHT_CAPACITY" default:"0.3"`
	WeightRecency   float64       `envconfig:"MATCH_WEIGHT_RECENCY" default:"0.1"`
	DonationHorizon time.Duration `envconfig:"MATCH_RECENCY_HORIZON" default:"24h"`
	ActivityHorizon time.Duration `envconfig:"MATCH_ACTIVITY_HORIZON" default:"168h"`
	RankTimeout     time.Duration `envconfig:"RANK_TIMEOUT" default:"2s"`
	// Default radius for nearby donation search; organizations use their own service radius.
	NearbyRadiusKm    float64 `envconfig:"NEARBY_DONATION_RADIUS_KM" default:"25"`
	NearbyOrgRadiusKm float64 `envconfig:"NEARBY_ORGANIZATION_RADIUS_KM" default:"50"`
	MaxResults        int     `envconfig:"MATCH_MAX_RESULTS" default:"100"`
}

type ClaimConfig struct {
	Timeout         time.Duration `envconfig:"CLAIM_TIMEOUT" default:"3s"`
	RateLimit       int           `envconfig:"CLAIM_RATE_LIMIT" default:"30"`
	RateLimitWindow time.Duration `envconfig:"CLAIM_RATE_WINDOW" default:"1m"`
}

type RedisConfig struct {
	// Empty disables claim rate limiting.
	URL    string `envconfig:"REDIS_URL" default:""`
	Prefix string `envconfig:"REDIS_RATE_LIMIT_PREFIX" default:"saveserve:rate_limit"`
}

type AMQPConfig struct {
	// Empty selects the logging fallback publisher.
	URL      string `envconfig:"RABBITMQ_URL" default:""`
	Exchange string `envconfig:"RABBITMQ_EXCHANGE" default:"saveserve.events"`
}

type SchedulerConfig struct {
	Enabled     bool   `envconfig:"SCHEDULER_ENABLED" default:"true"`
	ExpirySpec  string `envconfig:"SCHEDULER_EXPIRY_SPEC" default:"@every 1m"`
	OutboxSpec  string `envconfig:"SCHEDULER_OUTBOX_SPEC" default:"@every 10s"`
	OutboxBatch int    `envconfig:"SCHEDULER_OUTBOX_BATCH" default:"100"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c ServerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c JWTConfig) TokenDuration() (time.Duration, error) {
	return time.ParseDuration(c.Duration)
}

// Validate catches settings that would otherwise only fail on first use.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("STORE_DRIVER must be postgres or memory, got %q", c.Store.Driver)
	}
	if _, err := time.LoadLocation(c.Server.TimeZone); err != nil {
		return fmt.Errorf("invalid SERVICE_TIMEZONE: %w", err)
	}
	if d, err := c.JWT.TokenDuration(); err != nil || d <= 0 {
		return fmt.Errorf("JWT_DURATION must be a positive duration, got %q", c.JWT.Duration)
	}
	return nil
}

// LoadConfig reads an optional .env file before processing the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:              "8889", // Test port
			TimeZone:          "UTC",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   time.Second,
		},
		Store: StoreConfig{Driver: "postgres"},
		DB: DBConfig{
			Host:           "localhost",
			Port:           "15433", // Test DB port
			User:           "test",
			Password:       "test",
			DBName:         "test_db",
			SSLMode:        "disable",
			TimeZone:       "UTC",
			MaxConns:       10,
			ConnectTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Match: MatchConfig{
			WeightDistance:    0.6,
			WeightCapacity:    0.3,
			WeightRecency:     0.1,
			DonationHorizon:   24 * time.Hour,
			ActivityHorizon:   7 * 24 * time.Hour,
			RankTimeout:       2 * time.Second,
			NearbyRadiusKm:    25,
			NearbyOrgRadiusKm: 50,
			MaxResults:        100,
		},
		Claim: ClaimConfig{
			Timeout:         3 * time.Second,
			RateLimit:       0,
			RateLimitWindow: time.Minute,
		},
		AMQP: AMQPConfig{Exchange: "saveserve.events"},
		Scheduler: SchedulerConfig{
			Enabled:     false,
			ExpirySpec:  "@every 1m",
			OutboxSpec:  "@every 10s",
			OutboxBatch: 100,
		},
	}
}
