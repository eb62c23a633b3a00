package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the gateway.
type Config struct {
	App    AppConfig
	Remote RemoteConfig
	Sync   SyncConfig
	Redis  RedisConfig
	Logger LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// RemoteConfig locates the Remote Complaint Service.
type RemoteConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// SyncConfig tunes polling and per-session bookkeeping.
type SyncConfig struct {
	ComplaintsPollSeconds int
	OfficersPollSeconds   int
	SessionIdleMinutes    int
	AlertBufferSize       int
}

// RedisConfig holds Redis connection values for the snapshot cache.
type RedisConfig struct {
	Enabled            bool
	Addr               string
	Password           string
	DB                 int
	SnapshotTTLMinutes int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "resolveit-gateway"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8090"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Remote: RemoteConfig{
			BaseURL:        strings.TrimRight(getEnv("REMOTE_BASE_URL", "http://localhost:8080/api"), "/"),
			TimeoutSeconds: getEnvAsInt("REMOTE_TIMEOUT_SECONDS", 0),
		},
		Sync: SyncConfig{
			ComplaintsPollSeconds: getEnvAsInt("COMPLAINTS_POLL_SECONDS", 10),
			OfficersPollSeconds:   getEnvAsInt("OFFICERS_POLL_SECONDS", 30),
			SessionIdleMinutes:    getEnvAsInt("SESSION_IDLE_MINUTES", 60),
			AlertBufferSize:       getEnvAsInt("ALERT_BUFFER_SIZE", 50),
		},
		Redis: RedisConfig{
			Enabled:            getEnvAsBool("REDIS_ENABLED", false),
			Addr:               getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:           os.Getenv("REDIS_PASSWORD"),
			DB:                 redisDB,
			SnapshotTTLMinutes: getEnvAsInt("SNAPSHOT_TTL_MINUTES", 1440),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Remote.BaseURL == "" {
		return fmt.Errorf("REMOTE_BASE_URL is required")
	}
	if cfg.Sync.ComplaintsPollSeconds <= 0 {
		return fmt.Errorf("COMPLAINTS_POLL_SECONDS must be positive")
	}
	if cfg.Sync.OfficersPollSeconds <= 0 {
		return fmt.Errorf("OFFICERS_POLL_SECONDS must be positive")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the HTTP client timeout; zero means none.
func (r RemoteConfig) Timeout() time.Duration {
	if r.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// ComplaintsPollInterval returns the complaint list refresh cadence.
func (s SyncConfig) ComplaintsPollInterval() time.Duration {
	return time.Duration(s.ComplaintsPollSeconds) * time.Second
}

// OfficersPollInterval returns the officer directory refresh cadence.
func (s SyncConfig) OfficersPollInterval() time.Duration {
	return time.Duration(s.OfficersPollSeconds) * time.Second
}

// SessionIdle returns how long an unused session is kept alive.
func (s SyncConfig) SessionIdle() time.Duration {
	if s.SessionIdleMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(s.SessionIdleMinutes) * time.Minute
}

// SnapshotTTL returns how long a cached working set survives in Redis.
func (r RedisConfig) SnapshotTTL() time.Duration {
	if r.SnapshotTTLMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(r.SnapshotTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
