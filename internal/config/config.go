// Package config provides configuration for the offline service
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Remote   RemoteConfig
	Cache    CacheConfig
	Sync     SyncConfig
	Logging  LoggingConfig
	CORS     CORSConfig
}

// DatabaseConfig holds local store settings
type DatabaseConfig struct {
	Path string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// RemoteConfig holds remote document store API settings
type RemoteConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// CacheConfig holds cache manager settings
type CacheConfig struct {
	MaxAge           time.Duration
	RecommendedCount int
	CleanupSchedule  string
}

// SyncConfig holds sync queue replay settings
type SyncConfig struct {
	MaxAttempts int
	BaseBackoff time.Duration
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (return error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{}

	// Local store configuration
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		return nil, fmt.Errorf("DB_PATH is required")
	}
	cfg.Database.Path = dbPath

	// Remote document store configuration
	remoteBaseURL := os.Getenv("REMOTE_API_BASE_URL")
	if remoteBaseURL == "" {
		return nil, fmt.Errorf("REMOTE_API_BASE_URL is required")
	}
	cfg.Remote.BaseURL = remoteBaseURL
	cfg.Remote.APIKey = os.Getenv("REMOTE_API_KEY")

	remoteTimeoutStr := os.Getenv("REMOTE_API_TIMEOUT_SECONDS")
	if remoteTimeoutStr == "" {
		remoteTimeoutStr = "30" // default timeout
	}
	remoteTimeout, err := strconv.Atoi(remoteTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REMOTE_API_TIMEOUT_SECONDS: %w", err)
	}
	cfg.Remote.Timeout = time.Duration(remoteTimeout) * time.Second

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Cache configuration
	maxAgeHoursStr := os.Getenv("CACHE_MAX_AGE_HOURS")
	if maxAgeHoursStr == "" {
		maxAgeHoursStr = "168" // default seven days
	}
	maxAgeHours, err := strconv.Atoi(maxAgeHoursStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_MAX_AGE_HOURS: %w", err)
	}
	cfg.Cache.MaxAge = time.Duration(maxAgeHours) * time.Hour

	recommendedStr := os.Getenv("CACHE_RECOMMENDED_COUNT")
	if recommendedStr == "" {
		recommendedStr = "3" // default recommended set size
	}
	recommended, err := strconv.Atoi(recommendedStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_RECOMMENDED_COUNT: %w", err)
	}
	cfg.Cache.RecommendedCount = recommended

	cleanupSchedule := os.Getenv("CACHE_CLEANUP_SCHEDULE")
	if cleanupSchedule == "" {
		cleanupSchedule = "@weekly"
	}
	cfg.Cache.CleanupSchedule = cleanupSchedule

	// Sync configuration
	maxAttemptsStr := os.Getenv("SYNC_MAX_ATTEMPTS")
	if maxAttemptsStr == "" {
		maxAttemptsStr = "5"
	}
	maxAttempts, err := strconv.Atoi(maxAttemptsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_MAX_ATTEMPTS: %w", err)
	}
	if maxAttempts < 1 {
		return nil, fmt.Errorf("SYNC_MAX_ATTEMPTS must be at least 1, got %d", maxAttempts)
	}
	cfg.Sync.MaxAttempts = maxAttempts

	baseBackoffStr := os.Getenv("SYNC_BASE_BACKOFF_SECONDS")
	if baseBackoffStr == "" {
		baseBackoffStr = "30"
	}
	baseBackoff, err := strconv.Atoi(baseBackoffStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_BASE_BACKOFF_SECONDS: %w", err)
	}
	if baseBackoff < 1 {
		return nil, fmt.Errorf("SYNC_BASE_BACKOFF_SECONDS must be at least 1, got %d", baseBackoff)
	}
	cfg.Sync.BaseBackoff = time.Duration(baseBackoff) * time.Second

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		// Default to allow all origins if not specified (for development)
		cfg.CORS.AllowedOrigins = []string{"*"}
	} else {
		// Parse comma-separated origins
		origins := strings.Split(corsOrigins, ",")
		cfg.CORS.AllowedOrigins = make([]string, 0, len(origins))
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
			}
		}
		// If no valid origins found, default to allow all
		if len(cfg.CORS.AllowedOrigins) == 0 {
			cfg.CORS.AllowedOrigins = []string{"*"}
		}
	}

	return cfg, nil
}

// DSN returns the local store connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", c.Database.Path)
}
