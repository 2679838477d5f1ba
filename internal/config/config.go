package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default ports, one per service
const (
	StoryWeaverPort    = "5002"
	GalleryServicePort = "5004"
	RemixEnginePort    = "5006"
	UserPortfolioPort  = "5008"
)

// Config holds the runtime settings shared by every service binary
type Config struct {
	ServiceName string
	Port        string
	GinMode     string

	LogLevel  string
	LogFormat string

	DatabaseURL      string
	DBConnectTimeout time.Duration
	DBHealthTimeout  time.Duration
	DBQueryTimeout   time.Duration

	ShutdownTimeout time.Duration
}

// Load reads an optional .env file and then the process environment.
// defaultPort is used when PORT is unset.
func Load(serviceName, defaultPort string) (*Config, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv(serviceName, defaultPort)
}

// FromEnv builds a Config from the current environment without touching .env
func FromEnv(serviceName, defaultPort string) (*Config, error) {
	cfg := &Config{
		ServiceName: serviceName,
		Port:        getEnvOrDefault("PORT", defaultPort),
		GinMode:     os.Getenv("GIN_MODE"),
		LogLevel:    strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json")),
		DatabaseURL: DatabaseURL(),
	}

	durations := []struct {
		key    string
		def    time.Duration
		target *time.Duration
	}{
		{"DB_CONNECT_TIMEOUT", 3 * time.Second, &cfg.DBConnectTimeout},
		{"DB_HEALTH_TIMEOUT", 2 * time.Second, &cfg.DBHealthTimeout},
		{"DB_QUERY_TIMEOUT", 5 * time.Second, &cfg.DBQueryTimeout},
		{"SHUTDOWN_TIMEOUT", 5 * time.Second, &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		v, err := getDurationOrDefault(d.key, d.def)
		if err != nil {
			return nil, err
		}
		*d.target = v
	}

	switch cfg.LogFormat {
	case "json", "console":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT value %q: want json or console", cfg.LogFormat)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

// DatabaseURL returns DATABASE_URL or a URL assembled from the POSTGRES_* variables
func DatabaseURL() string {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return databaseURL
	}

	host := getEnvOrDefault("POSTGRES_HOST", "postgres-db")
	port := getEnvOrDefault("POSTGRES_PORT", "5432")
	user := getEnvOrDefault("POSTGRES_USER", "user")
	password := getEnvOrDefault("POSTGRES_PASSWORD", "pass")
	dbname := getEnvOrDefault("POSTGRES_DB", "dreamcanvas")
	sslmode := getEnvOrDefault("POSTGRES_SSLMODE", "disable")

	// Credentials may contain URL metacharacters such as @ / # : ?
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + dbname,
		RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
	}
	return u.String()
}

// getEnvOrDefault returns the environment variable value or a default value if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s value: must be positive", key)
	}
	return d, nil
}
