package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Catalog   CatalogConfig
	Favorites FavoritesConfig
	App       AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// BackendConfig describes the marketplace REST API the portal fronts.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
	RPS     float64
	Burst   int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DatabaseConfig is only used when favorites are stored in Postgres.
type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	MaxConns int
	MinConns int
}

type CatalogConfig struct {
	CacheTTL    time.Duration
	RefreshCron string
}

type FavoritesConfig struct {
	// Store is "redis" (session scoped) or "postgres" (durable).
	Store string
	TTL   time.Duration
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	ServiceName string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Backend: BackendConfig{
			BaseURL: ResolveBaseURL(
				os.Getenv("API_BASE_URL"),
				getEnv("PUBLIC_HOSTNAME", "localhost"),
				getEnv("API_LOCAL_URL", "http://localhost:5000"),
				os.Getenv("API_LAN_URL"),
			),
			Timeout: getEnvAsDuration("BACKEND_TIMEOUT", 15*time.Second),
			RPS:     getEnvAsFloat("BACKEND_RPS", 20),
			Burst:   getEnvAsInt("BACKEND_BURST", 40),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			DSN:      os.Getenv("DB_DSN"),
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Catalog: CatalogConfig{
			CacheTTL:    getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute),
			RefreshCron: getEnv("CATALOG_REFRESH_CRON", "0 */5 * * * *"),
		},
		Favorites: FavoritesConfig{
			Store: getEnv("FAVORITES_STORE", "redis"),
			TTL:   getEnvAsDuration("FAVORITES_TTL", 7*24*time.Hour),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			ServiceName: getEnv("SERVICE_NAME", "plan-portal"),
		},
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = cfg.Database.BuildDSN()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Backend.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}

	if c.Backend.RPS <= 0 {
		return fmt.Errorf("BACKEND_RPS must be positive")
	}

	switch c.Favorites.Store {
	case "redis":
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("DB_DSN is required when FAVORITES_STORE=postgres")
		}
	default:
		return fmt.Errorf("FAVORITES_STORE must be redis or postgres, got %q", c.Favorites.Store)
	}

	return nil
}

// BuildDSN assembles a connection string from the individual DB_* settings.
// It returns "" unless host, user and database name are all set.
func (d DatabaseConfig) BuildDSN() string {
	if d.Host == "" || d.User == "" || d.Name == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name,
	)
}

// ResolveBaseURL picks the backend URL. An explicit URL always wins; otherwise
// the local URL is used when the portal is served from localhost and the LAN
// URL everywhere else.
func ResolveBaseURL(explicit, hostname, localURL, lanURL string) string {
	if explicit != "" {
		return explicit
	}
	if hostname == "localhost" || hostname == "127.0.0.1" || lanURL == "" {
		return localURL
	}
	return lanURL
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
