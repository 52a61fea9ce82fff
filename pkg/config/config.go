package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: every environment variable is read here and nowhere else
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (optional: catalog and saved analyses are disabled without it)
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Prediction inputs
	Artifacts ArtifactsConfig

	// External APIs
	FootballData FootballDataConfig
	News         NewsConfig

	// Caching
	Cache CacheConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Enabled reports whether a database URL was configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// ArtifactsConfig points at the pre-trained model bundle and static tables
type ArtifactsConfig struct {
	Dir          string // contains history/ and strength/
	FormationCSV string // formation strength table
	FormationSrc string // csv or db
	StrategyPath string // ensemble weight table (YAML); empty uses the built-in default
}

// FootballDataConfig holds the standings provider configuration
type FootballDataConfig struct {
	BaseURL        string
	Token          string
	RequestsPerMin int
	Competitions   []string // competition codes searched when resolving a team's schedule
}

// NewsConfig holds the headline scraper configuration
type NewsConfig struct {
	URL           string
	ItemSelector  string
	TitleSelector string
	LinkSelector  string
	Limit         int
}

// CacheConfig holds TTLs for cached external data
type CacheConfig struct {
	TeamsTTL     time.Duration
	NewsTTL      time.Duration
	StandingsTTL time.Duration
}

// Load reads configuration from environment variables
// ⭐ SSOT: the only function that calls os.Getenv()
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Artifacts: ArtifactsConfig{
			Dir:          getEnv("ARTIFACTS_DIR", "artifacts"),
			FormationCSV: getEnv("FORMATION_CSV", "artifacts/formation/formation_strength.csv"),
			FormationSrc: getEnv("FORMATION_SOURCE", "csv"),
			StrategyPath: getEnv("STRATEGY_PATH", ""),
		},

		FootballData: FootballDataConfig{
			BaseURL:        getEnv("FOOTBALL_DATA_BASE_URL", "https://api.football-data.org/v4"),
			Token:          getEnv("FOOTBALL_DATA_TOKEN", ""),
			RequestsPerMin: getEnvAsInt("FOOTBALL_DATA_RPM", 10),
			Competitions:   getEnvAsList("FOOTBALL_DATA_COMPETITIONS", "PL,PD,BL1,SA,FL1"),
		},

		News: NewsConfig{
			URL:           getEnv("NEWS_URL", "https://www.bbc.com/sport/football"),
			ItemSelector:  getEnv("NEWS_ITEM_SELECTOR", "article"),
			TitleSelector: getEnv("NEWS_TITLE_SELECTOR", "h3"),
			LinkSelector:  getEnv("NEWS_LINK_SELECTOR", "a"),
			Limit:         getEnvAsInt("NEWS_LIMIT", 20),
		},

		Cache: CacheConfig{
			TeamsTTL:     getEnvAsDuration("CACHE_TEAMS_TTL", "10m"),
			NewsTTL:      getEnvAsDuration("CACHE_NEWS_TTL", "15m"),
			StandingsTTL: getEnvAsDuration("CACHE_STANDINGS_TTL", "1h"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Monitoring
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Artifacts.Dir == "" {
		return fmt.Errorf("ARTIFACTS_DIR is required")
	}

	if c.Artifacts.FormationSrc != "csv" && c.Artifacts.FormationSrc != "db" {
		return fmt.Errorf("FORMATION_SOURCE must be one of: csv, db")
	}

	if c.Artifacts.FormationSrc == "db" && !c.Database.Enabled() {
		return fmt.Errorf("FORMATION_SOURCE=db requires DATABASE_URL")
	}

	if c.FootballData.RequestsPerMin <= 0 {
		return fmt.Errorf("FOOTBALL_DATA_RPM must be > 0")
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be <= DB_MAX_CONNS")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
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
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	valueStr := getEnv(key, defaultValue)

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
