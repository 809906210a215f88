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
	Server   ServerConfig
	Database DatabaseConfig
	Query    QueryConfig
	JWT      JWTConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Monitor  MonitorConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
	APIPrefix   string
	LogLevel    string
	LogFormat   string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

// QueryConfig bounds every composed fetch.
type QueryConfig struct {
	Timeout      time.Duration
	DefaultLimit int
	MaxLimit     int
}

type JWTConfig struct {
	Secret string
}

// RedisConfig is optional; an empty Host disables revoked-token lookups.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type MonitorConfig struct {
	Schedule string // cron spec, empty disables the pool monitor
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")
	defaultLevel := "info"
	if environment == "development" {
		defaultLevel = "debug"
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "3005"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: environment,
			APIPrefix:   strings.TrimSuffix(getEnv("API_PREFIX", ""), "/"),
			LogLevel:    getEnv("LOG_LEVEL", defaultLevel),
			LogFormat:   getEnv("LOG_FORMAT", "console"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "admin"),
			Password:        getEnv("DB_PASSWORD", "1234"),
			DBName:          getEnv("DB_NAME", "catalog"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    parseInt(getEnv("DB_MAX_IDLE_CONNS", "10"), 10),
			MaxOpenConns:    parseInt(getEnv("DB_MAX_OPEN_CONNS", "100"), 100),
			ConnMaxLifetime: parseDuration(getEnv("DB_CONN_MAX_LIFETIME", "30m"), 30*time.Minute),
			SlowThreshold:   parseDuration(getEnv("DB_SLOW_THRESHOLD", "200ms"), 200*time.Millisecond),
		},
		Query: QueryConfig{
			Timeout:      parseDuration(getEnv("QUERY_TIMEOUT", "5s"), 5*time.Second),
			DefaultLimit: parseInt(getEnv("QUERY_DEFAULT_LIMIT", "200"), 200),
			MaxLimit:     parseInt(getEnv("QUERY_MAX_LIMIT", "500"), 500),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Monitor: MonitorConfig{
			Schedule: getEnv("DB_MONITOR_SCHEDULE", "@every 1m"),
		},
	}

	if config.Query.DefaultLimit <= 0 || config.Query.MaxLimit < config.Query.DefaultLimit {
		return nil, fmt.Errorf("invalid query limits: default=%d max=%d",
			config.Query.DefaultLimit, config.Query.MaxLimit)
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
