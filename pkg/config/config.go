package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// DATABASE_URL: runtime connection (often PgBouncer/pooler)
	// DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	DB DBConfig

	// AuthSecret signs/verifies staff session tokens (HS256).
	AuthSecret string

	// RedisAddr enables the room-event invalidation channel when set.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// DebounceWindow is the coalescing window for event-driven grid
	// recomputation.
	DebounceWindow time.Duration

	LogLevel  string
	LogFormat string

	// DeskAllowedOrigins is a comma-separated allowlist of origins for the
	// desk frontend. Example: https://desk.yourhotel.com,http://localhost:5173
	DeskAllowedOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	debounceMS, err := strconv.Atoi(env("REFRESH_DEBOUNCE_MS", "300"))
	if err != nil || debounceMS < 1 {
		debounceMS = 300
	}
	redisDB, err := strconv.Atoi(env("REDIS_DB", "0"))
	if err != nil {
		redisDB = 0
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "frontdesk"),
			User:     env("DB_USER", "frontdesk"),
			Password: env("DB_PASSWORD", "frontdesk"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		AuthSecret:     os.Getenv("AUTH_SECRET"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		DebounceWindow: time.Duration(debounceMS) * time.Millisecond,
		LogLevel:       env("LOG_LEVEL", "info"),
		LogFormat:      env("LOG_FORMAT", "json"),

		DeskAllowedOrigins: envList("DESK_ALLOWED_ORIGINS", "http://localhost:5173"),
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
