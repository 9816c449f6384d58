package config

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// devJWTSecret is only ever used when APP_ENV=dev. Outside dev a missing
// JWT_SECRET is a startup error.
const devJWTSecret = "dev-only-insecure-secret"

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set outside dev")

type Config struct {
	Env  string
	Port int

	DBURL string

	JWTSecret string

	RedisAddr     string
	RedisPassword string

	OTLPEndpoint string

	CORSAllowedOrigins []string

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

func Load() (Config, error) {
	// best effort; real env vars win over .env entries
	_ = godotenv.Load()

	cfg := Config{
		Env:           getEnv("APP_ENV", "dev"),
		Port:          getEnvInt("PORT", 8080),
		DBURL:         buildDBURL(),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		OTLPEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminName:     getEnv("ADMIN_NAME", "Admin"),
	}

	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	if cfg.JWTSecret == "" {
		if cfg.Env != "dev" {
			return Config{}, ErrMissingJWTSecret
		}
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "acquisitions")
	pass := getEnv("DB_PASSWORD", "acquisitions")
	name := getEnv("DB_NAME", "acquisitions")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}
	return fallback
}
