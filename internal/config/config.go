package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App struct {
		Env string
	}

	Log struct {
		Level     string
		Format    string
		Component string
		Source    bool
	}

	DB struct {
		DSN      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	HTTP struct {
		Host string
		Port string
	}

	SMTP struct {
		Host     string
		Port     int
		User     string
		Password string
		From     string
	}

	MinIO struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		BaseURL   string
		UseSSL    bool
	}

	JWT struct {
		Secret string
		TTL    time.Duration
	}

	Rating struct {
		// DailyLimit caps how many ratings a user may submit per calendar day.
		DailyLimit int
	}
}

func New() *Config {
	cfg := &Config{}

	cfg.App.Env = getEnvDefault("APP_ENV", "development")

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "http_server")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// Database
	cfg.DB.DSN = os.Getenv("MYSQL_DSN")
	if cfg.DB.DSN == "" {
		cfg.DB.Host = getEnvDefault("DB_HOST", "localhost")
		cfg.DB.Port = getEnvDefault("DB_PORT", "3306")
		cfg.DB.User = getEnvDefault("DB_USER", "root")
		cfg.DB.Password = getEnvDefault("DB_PASSWORD", "root")
		cfg.DB.Name = getEnvDefault("DB_NAME", "epg")

		cfg.DB.DSN = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name,
		)
	}

	// Redis (advisory distance cache)
	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	// HTTP
	cfg.HTTP.Host = getEnvDefault("HTTP_HOST", "127.0.0.1")
	cfg.HTTP.Port = getEnvDefault("HTTP_PORT", "8080")

	// SMTP (match notifications)
	cfg.SMTP.Host = getEnvDefault("SMTP_HOST", "")
	cfg.SMTP.Port = getEnvInt("SMTP_PORT", 587)
	cfg.SMTP.User = getEnvDefault("SMTP_USER", "")
	cfg.SMTP.Password = getEnvDefault("SMTP_PASSWORD", "")
	cfg.SMTP.From = getEnvDefault("SMTP_FROM", cfg.SMTP.User)

	// MinIO (avatar storage)
	cfg.MinIO.Endpoint = getEnvDefault("MINIO_ENDPOINT", "")
	cfg.MinIO.AccessKey = getEnvDefault("MINIO_ACCESS_KEY", "")
	cfg.MinIO.SecretKey = getEnvDefault("MINIO_SECRET_KEY", "")
	cfg.MinIO.Bucket = getEnvDefault("MINIO_BUCKET", "avatars")
	cfg.MinIO.BaseURL = getEnvDefault("MINIO_BASE_URL", "")
	cfg.MinIO.UseSSL = isTruthy(os.Getenv("MINIO_USE_SSL"))

	// JWT token placeholder
	cfg.JWT.Secret = getEnvDefault("JWT_SECRET", "dev-secret")
	cfg.JWT.TTL = time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour

	// Rating quota
	cfg.Rating.DailyLimit = getEnvInt("RATING_LIMIT_PER_DAY", 5)

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
