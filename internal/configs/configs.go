package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "task-tracker-dev-secret"

type Config struct {
	AppEnv                 string
	AppURL                 string
	DatabaseDSN            string
	JWTSecret              string
	JWTIssuer              string
	JWTTTL                 time.Duration
	BcryptCost             int
	RateLimit              int
	RateLimitBackend       string
	RedisAddr              string
	RedisKeyPrefix         string
	HideForeignTasks       bool
	CORSAllowOrigins       []string
	ShutdownTimeoutSeconds int
}

func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	jwtTTL, err := getEnvAsInt("JWT_TTL_MINUTES", 24*60)
	if err != nil {
		return Config{}, err
	}
	bcryptCost, err := getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return Config{}, err
	}
	rateLimit, err := getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60)
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20)
	if err != nil {
		return Config{}, err
	}
	hideForeign, err := getEnvAsBool("TASK_HIDE_FOREIGN", false)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                 getEnv("APP_ENV", "development"),
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		JWTIssuer:              getEnv("JWT_ISSUER", "task-tracker"),
		JWTTTL:                 time.Duration(jwtTTL) * time.Minute,
		BcryptCost:             bcryptCost,
		RateLimit:              rateLimit,
		RateLimitBackend:       strings.ToLower(getEnv("RATE_LIMIT_BACKEND", "memory")),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisKeyPrefix:         getEnv("REDIS_KEY_PREFIX", "task_tracker:ratelimit:"),
		HideForeignTasks:       hideForeign,
		CORSAllowOrigins:       splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ShutdownTimeoutSeconds: shutdownTimeout,
	}

	if cfg.JWTSecret == "" && cfg.AppEnv == "development" {
		log.Println("JWT_SECRET not set, using development secret")
		cfg.JWTSecret = devJWTSecret
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.AppURL == "" {
		return fmt.Errorf("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set when APP_ENV is %q", cfg.AppEnv)
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must be greater than 0")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.RateLimitBackend != "memory" && cfg.RateLimitBackend != "redis" {
		return fmt.Errorf("RATE_LIMIT_BACKEND must be memory or redis, got %q", cfg.RateLimitBackend)
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}

func getEnvAsBool(key string, defaultVal bool) (bool, error) {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid boolean value for %s", key)
		}
		return b, nil
	}
	return defaultVal, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
