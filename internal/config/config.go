package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAppEnv              = "dev"
	defaultHTTPPort            = "8080"
	defaultDatabaseURL         = "warrantyhub.db"
	defaultJWTSecret           = "change-me-jwt-secret"
	defaultUserTokenTTL        = "168h"
	defaultCompanyTokenTTL     = "120h"
	defaultUploadDir           = "./uploads"
	defaultStaticURLBase       = "/static/uploads"
	defaultMaxUploadSize       = 10 << 20
	defaultMarketplaceCacheTTL = "5m"
	defaultCORSOrigins         = "http://localhost:3000,http://localhost:5173"
	defaultLogLevel            = "info"
)

type Config struct {
	AppEnv      string
	HTTPPort    string
	DatabaseURL string

	JWTSecret       string
	UserTokenTTL    time.Duration
	CompanyTokenTTL time.Duration

	UploadDir     string
	StaticURLBase string
	MaxUploadSize int64

	RedisURL            string
	MarketplaceCacheTTL time.Duration

	CORSAllowedOrigins []string
	LogLevel           string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", defaultAppEnv)
	v.SetDefault("HTTP_PORT", defaultHTTPPort)
	v.SetDefault("DATABASE_URL", defaultDatabaseURL)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("USER_TOKEN_TTL", defaultUserTokenTTL)
	v.SetDefault("COMPANY_TOKEN_TTL", defaultCompanyTokenTTL)
	v.SetDefault("UPLOAD_DIR", defaultUploadDir)
	v.SetDefault("STATIC_URL_BASE", defaultStaticURLBase)
	v.SetDefault("MAX_UPLOAD_SIZE", defaultMaxUploadSize)
	v.SetDefault("MARKETPLACE_CACHE_TTL", defaultMarketplaceCacheTTL)
	v.SetDefault("CORS_ALLOWED_ORIGINS", defaultCORSOrigins)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)

	cfg := &Config{
		AppEnv:        strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		HTTPPort:      strings.TrimSpace(v.GetString("HTTP_PORT")),
		DatabaseURL:   strings.TrimSpace(v.GetString("DATABASE_URL")),
		JWTSecret:     strings.TrimSpace(v.GetString("JWT_SECRET")),
		UploadDir:     strings.TrimSpace(v.GetString("UPLOAD_DIR")),
		StaticURLBase: strings.TrimRight(strings.TrimSpace(v.GetString("STATIC_URL_BASE")), "/"),
		MaxUploadSize: v.GetInt64("MAX_UPLOAD_SIZE"),
		RedisURL:      strings.TrimSpace(v.GetString("REDIS_URL")),
		LogLevel:      strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
	}
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	var err error
	if cfg.UserTokenTTL, err = parseDuration(v, "USER_TOKEN_TTL"); err != nil {
		return nil, err
	}
	if cfg.CompanyTokenTTL, err = parseDuration(v, "COMPANY_TOKEN_TTL"); err != nil {
		return nil, err
	}
	if cfg.MarketplaceCacheTTL, err = parseDuration(v, "MARKETPLACE_CACHE_TTL"); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.UserTokenTTL <= 0 {
		return fmt.Errorf("USER_TOKEN_TTL must be > 0")
	}
	if cfg.CompanyTokenTTL <= 0 {
		return fmt.Errorf("COMPANY_TOKEN_TTL must be > 0")
	}
	if cfg.MarketplaceCacheTTL <= 0 {
		return fmt.Errorf("MARKETPLACE_CACHE_TTL must be > 0")
	}
	if cfg.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be > 0")
	}
	if cfg.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDuration(v *viper.Viper, name string) (time.Duration, error) {
	value := strings.TrimSpace(v.GetString(name))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
