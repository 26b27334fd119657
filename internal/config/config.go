package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
	Business  BusinessConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	CORSOrigins []string
	TimeZone    string
}

// RedisConfig is optional: an empty Addr disables the report cache, job locks and the event relay.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// RateLimitConfig uses the limiter format "<requests>-<period>", e.g. "100-15M".
type RateLimitConfig struct {
	Rate string
}

type StorageConfig struct {
	BasePath string
	BaseURL  string
}

type BusinessConfig struct {
	AnnualObjective  decimal.Decimal
	CarryOverCron    string
	DailyAlertsCron  string
	TokenCleanupCron string
	CacheTTL         time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "salon")
	v.SetDefault("DB_SSL_MODE", "disable")

	v.SetDefault("APP_PORT", 8080)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("TZ_NAME", "Europe/Paris")

	v.SetDefault("JWT_ACCESS_EXPIRATION_TIME", "1h")
	v.SetDefault("JWT_REFRESH_EXPIRATION_TIME", "168h")

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT", "100-15M")

	v.SetDefault("STORAGE_BASE_PATH", "./uploads")
	v.SetDefault("STORAGE_BASE_URL", "/uploads")

	v.SetDefault("ANNUAL_OBJECTIVE", "50000")
	v.SetDefault("CARRY_OVER_CRON", "0 0 1 * *")
	v.SetDefault("DAILY_ALERTS_CRON", "0 9 * * *")
	v.SetDefault("TOKEN_CLEANUP_CRON", "30 3 * * *")
	v.SetDefault("ANALYTICS_CACHE_TTL", "5m")
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded, using environment only")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config := &Config{}

	config.Database = DatabaseConfig{
		Host:     v.GetString("DB_HOST"),
		Port:     v.GetInt("DB_PORT"),
		User:     v.GetString("DB_USER"),
		Password: v.GetString("DB_PASSWORD"),
		Name:     v.GetString("DB_NAME"),
		SSLMode:  v.GetString("DB_SSL_MODE"),
	}

	config.App = AppConfig{
		Port:        v.GetInt("APP_PORT"),
		Env:         v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		TimeZone:    v.GetString("TZ_NAME"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            v.GetString("JWT_SECRET_KEY"),
		RefreshExpiration: v.GetString("JWT_REFRESH_EXPIRATION_TIME"),
		AccessExpiration:  v.GetString("JWT_ACCESS_EXPIRATION_TIME"),
	}

	config.Redis = RedisConfig{
		Addr:     v.GetString("REDIS_ADDR"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	config.RateLimit = RateLimitConfig{Rate: v.GetString("RATE_LIMIT")}

	config.Storage = StorageConfig{
		BasePath: v.GetString("STORAGE_BASE_PATH"),
		BaseURL:  v.GetString("STORAGE_BASE_URL"),
	}

	objective, err := decimal.NewFromString(v.GetString("ANNUAL_OBJECTIVE"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANNUAL_OBJECTIVE: %w", err)
	}
	cacheTTL, err := time.ParseDuration(v.GetString("ANALYTICS_CACHE_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_CACHE_TTL: %w", err)
	}
	config.Business = BusinessConfig{
		AnnualObjective:  objective,
		CarryOverCron:    v.GetString("CARRY_OVER_CRON"),
		DailyAlertsCron:  v.GetString("DAILY_ALERTS_CRON"),
		TokenCleanupCron: v.GetString("TOKEN_CLEANUP_CRON"),
		CacheTTL:         cacheTTL,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.App.Port <= 0 {
		return fmt.Errorf("APP_PORT must be positive")
	}
	if c.Business.AnnualObjective.IsNegative() {
		return fmt.Errorf("ANNUAL_OBJECTIVE must not be negative")
	}
	if _, err := time.LoadLocation(c.App.TimeZone); err != nil {
		return fmt.Errorf("invalid TZ_NAME %q: %w", c.App.TimeZone, err)
	}
	return nil
}

// Location returns the business time zone used for day, week and month boundaries.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LogLevel maps LOG_LEVEL onto slog levels, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func splitList(value string) []string {
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
