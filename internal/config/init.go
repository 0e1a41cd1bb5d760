package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppName string `mapstructure:"APP_NAME" validate:"required"`
	AppEnv  string `mapstructure:"APP_ENV" validate:"oneof=development production test"`
	AppPort string `mapstructure:"APP_PORT" validate:"required,numeric"`

	DBDriver string `mapstructure:"DB_DRIVER" validate:"oneof=mysql postgres sqlite"`
	DBDSN    string `mapstructure:"DB_DSN" validate:"required"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB" validate:"gte=0"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL" validate:"gt=0"`

	JWTSecret string        `mapstructure:"JWT_SECRET" validate:"required,min=16"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL" validate:"gt=0"`

	SentryDSN    string `mapstructure:"SENTRY_DSN"`
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// CORSOrigins is a comma separated allow list; "*" allows any origin.
	CORSOrigins string `mapstructure:"CORS_ORIGINS" validate:"required"`
}

var keys = []string{
	"APP_NAME", "APP_ENV", "APP_PORT",
	"DB_DRIVER", "DB_DSN",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL",
	"JWT_SECRET", "JWT_TTL",
	"SENTRY_DSN", "OTEL_EXPORTER_OTLP_ENDPOINT",
	"CORS_ORIGINS",
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	v := viper.New()
	v.SetDefault("APP_NAME", "blogify")
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", 5*time.Minute)
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("CORS_ORIGINS", "*")
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about when unmarshalling.
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.DBDriver = strings.ToLower(cfg.DBDriver)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.AppPort
}

// AllowedOrigins splits CORS_ORIGINS into trimmed, non-empty entries.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
