package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Access policies understood by the API middleware.
const (
	PolicyAllowAny                = "allow_any"
	PolicyAuthenticatedOrReadOnly = "authenticated_or_read_only"
	PolicyAuthenticated           = "authenticated"
)

// Config holds every setting the service reads at startup.
type Config struct {
	AppPort         string        `mapstructure:"APP_PORT" validate:"required"`
	DBDriver        string        `mapstructure:"DB_DRIVER" validate:"oneof=sqlite postgres"`
	DatabaseDSN     string        `mapstructure:"DATABASE_DSN" validate:"required"`
	DBDebug         bool          `mapstructure:"DB_DEBUG"`
	JWTSecret       string        `mapstructure:"JWT_SECRET" validate:"required"`
	JWTTTL          time.Duration `mapstructure:"JWT_TTL" validate:"gt=0"`
	AccessPolicy    string        `mapstructure:"ACCESS_POLICY" validate:"oneof=allow_any authenticated_or_read_only authenticated"`
	RabbitMQURL     string        `mapstructure:"RABBITMQ_URL"`
	RabbitExchange  string        `mapstructure:"RABBITMQ_EXCHANGE" validate:"required"`
	RabbitConsume   bool          `mapstructure:"RABBITMQ_CONSUME"`
	LogFormat       string        `mapstructure:"LOG_FORMAT" validate:"oneof=json text"`
	LogLevel        string        `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

var keys = []string{
	"APP_PORT", "DB_DRIVER", "DATABASE_DSN", "DB_DEBUG", "JWT_SECRET", "JWT_TTL",
	"ACCESS_POLICY", "RABBITMQ_URL", "RABBITMQ_EXCHANGE", "RABBITMQ_CONSUME",
	"LOG_FORMAT", "LOG_LEVEL", "SHUTDOWN_TIMEOUT",
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "gudang.db")
	v.SetDefault("DB_DEBUG", false)
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("ACCESS_POLICY", PolicyAllowAny)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "catalog")
	v.SetDefault("RABBITMQ_CONSUME", false)
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
}

// Load reads configuration from defaults, an optional config file and the
// environment, in increasing order of precedence.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	v.AutomaticEnv()
	// AutomaticEnv only answers Get calls; Unmarshal needs explicit bindings.
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	cfg.AccessPolicy = strings.ToLower(cfg.AccessPolicy)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
