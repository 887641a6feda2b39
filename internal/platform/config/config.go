package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

const (
	defaultPort            = "8080"
	defaultJWTSecret       = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer       = "splitbalance"
	defaultBaseCurrency    = "USD"
	defaultRateLimit       = "300-M"
	defaultMigrationsPath  = "file://migrations"
	defaultShutdownTimeout = 10 * time.Second
	defaultPosthogEndpoint = "https://eu.i.posthog.com"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	LogLevel        string
	JWTSecret       string
	JWTIssuer       string
	MigrationsPath  string
	ShutdownTimeout time.Duration

	// Balance engine
	BaseCurrency           string
	StrictExchangeRates    bool
	DefaultDisplayCurrency string // empty means per-currency breakdown

	// HTTP edge
	RateLimit          string
	CORSAllowedOrigins []string

	// Domain events; publishing is disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Product analytics; disabled when the key is empty
	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	v.SetDefault("MIGRATIONS_PATH", defaultMigrationsPath)
	v.SetDefault("SHUTDOWN_TIMEOUT", defaultShutdownTimeout.String())
	v.SetDefault("BASE_CURRENCY", defaultBaseCurrency)
	v.SetDefault("STRICT_EXCHANGE_RATES", true)
	v.SetDefault("DEFAULT_DISPLAY_CURRENCY", "")
	v.SetDefault("RATE_LIMIT", defaultRateLimit)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "splitbalance")
	v.SetDefault("AMQP_QUEUE", "splitbalance.expenses")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", defaultPosthogEndpoint)
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		MigrationsPath:      v.GetString("MIGRATIONS_PATH"),
		StrictExchangeRates: v.GetBool("STRICT_EXCHANGE_RATES"),
		RateLimit:           v.GetString("RATE_LIMIT"),
		AMQPURL:             v.GetString("AMQP_URL"),
		AMQPExchange:        v.GetString("AMQP_EXCHANGE"),
		AMQPQueue:           v.GetString("AMQP_QUEUE"),
		PosthogAPIKey:       v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:     v.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	shutdownStr := v.GetString("SHUTDOWN_TIMEOUT")
	shutdown, err := time.ParseDuration(shutdownStr)
	if err != nil || shutdown <= 0 {
		shutdown = defaultShutdownTimeout
		log.Printf("Warning: Invalid value for SHUTDOWN_TIMEOUT ('%s'). Defaulting to %s.\n", shutdownStr, shutdown)
	}
	cfg.ShutdownTimeout = shutdown

	cfg.BaseCurrency = strings.ToUpper(strings.TrimSpace(v.GetString("BASE_CURRENCY")))
	if len(cfg.BaseCurrency) != 3 {
		log.Printf("Warning: Invalid value for BASE_CURRENCY ('%s'). Defaulting to %s.\n", cfg.BaseCurrency, defaultBaseCurrency)
		cfg.BaseCurrency = defaultBaseCurrency
	}

	cfg.DefaultDisplayCurrency = strings.ToUpper(strings.TrimSpace(v.GetString("DEFAULT_DISPLAY_CURRENCY")))
	if cfg.DefaultDisplayCurrency != "" && len(cfg.DefaultDisplayCurrency) != 3 {
		log.Printf("Warning: Invalid value for DEFAULT_DISPLAY_CURRENCY ('%s'). Defaulting to per-currency breakdown.\n", cfg.DefaultDisplayCurrency)
		cfg.DefaultDisplayCurrency = ""
	}

	if _, err := limiter.NewRateFromFormatted(cfg.RateLimit); err != nil {
		log.Printf("Warning: Invalid value for RATE_LIMIT ('%s'). Defaulting to %s.\n", cfg.RateLimit, defaultRateLimit)
		cfg.RateLimit = defaultRateLimit
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if !cfg.StrictExchangeRates {
		log.Println("Warning: STRICT_EXCHANGE_RATES is false. Currencies without a rate are converted at 1.")
	}

	return cfg
}
