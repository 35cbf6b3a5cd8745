// Package config loads the immutable process configuration from environment
// variables. It is built once in main and injected into the components that
// need it; business logic never reads the environment directly.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=168h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	ClientURL string        `env:"CLIENT_URL, default=http://localhost:5173"`

	Mongo     MongoConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	RateLimit RateLimitConfig

	// NotificationWorkers sizes the email dispatcher worker pool.
	NotificationWorkers int `env:"NOTIFICATION_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=task_system"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"EMAIL_FROM,      default=noreply@taskmanager.local"`
	FromName string `env:"EMAIL_FROM_NAME, default=Task Manager"`
}

// RateLimitConfig throttles the auth endpoints per caller.
type RateLimitConfig struct {
	Max    int64         `env:"AUTH_RATE_LIMIT,        default=10"`
	Window time.Duration `env:"AUTH_RATE_LIMIT_WINDOW, default=15m"`
}

// IsProduction reports whether the process runs with production settings
// (JSON logs, no internal error details in responses).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
