package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT    JWTConfig
	SQLite SQLiteConfig
	Redis  RedisConfig
	Seed   SeedConfig
}

type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET"`
	Issuer   string        `env:"JWT_ISSUER,   default=project-tracker"`
	Audience string        `env:"JWT_AUDIENCE, default=project-tracker-client"`
	TokenTTL time.Duration `env:"TOKEN_TTL,    default=1h"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH,  default=app.db"`
	// Reset drops and recreates all tables at startup, destroying persisted
	// data. Opt-in only.
	Reset bool `env:"SQLITE_RESET, default=false"`
}

// RedisConfig is optional: an empty Addr disables login throttling.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// SeedConfig holds the passwords for the three fixed startup accounts.
type SeedConfig struct {
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=Admin@123"`
	WritePassword string `env:"SEED_WRITE_PASSWORD, default=Write@123"`
	ReadPassword  string `env:"SEED_READ_PASSWORD,  default=Read@123"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
