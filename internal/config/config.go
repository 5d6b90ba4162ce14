package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	TelegramBotToken    string `env:"TELEGRAM_BOT_TOKEN,required"`
	TelegramPollTimeout int    `env:"TELEGRAM_POLL_TIMEOUT,default=60"`

	DBDriver          string        `env:"DB_DRIVER,default=sqlite"`
	SQLitePath        string        `env:"SQLITE_PATH,default=alerts.db"`
	DBHost            string        `env:"DB_HOST"`
	DBPort            int           `env:"DB_PORT,default=5432"`
	DBUser            string        `env:"DB_USER"`
	DBPassword        string        `env:"DB_PASSWORD"`
	DBName            string        `env:"DB_NAME"`
	DBSSLMode         string        `env:"DB_SSLMODE,default=disable"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=10"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=25"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=30m"`

	PricesBaseURL string        `env:"PRICES_BASE_URL,default=https://europe.albion-online-data.com/api/v2/stats"`
	PricesTimeout time.Duration `env:"PRICES_TIMEOUT,default=30s"`
	ItemsFile     string        `env:"ITEMS_FILE,default=items.json"`

	CheckInterval time.Duration `env:"CHECK_INTERVAL,default=5m"`
	CheckOverlap  string        `env:"CHECK_OVERLAP,default=skip"`
	CheckOnStart  bool          `env:"CHECK_ON_START,default=false"`

	// Empty disables the status API.
	HTTPAddr    string `env:"HTTP_ADDR"`
	StatusToken string `env:"STATUS_API_TOKEN"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	case "postgres":
		if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
			return errors.New("DB_HOST, DB_USER and DB_NAME are required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.HTTPAddr != "" && c.StatusToken == "" {
		return errors.New("STATUS_API_TOKEN is required when HTTP_ADDR is set")
	}

	if c.CheckInterval <= 0 {
		return errors.New("CHECK_INTERVAL must be positive")
	}
	return nil
}
