// Package config loads the process-wide settings once at startup.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is read-only after Load returns.
type Config struct {
	Debug     bool   `env:"FLASKR_DEBUG,default=true"`
	SecretKey string `env:"FLASKR_SECRET_KEY,default=development key"`
	Username  string `env:"FLASKR_USERNAME,default=admin"`
	// Password is either plain text or an scrypt hash produced by cmd/hashpw.
	Password string `env:"FLASKR_PASSWORD,default=default"`

	Addr         string `env:"FLASKR_ADDR,default=0.0.0.0:8080"`
	CookieSecure bool   `env:"FLASKR_COOKIE_SECURE,default=false"`

	StoreDriver string `env:"FLASKR_STORE_DRIVER,default=redis"`
	EntriesKey  string `env:"FLASKR_ENTRIES_KEY,default=flaskr"`
	RedisURL    string `env:"FLASKR_REDIS_URL,default=redis://localhost:6379/0"`
	DatabaseDSN string `env:"FLASKR_DATABASE_DSN,default=data/flaskr.db"`
}

// Load reads the optional dotenv file at envFile and decodes the environment.
// Variables already present in the environment win over the file.
func Load(envFile string) (Config, error) {
	var cfg Config

	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	err := envdecode.Decode(&cfg)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, fmt.Errorf("decode env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverRedis, DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.SecretKey == "" {
		return errors.New("secret key must not be empty")
	}
	if c.EntriesKey == "" {
		return errors.New("entries key must not be empty")
	}
	return nil
}
