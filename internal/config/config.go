package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string        `mapstructure:"PORT"`
	Env           string        `mapstructure:"ENV"`
	MongoURL      string        `mapstructure:"MONGO_URL"`
	MongoDatabase string        `mapstructure:"MONGO_DATABASE"`
	CORSOrigins   []string      `mapstructure:"CORS_ORIGINS"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL"`
	BcryptCost    int           `mapstructure:"BCRYPT_COST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("MONGO_DATABASE", "screening")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SESSION_TTL", 0) // sessions never expire unless set
	v.SetDefault("BCRYPT_COST", 10)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("MONGO_URL")
	v.BindEnv("MONGO_DATABASE")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("SESSION_TTL")
	v.BindEnv("BCRYPT_COST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run. Outside development
// a MongoDB URL is required; the in-memory store is a development convenience
// only and loses all data on restart.
func (c *Config) Validate() error {
	if !c.IsDev() && c.MongoURL == "" {
		return fmt.Errorf("MONGO_URL is required when ENV is %q", c.Env)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative, got %s", c.SessionTTL)
	}
	// bcrypt rejects costs outside [4, 31]; fail fast instead of at the
	// first registration.
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	return nil
}
