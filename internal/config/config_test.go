package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("PORT")
	os.Unsetenv("ENV")
	os.Unsetenv("MONGO_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.MongoDatabase != "screening" {
		t.Errorf("expected default database screening, got %s", cfg.MongoDatabase)
	}
	if cfg.SessionTTL != 0 {
		t.Errorf("expected sessions to never expire by default, got %s", cfg.SessionTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("expected default bcrypt cost 10, got %d", cfg.BcryptCost)
	}
}

func TestLoad_WithMongoURL(t *testing.T) {
	os.Setenv("MONGO_URL", "mongodb://localhost:27017")
	defer os.Unsetenv("MONGO_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MongoURL != "mongodb://localhost:27017" {
		t.Errorf("expected MONGO_URL to be set, got %s", cfg.MongoURL)
	}
}

func TestValidate_RequiresMongoURLOutsideDev(t *testing.T) {
	c := &Config{Env: "production", BcryptCost: 10}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error when MONGO_URL is missing in production")
	}

	c.MongoURL = "mongodb://localhost:27017"
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_BcryptCostBounds(t *testing.T) {
	c := &Config{Env: "development", BcryptCost: 3}
	if err := c.Validate(); err == nil {
		t.Error("expected error for bcrypt cost below 4")
	}

	c.BcryptCost = 32
	if err := c.Validate(); err == nil {
		t.Error("expected error for bcrypt cost above 31")
	}

	c.BcryptCost = 12
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_NegativeSessionTTL(t *testing.T) {
	c := &Config{Env: "development", BcryptCost: 10, SessionTTL: -time.Minute}
	if err := c.Validate(); err == nil {
		t.Error("expected error for negative session TTL")
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}
