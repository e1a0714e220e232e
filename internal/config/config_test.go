package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "LOG_LEVEL", "PORT", "FRONTEND_URL", "MONGO_URI", "MONGO_DB", "REDIS_ADDR", "JWT_SECRET", "TOKEN_TTL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.AppEnv != "dev" {
		t.Fatalf("AppEnv = %q", cfg.AppEnv)
	}
	if cfg.HTTPPort != 5000 {
		t.Fatalf("HTTPPort = %d", cfg.HTTPPort)
	}
	if cfg.FrontendURL != "http://localhost:5173" {
		t.Fatalf("FrontendURL = %q", cfg.FrontendURL)
	}
	if cfg.MongoDB != "tienda" {
		t.Fatalf("MongoDB = %q", cfg.MongoDB)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("TokenTTL = %v", cfg.TokenTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "8080")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("TOKEN_TTL", "30m")

	cfg := Load()
	if cfg.AppEnv != "prod" {
		t.Fatalf("AppEnv = %q", cfg.AppEnv)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("HTTPPort = %d", cfg.HTTPPort)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Fatalf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("TokenTTL = %v", cfg.TokenTTL)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("TOKEN_TTL", "soon")

	cfg := Load()
	if cfg.HTTPPort != 5000 {
		t.Fatalf("HTTPPort = %d", cfg.HTTPPort)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("TokenTTL = %v", cfg.TokenTTL)
	}
}
