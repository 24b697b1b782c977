package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("expected default driver postgres, got %s", cfg.Database.Driver)
	}
	if cfg.Aggregation.Locale != "pt-BR" {
		t.Errorf("expected default locale pt-BR, got %s", cfg.Aggregation.Locale)
	}
	if cfg.Aggregation.WithdrawalCategory != "Sangria" {
		t.Errorf("expected default withdrawal category Sangria, got %s", cfg.Aggregation.WithdrawalCategory)
	}
	if cfg.Redis.ChartTTL != 30*time.Minute {
		t.Errorf("expected default chart TTL 30m, got %s", cfg.Redis.ChartTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("CHART_LOCALE", "en-US")
	t.Setenv("REDIS_CHART_TTL", "5m")
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("AGGREGATION_RATE_LIMIT", "not-a-number")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Aggregation.Locale != "en-US" {
		t.Errorf("expected locale en-US, got %s", cfg.Aggregation.Locale)
	}
	if cfg.Redis.ChartTTL != 5*time.Minute {
		t.Errorf("expected chart TTL 5m, got %s", cfg.Redis.ChartTTL)
	}
	if cfg.Scheduler.Enabled {
		t.Error("expected scheduler to be disabled")
	}
	if cfg.RateLimit.MaxRequests != 60 {
		t.Errorf("expected invalid rate limit to fall back to 60, got %d", cfg.RateLimit.MaxRequests)
	}
}
