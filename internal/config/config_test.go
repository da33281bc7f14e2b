package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("expected port 3000, got %s", cfg.Port)
	}
	if cfg.LowStockThreshold != 10 {
		t.Errorf("expected low stock threshold 10, got %d", cfg.LowStockThreshold)
	}
	if cfg.TransactionPageSize != 10 {
		t.Errorf("expected page size 10, got %d", cfg.TransactionPageSize)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if cfg.TracingEnabled() {
		t.Error("tracing must be off without an endpoint")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "development")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED_DEMO", "true")
	t.Setenv("OTEL_ENDPOINT", "otel.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || !cfg.Development() || !cfg.SeedDemo || !cfg.TracingEnabled() {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"port", "PORT", "http", "Port"},
		{"level", "LOG_LEVEL", "verbose", "LogLevel"},
		{"page size", "TRANSACTION_PAGE_SIZE", "500", "TransactionPageSize"},
		{"threshold parse", "LOW_STOCK_THRESHOLD", "many", "parse env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in %q", tt.want, err.Error())
			}
		})
	}
}
