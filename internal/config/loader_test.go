package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return cfg
}

func TestParse_Defaults(t *testing.T) {
	cfg := validConfig(t)

	if cfg.HTTPPort != 8000 || cfg.GRPCPort != 6565 || cfg.MetricsPort != 8080 {
		t.Errorf("unexpected default ports: %d %d %d", cfg.HTTPPort, cfg.GRPCPort, cfg.MetricsPort)
	}
	if cfg.ProfilePath != "config/profile.yaml" {
		t.Errorf("unexpected profile path: %s", cfg.ProfilePath)
	}
	if cfg.StatusPollInterval() != time.Second {
		t.Errorf("expected 1s poll interval, got %v", cfg.StatusPollInterval())
	}
	if cfg.StatusTTL() != 5*time.Minute {
		t.Errorf("expected 5m status TTL, got %v", cfg.StatusTTL())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestParse_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("PARSELY_SITE_ID", "blog.example.com")
	t.Setenv("STATUS_POLL_INTERVAL_MS", "250")

	cfg := validConfig(t)

	if cfg.HTTPPort != 9000 {
		t.Errorf("expected HTTP port 9000, got %d", cfg.HTTPPort)
	}
	if cfg.RedisAddr() != "redis.internal:6380" {
		t.Errorf("unexpected redis addr: %s", cfg.RedisAddr())
	}
	if cfg.SiteID != "blog.example.com" {
		t.Errorf("unexpected site id: %s", cfg.SiteID)
	}
	if cfg.StatusPollInterval() != 250*time.Millisecond {
		t.Errorf("unexpected poll interval: %v", cfg.StatusPollInterval())
	}
}

func TestParse_InvalidValue(t *testing.T) {
	t.Setenv("GRPC_PORT", "not-a-number")

	if _, err := Parse(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port out of range", func(c *Config) { c.HTTPPort = 70000 }, "HTTP_PORT"},
		{"shared port", func(c *Config) { c.MetricsPort = c.GRPCPort }, "cannot share port"},
		{"empty instance", func(c *Config) { c.InstanceID = "" }, "INSTANCE_ID"},
		{"empty profile", func(c *Config) { c.ProfilePath = "" }, "PROFILE_PATH"},
		{"zero poll interval", func(c *Config) { c.StatusPollIntervalMs = 0 }, "STATUS_POLL_INTERVAL_MS"},
		{"missing redis host", func(c *Config) { c.RedisHost = "" }, "REDIS_HOST"},
		{"bad zipkin endpoint", func(c *Config) { c.ZipkinEndpoint = "not a url" }, "ZIPKIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}

	cfg := validConfig(t)
	cfg.RedisEnabled = false
	cfg.RedisHost = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("redis host should not be required when disabled: %v", err)
	}
}
