// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// In production (Docker/K8s), environment variables are injected directly
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env file found or error loading it: %v (this is normal in production)", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	return Parse()
}

// Parse reads the configuration from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	ports := []struct {
		name string
		port int
	}{
		{"HTTP_PORT", c.HTTPPort},
		{"GRPC_PORT", c.GRPCPort},
		{"METRICS_PORT", c.MetricsPort},
	}
	seen := make(map[int]string)
	for _, p := range ports {
		if p.port < 1 || p.port > 65535 {
			return fmt.Errorf("invalid %s: %d (must be 1-65535)", p.name, p.port)
		}
		if other, ok := seen[p.port]; ok {
			return fmt.Errorf("%s and %s cannot share port %d", other, p.name, p.port)
		}
		seen[p.port] = p.name
	}

	if c.InstanceID == "" {
		return fmt.Errorf("INSTANCE_ID is required")
	}
	if c.ProfilePath == "" {
		return fmt.Errorf("PROFILE_PATH is required")
	}
	if c.StatusPollIntervalMs <= 0 {
		return fmt.Errorf("invalid STATUS_POLL_INTERVAL_MS: %d (must be positive)", c.StatusPollIntervalMs)
	}

	if c.RedisEnabled {
		if c.RedisHost == "" {
			return fmt.Errorf("REDIS_HOST is required when REDIS_ENABLED is true")
		}
		if c.RedisMaxRetries < 0 {
			return fmt.Errorf("invalid REDIS_MAX_RETRIES: %d", c.RedisMaxRetries)
		}
		if c.StatusTTLSeconds <= 0 {
			return fmt.Errorf("invalid STATUS_TTL_SECONDS: %d (must be positive)", c.StatusTTLSeconds)
		}
	}

	if c.OtelEnabled {
		u, err := url.Parse(c.ZipkinEndpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid OTEL_EXPORTER_ZIPKIN_ENDPOINT: %q", c.ZipkinEndpoint)
		}
	}

	return nil
}

// RedisAddr returns the host:port address of Redis.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// StatusPollInterval returns the debug overlay poll interval.
func (c *Config) StatusPollInterval() time.Duration {
	return time.Duration(c.StatusPollIntervalMs) * time.Millisecond
}

// StatusTTL returns how long status snapshots live in Redis.
func (c *Config) StatusTTL() time.Duration {
	return time.Duration(c.StatusTTLSeconds) * time.Second
}

// RedisRetryDelay returns the initial backoff between Redis connection attempts.
func (c *Config) RedisRetryDelay() time.Duration {
	return time.Duration(c.RedisRetryDelayMs) * time.Millisecond
}
