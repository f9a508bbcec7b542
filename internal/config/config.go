// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
//
// Use struct tags to define:
// - `env:"VAR_NAME"` - the environment variable name
// - `env:",required"` - make it required
// - `envDefault:"value"` - set a default value
//
// Tracking behaviour (heartbeat intervals, elements, common parameters)
// lives in the YAML profile at ProfilePath, not here.
type Config struct {
	// ============================================================
	// Server configuration
	// ============================================================
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8000"`
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"EngagementTracker"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// ============================================================
	// Tracker configuration
	// ============================================================
	InstanceID string `env:"INSTANCE_ID" envDefault:"local"`
	SiteID     string `env:"PARSELY_SITE_ID"`

	// ============================================================
	// Redis configuration (status snapshots for the debug overlay)
	// ============================================================
	RedisEnabled      bool   `env:"REDIS_ENABLED" envDefault:"true"`
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`
	StatusTTLSeconds  int    `env:"STATUS_TTL_SECONDS" envDefault:"300"`

	// ============================================================
	// Profile configuration
	// ============================================================
	ProfilePath          string `env:"PROFILE_PATH" envDefault:"config/profile.yaml"`
	StatusPollIntervalMs int    `env:"STATUS_POLL_INTERVAL_MS" envDefault:"1000"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled    bool   `env:"OTEL_ENABLED" envDefault:"true"`
	ZipkinEndpoint string `env:"OTEL_EXPORTER_ZIPKIN_ENDPOINT" envDefault:"http://localhost:9411/api/v2/spans"`
}
