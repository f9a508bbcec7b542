// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/expo-parsely/engagement-tracker/internal/bootstrap"
	"github.com/expo-parsely/engagement-tracker/internal/config"
	"github.com/expo-parsely/engagement-tracker/internal/server"
	"github.com/expo-parsely/engagement-tracker/pkg/clock"
	"github.com/expo-parsely/engagement-tracker/pkg/engagement"
	"github.com/expo-parsely/engagement-tracker/pkg/metrics"
	"github.com/expo-parsely/engagement-tracker/pkg/profile"
	"github.com/expo-parsely/engagement-tracker/pkg/status"
)

// App holds all application components and manages their lifecycle.
type App struct {
	cfg               *config.Config
	components        *bootstrap.Components
	poller            *status.Poller
	httpServer        *server.HTTPServer
	grpcServer        *server.GRPCServer
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance.
//
// Initialization order:
//  1. Telemetry (so bridge calls made during setup are traced)
//  2. Redis (optional status snapshot store)
//  3. Tracking profile
//  4. Analytics bridge and tracking components
//  5. Status poller and its sinks
//  6. HTTP, gRPC and metrics servers
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, 0, cfg.ZipkinEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	if cfg.RedisEnabled {
		if err := app.initRedis(ctx); err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
	} else {
		logrus.Info("Redis disabled, status snapshots are kept in memory only")
	}

	trackingProfile, err := profile.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracking profile from %s: %w", cfg.ProfilePath, err)
	}
	logrus.Infof("loaded tracking profile from %s", cfg.ProfilePath)

	engagementMetrics := metrics.NewEngagement()

	analytics, err := bootstrap.InitBridge(ctx, cfg.SiteID, trackingProfile.CommonParameters(), engagementMetrics)
	if err != nil {
		return nil, fmt.Errorf("failed to init bridge: %w", err)
	}

	clk := clock.NewReal()
	observers := engagement.Observers{engagementMetrics, bootstrap.NewSessionLogger(logrus.StandardLogger())}
	app.components, err = bootstrap.InitTracker(ctx, clk, trackingProfile, analytics, observers)
	if err != nil {
		return nil, fmt.Errorf("failed to init tracker: %w", err)
	}
	dispatcher := bootstrap.InitDispatcher(app.components, analytics)

	feed := status.NewBroadcaster()
	sinks := []status.Sink{feed}
	if app.redisClient != nil {
		store := status.NewRedisStore(app.redisClient, cfg.InstanceID, cfg.StatusTTL())
		sinks = append(sinks, store)
		logrus.Infof("publishing status snapshots to %s", store.Key())
	}
	app.poller = status.NewPoller(clk, app.components.Tracker, status.PollerConfig{
		Interval: cfg.StatusPollInterval(),
	}, sinks...)

	app.httpServer = server.NewHTTPServer(cfg.HTTPPort, server.HTTPDependencies{
		Dispatcher: dispatcher,
		Status:     app.poller,
		Feed:       feed,
		Health:     status.NewHealthChecker(app.redisClient),
	})
	if err := app.httpServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup HTTP server: %w", err)
	}

	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort, cfg.ServiceName)
	if err := app.grpcServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics", engagementMetrics)
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// initRedis connects to Redis with exponential backoff.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisAddr(),
		Password:     a.cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = a.cfg.RedisRetryDelay()
	maxRetries := backoff.WithMaxRetries(backoff.WithContext(b, ctx), uint64(a.cfg.RedisMaxRetries))

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		maxRetries,
	)

	if err != nil {
		_ = client.Close()
		return err
	}

	a.redisClient = client
	logrus.Info("Redis client initialized")
	return nil
}
