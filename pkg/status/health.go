// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package status

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const pingTimeout = 2 * time.Second

// Component states reported by HealthChecker.
const (
	HealthOK       = "ok"
	HealthDisabled = "disabled"
	HealthDown     = "down"
)

// Health is the result of a health check.
type Health struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthChecker reports on the snapshot store. A nil client reports the
// store as disabled, which is still healthy.
type HealthChecker struct {
	client *redis.Client
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(client *redis.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

// Check pings Redis.
func (h *HealthChecker) Check(ctx context.Context) error {
	if h.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := h.client.Ping(ctx).Result(); err != nil {
		logrus.Errorf("Redis health check failed: %v", err)
		return err
	}

	logrus.Debugf("Redis health check passed")
	return nil
}

// Report runs every check and summarizes it.
func (h *HealthChecker) Report(ctx context.Context) Health {
	report := Health{Status: HealthOK, Checks: map[string]string{}}

	switch {
	case h.client == nil:
		report.Checks["redis"] = HealthDisabled
	case h.Check(ctx) != nil:
		report.Checks["redis"] = HealthDown
		report.Status = HealthDown
	default:
		report.Checks["redis"] = HealthOK
	}
	return report
}

// IsHealthy returns true if every enabled dependency is reachable.
func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx) == nil
}
