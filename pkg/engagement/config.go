package engagement

import (
	"fmt"
	"time"

	"github.com/expo-parsely/engagement-tracker/pkg/bridge"
)

// Parse.ly engaged-time defaults.
const (
	DefaultHeartbeatIntervalSeconds = 150
	DefaultActiveTimeoutSeconds     = 5
)

// HeartbeatFunc receives the engaged seconds represented by a heartbeat.
type HeartbeatFunc func(engagedSeconds int)

// Config holds the tunables of a Tracker.
type Config struct {
	EnableHeartbeats         bool
	HeartbeatIntervalSeconds int
	ActiveTimeoutSeconds     int

	// MaxSessionDurationSeconds ends a session at the first engaged check
	// past this age. Zero means unlimited.
	MaxSessionDurationSeconds int

	// OnHeartbeat is optional.
	OnHeartbeat HeartbeatFunc

	// Engagement is forwarded to the bridge when a session starts.
	Engagement bridge.EngagementOptions
}

// DefaultConfig returns the Parse.ly standard configuration.
func DefaultConfig() Config {
	return Config{
		EnableHeartbeats:         true,
		HeartbeatIntervalSeconds: DefaultHeartbeatIntervalSeconds,
		ActiveTimeoutSeconds:     DefaultActiveTimeoutSeconds,
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.HeartbeatIntervalSeconds <= 0 {
		return fmt.Errorf("%w: heartbeat interval must be positive, got %d", ErrInvalidConfig, c.HeartbeatIntervalSeconds)
	}
	if c.ActiveTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: active timeout must be positive, got %d", ErrInvalidConfig, c.ActiveTimeoutSeconds)
	}
	if c.MaxSessionDurationSeconds < 0 {
		return fmt.Errorf("%w: max session duration cannot be negative, got %d", ErrInvalidConfig, c.MaxSessionDurationSeconds)
	}
	return nil
}

func (c Config) interval() time.Duration {
	return time.Duration(c.HeartbeatIntervalSeconds) * time.Second
}

func (c Config) activeTimeout() time.Duration {
	return time.Duration(c.ActiveTimeoutSeconds) * time.Second
}

func (c Config) maxDuration() time.Duration {
	return time.Duration(c.MaxSessionDurationSeconds) * time.Second
}

// ConfigPatch is a partial Config. Nil fields leave the current value alone.
type ConfigPatch struct {
	EnableHeartbeats          *bool
	HeartbeatIntervalSeconds  *int
	ActiveTimeoutSeconds      *int
	MaxSessionDurationSeconds *int
	OnHeartbeat               HeartbeatFunc
	Engagement                *bridge.EngagementOptions
}

// Apply returns c with the non-nil fields of p merged over it.
func (p ConfigPatch) Apply(c Config) Config {
	if p.EnableHeartbeats != nil {
		c.EnableHeartbeats = *p.EnableHeartbeats
	}
	if p.HeartbeatIntervalSeconds != nil {
		c.HeartbeatIntervalSeconds = *p.HeartbeatIntervalSeconds
	}
	if p.ActiveTimeoutSeconds != nil {
		c.ActiveTimeoutSeconds = *p.ActiveTimeoutSeconds
	}
	if p.MaxSessionDurationSeconds != nil {
		c.MaxSessionDurationSeconds = *p.MaxSessionDurationSeconds
	}
	if p.OnHeartbeat != nil {
		c.OnHeartbeat = p.OnHeartbeat
	}
	if p.Engagement != nil {
		c.Engagement = *p.Engagement
	}
	return c
}

// Bool returns a pointer to v, for building patches.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for building patches.
func Int(v int) *int { return &v }
