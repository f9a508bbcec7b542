// Package profile loads the tracking profile of an app from YAML.
package profile

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/expo-parsely/engagement-tracker/pkg/activity"
	"github.com/expo-parsely/engagement-tracker/pkg/bridge"
	"github.com/expo-parsely/engagement-tracker/pkg/common"
	"github.com/expo-parsely/engagement-tracker/pkg/element"
	"github.com/expo-parsely/engagement-tracker/pkg/engagement"
)

// Profile represents a complete tracking profile.
type Profile struct {
	SiteID     string                   `yaml:"site_id"`
	Heartbeat  HeartbeatConfig          `yaml:"heartbeat"`
	Engagement bridge.EngagementOptions `yaml:"engagement"`
	Activity   ActivityConfig           `yaml:"activity"`
	Common     bridge.CommonParameters  `yaml:"common"`
	Elements   []ElementConfig          `yaml:"elements,omitempty"`
}

// HeartbeatConfig represents the heartbeat section. Omitted fields keep the
// tracker defaults.
type HeartbeatConfig struct {
	Enabled                   *bool `yaml:"enabled,omitempty"`
	IntervalSeconds           *int  `yaml:"interval_seconds,omitempty"`
	ActiveTimeoutSeconds      *int  `yaml:"active_timeout_seconds,omitempty"`
	MaxSessionDurationMinutes *int  `yaml:"max_session_duration_minutes,omitempty"`
}

// ActivityConfig represents the gesture detection section.
type ActivityConfig struct {
	TouchEnabled    *bool    `yaml:"touch_enabled,omitempty"`
	ScrollEnabled   *bool    `yaml:"scroll_enabled,omitempty"`
	ScrollThreshold *float64 `yaml:"scroll_threshold,omitempty"`
	MoveThrottleMs  *int     `yaml:"move_throttle_ms,omitempty"`
	ScrollDecayMs   *int     `yaml:"scroll_decay_ms,omitempty"`
}

// ElementConfig represents a tracked element entry.
type ElementConfig struct {
	ID               string `yaml:"id"`
	Type             string `yaml:"type"`
	Location         string `yaml:"location,omitempty"`
	TrackImpressions *bool  `yaml:"track_impressions,omitempty"`
	TrackViews       *bool  `yaml:"track_views,omitempty"`
	ViewThresholdMs  int    `yaml:"view_threshold_ms,omitempty"`
}

// LoadProfile loads a profile from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a profile document.
func Parse(data []byte) (*Profile, error) {
	expanded := common.ExpandEnv(string(data))

	var p Profile
	if err := yaml.Unmarshal([]byte(expanded), &p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return &p, nil
}

// Validate checks the profile against the rules of each component.
func (p *Profile) Validate() error {
	if err := p.HeartbeatPatch().Apply(engagement.DefaultConfig()).Validate(); err != nil {
		return err
	}
	if err := p.ActivityConfig().Validate(); err != nil {
		return err
	}

	ids := make(map[string]bool)
	for _, def := range p.ElementDefinitions() {
		if err := def.Validate(); err != nil {
			return err
		}
		if ids[def.ID] {
			return fmt.Errorf("%w: duplicate element ID: %s", ErrInvalidProfile, def.ID)
		}
		ids[def.ID] = true
	}
	return nil
}

// HeartbeatPatch returns the tracker configuration described by the profile.
func (p *Profile) HeartbeatPatch() engagement.ConfigPatch {
	patch := engagement.ConfigPatch{
		EnableHeartbeats:         p.Heartbeat.Enabled,
		HeartbeatIntervalSeconds: p.Heartbeat.IntervalSeconds,
		ActiveTimeoutSeconds:     p.Heartbeat.ActiveTimeoutSeconds,
	}
	if p.Heartbeat.MaxSessionDurationMinutes != nil {
		patch.MaxSessionDurationSeconds = engagement.Int(*p.Heartbeat.MaxSessionDurationMinutes * 60)
	}
	if p.Engagement.URL != "" {
		target := p.Engagement
		if target.SiteID == "" {
			target.SiteID = p.SiteID
		}
		patch.Engagement = &target
	}
	return patch
}

// ActivityConfig returns the detector configuration described by the profile.
func (p *Profile) ActivityConfig() activity.Config {
	cfg := activity.DefaultConfig()
	a := p.Activity
	if a.TouchEnabled != nil {
		cfg.TouchEnabled = *a.TouchEnabled
	}
	if a.ScrollEnabled != nil {
		cfg.ScrollEnabled = *a.ScrollEnabled
	}
	if a.ScrollThreshold != nil {
		cfg.ScrollThreshold = *a.ScrollThreshold
	}
	if a.MoveThrottleMs != nil {
		cfg.MoveThrottle = time.Duration(*a.MoveThrottleMs) * time.Millisecond
	}
	if a.ScrollDecayMs != nil {
		cfg.ScrollDecay = time.Duration(*a.ScrollDecayMs) * time.Millisecond
	}
	return cfg
}

// ElementDefinitions returns the tracked elements. Impressions and views
// default to enabled.
func (p *Profile) ElementDefinitions() []element.Definition {
	defs := make([]element.Definition, 0, len(p.Elements))
	for _, e := range p.Elements {
		defs = append(defs, element.Definition{
			ID:               e.ID,
			Type:             e.Type,
			Location:         e.Location,
			TrackImpressions: e.TrackImpressions == nil || *e.TrackImpressions,
			TrackViews:       e.TrackViews == nil || *e.TrackViews,
			ViewThreshold:    time.Duration(e.ViewThresholdMs) * time.Millisecond,
		})
	}
	return defs
}

// CommonParameters returns the parameters merged into every page view and
// engagement call. The profile site ID fills an empty common site ID.
func (p *Profile) CommonParameters() bridge.CommonParameters {
	params := p.Common
	if params.SiteID == "" {
		params.SiteID = p.SiteID
	}
	return params
}
