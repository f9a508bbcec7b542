package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/expo-parsely/engagement-tracker/pkg/element"
	"github.com/expo-parsely/engagement-tracker/pkg/engagement"
)

func TestLoadProfile(t *testing.T) {
	tmpDir := t.TempDir()
	profilePath := filepath.Join(tmpDir, "profile.yaml")

	profileContent := `
site_id: ${TEST_PARSELY_SITE_ID:blog.example.com}
heartbeat:
  interval_seconds: 10
  active_timeout_seconds: 30
  max_session_duration_minutes: 120
engagement:
  url: https://blog.example.com/home
  extra_data:
    app_version: "2.4.0"
activity:
  scroll_threshold: 5
  scroll_decay_ms: 800
common:
  metadata:
    section: news
    authors: [jane]
  extra_data:
    platform: ios
elements:
  - id: subscribe
    type: button
    location: /home
    view_threshold_ms: 1500
  - id: footer-link
    type: link
    track_views: false
`

	if err := os.WriteFile(profilePath, []byte(profileContent), 0644); err != nil {
		t.Fatalf("failed to write test profile: %v", err)
	}

	p, err := LoadProfile(profilePath)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}

	if p.SiteID != "blog.example.com" {
		t.Errorf("expected default site id, got %q", p.SiteID)
	}

	cfg := p.HeartbeatPatch().Apply(engagement.DefaultConfig())
	if cfg.HeartbeatIntervalSeconds != 10 || cfg.ActiveTimeoutSeconds != 30 {
		t.Errorf("unexpected heartbeat config: %+v", cfg)
	}
	if cfg.MaxSessionDurationSeconds != 7200 {
		t.Errorf("expected 7200s max duration, got %d", cfg.MaxSessionDurationSeconds)
	}
	if !cfg.EnableHeartbeats {
		t.Error("expected heartbeats to default to enabled")
	}
	if cfg.Engagement.URL != "https://blog.example.com/home" || cfg.Engagement.SiteID != "blog.example.com" {
		t.Errorf("unexpected engagement target: %+v", cfg.Engagement)
	}
	if cfg.Engagement.ExtraData["app_version"] != "2.4.0" {
		t.Errorf("unexpected extra data: %v", cfg.Engagement.ExtraData)
	}

	act := p.ActivityConfig()
	if act.ScrollThreshold != 5 || act.ScrollDecay != 800*time.Millisecond {
		t.Errorf("unexpected activity config: %+v", act)
	}
	if act.MoveThrottle != time.Second || !act.TouchEnabled {
		t.Errorf("expected activity defaults to be kept: %+v", act)
	}

	defs := p.ElementDefinitions()
	if len(defs) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(defs))
	}
	if !defs[0].TrackImpressions || !defs[0].TrackViews || defs[0].ViewThreshold != 1500*time.Millisecond {
		t.Errorf("unexpected first element: %+v", defs[0])
	}
	if defs[1].TrackViews {
		t.Error("expected views to be disabled on the second element")
	}

	common := p.CommonParameters()
	if common.SiteID != "blog.example.com" || common.Metadata.Section != "news" || common.ExtraData["platform"] != "ios" {
		t.Errorf("unexpected common parameters: %+v", common)
	}
}

func TestLoadProfile_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_HEARTBEAT_INTERVAL", "45")

	p, err := Parse([]byte(`
site_id: example.com
heartbeat:
  interval_seconds: ${TEST_HEARTBEAT_INTERVAL:150}
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := *p.Heartbeat.IntervalSeconds; got != 45 {
		t.Errorf("expected interval 45, got %d", got)
	}
}

func TestLoadProfile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "zero interval",
			content: "heartbeat:\n  interval_seconds: 0\n",
			wantErr: engagement.ErrInvalidConfig,
		},
		{
			name:    "duplicate element",
			content: "elements:\n  - {id: a, type: button}\n  - {id: a, type: link}\n",
			wantErr: ErrInvalidProfile,
		},
		{
			name:    "element without type",
			content: "elements:\n  - {id: a}\n",
			wantErr: element.ErrInvalidDefinition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := Parse([]byte("heartbeat: [")); err == nil {
		t.Error("expected YAML error")
	}
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
