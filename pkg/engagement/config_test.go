package engagement

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero interval", func(c *Config) { c.HeartbeatIntervalSeconds = 0 }, true},
		{"negative timeout", func(c *Config) { c.ActiveTimeoutSeconds = -5 }, true},
		{"negative max duration", func(c *Config) { c.MaxSessionDurationSeconds = -1 }, true},
		{"unlimited max duration", func(c *Config) { c.MaxSessionDurationSeconds = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigPatch_Apply(t *testing.T) {
	base := DefaultConfig()

	merged := ConfigPatch{ActiveTimeoutSeconds: Int(8)}.Apply(base)
	if merged.ActiveTimeoutSeconds != 8 {
		t.Errorf("Expected timeout 8, got %d", merged.ActiveTimeoutSeconds)
	}
	if merged.HeartbeatIntervalSeconds != DefaultHeartbeatIntervalSeconds {
		t.Errorf("Expected interval to keep its default, got %d", merged.HeartbeatIntervalSeconds)
	}
	if !merged.EnableHeartbeats {
		t.Error("Expected heartbeats to stay enabled")
	}

	merged = ConfigPatch{EnableHeartbeats: Bool(false)}.Apply(merged)
	if merged.EnableHeartbeats || merged.ActiveTimeoutSeconds != 8 {
		t.Errorf("Unexpected merge result: %+v", merged)
	}
}

func TestStatus_JSONKeepsTimestamps(t *testing.T) {
	raw, err := json.Marshal(Status{ObservedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"sessionStart", "lastActivityAt", "lastHeartbeatAt", "observedAt"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("Expected %s in %s", key, raw)
		}
	}
	if _, ok := fields["sessionId"]; ok {
		t.Errorf("Expected empty session id to be omitted, got %s", raw)
	}
}
