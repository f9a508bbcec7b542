package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/expo-parsely/engagement-tracker/pkg/engagement"
	"github.com/expo-parsely/engagement-tracker/pkg/status"
)

const readingScenario = `
profile:
  site_id: blog.example.com
  heartbeat:
    interval_seconds: 10
    active_timeout_seconds: 5
  engagement:
    url: https://blog.example.com/story
steps:
  - at: 0s
    event: session_start
  - at: 6s
    event: activity
  - at: 12s
    event: scroll
    data:
      scrolling: true
  - at: 21s
    event: scroll
    data:
      scrolling: false
duration: 40s
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write scenario: %v", err)
	}
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReplayTimeline(t *testing.T) {
	out, err := runCmd(t, writeScenario(t, readingScenario))
	if err != nil {
		t.Fatalf("replay failed: %v\n%s", err, out)
	}

	// Engaged at 10s (activity at 6s) and 20s (scrolling), inactive at 30s.
	for _, want := range []string{
		"[    0s] session started",
		"[   10s] heartbeat +10s",
		"[   20s] heartbeat +10s",
		"[   30s] session ended (inactivity): 2 heartbeats, 20s engaged",
		"reason=inactivity",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestReplayJSON(t *testing.T) {
	out, err := runCmd(t, "--json", writeScenario(t, readingScenario))
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	idx := strings.Index(out, "{")
	if idx < 0 {
		t.Fatalf("expected JSON in output, got:\n%s", out)
	}
	var view status.View
	if err := json.Unmarshal([]byte(out[idx:]), &view); err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	if view.IsActive || view.HeartbeatCount != 2 || view.TotalEngagedSeconds != 20 {
		t.Errorf("unexpected final status: %+v", view)
	}
	if view.EndReason != engagement.EndReasonInactivity {
		t.Errorf("expected inactivity, got %q", view.EndReason)
	}
}

func TestReplayStrict(t *testing.T) {
	scenario := `
steps:
  - at: 0s
    event: session_start
  - at: 1s
    event: teleport
`
	path := writeScenario(t, scenario)

	out, err := runCmd(t, path)
	if err != nil {
		t.Fatalf("non-strict replay should succeed: %v", err)
	}
	if !strings.Contains(out, "teleport failed") {
		t.Errorf("expected failure line, got:\n%s", out)
	}

	if _, err := runCmd(t, "--strict", path); err == nil {
		t.Error("expected strict replay to fail")
	}
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unordered steps", "steps:\n  - {at: 5s, event: activity}\n  - {at: 1s, event: activity}\n"},
		{"missing event", "steps:\n  - {at: 1s}\n"},
		{"short duration", "steps:\n  - {at: 5s, event: activity}\nduration: 1s\n"},
		{"bad profile", "profile:\n  heartbeat:\n    active_timeout_seconds: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScenario(writeScenario(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := runCmd(t); err == nil {
		t.Error("expected error without a scenario argument")
	}
}
