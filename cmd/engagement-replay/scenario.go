package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/expo-parsely/engagement-tracker/pkg/common"
	"github.com/expo-parsely/engagement-tracker/pkg/profile"
	"github.com/expo-parsely/engagement-tracker/pkg/signal"
)

// Scenario is a timed sequence of events replayed against a tracker.
type Scenario struct {
	Profile  profile.Profile `yaml:"profile"`
	Steps    []Step          `yaml:"steps"`
	Duration time.Duration   `yaml:"duration,omitempty"`
}

// Step is one event, offset from the start of the replay.
type Step struct {
	At    time.Duration          `yaml:"at"`
	Event string                 `yaml:"event"`
	Data  map[string]interface{} `yaml:"data,omitempty"`
}

// LoadScenario reads a scenario file. Environment variables are expanded in
// the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal([]byte(common.ExpandEnv(string(data))), &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// Validate checks the embedded profile and the step order.
func (s *Scenario) Validate() error {
	if err := s.Profile.Validate(); err != nil {
		return err
	}

	var last time.Duration
	for i, step := range s.Steps {
		if step.Event == "" {
			return fmt.Errorf("step %d: event is required", i)
		}
		if step.At < last {
			return fmt.Errorf("step %d: at %v is before the previous step (%v)", i, step.At, last)
		}
		last = step.At
	}
	if s.Duration != 0 && s.Duration < last {
		return fmt.Errorf("duration %v ends before the last step (%v)", s.Duration, last)
	}
	return nil
}

// End returns the offset the replay runs until.
func (s *Scenario) End() time.Duration {
	if s.Duration > 0 {
		return s.Duration
	}
	if len(s.Steps) == 0 {
		return 0
	}
	return s.Steps[len(s.Steps)-1].At
}

func (st Step) event(start time.Time) (signal.Event, error) {
	event := signal.Event{Type: st.Event, Timestamp: start.Add(st.At)}
	if len(st.Data) > 0 {
		raw, err := json.Marshal(st.Data)
		if err != nil {
			return event, fmt.Errorf("failed to encode %s data: %w", st.Event, err)
		}
		event.Data = raw
	}
	return event, nil
}
