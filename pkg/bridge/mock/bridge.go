package mock

import (
	"context"
	"sync"

	"github.com/expo-parsely/engagement-tracker/pkg/bridge"
)

// Call records a single invocation on Bridge.
type Call struct {
	Name       string
	PageView   *bridge.PageViewOptions
	Engagement *bridge.EngagementOptions
	Play       *bridge.PlayOptions
	Element    *bridge.ElementEvent
	SiteID     string
}

// Bridge is a mock implementation of bridge.Bridge for testing.
// It is safe for concurrent use.
type Bridge struct {
	mu    sync.Mutex
	calls []Call

	// Err, when set, is returned from every call after recording it.
	Err error

	// ErrFor overrides Err for individual calls, keyed by call name.
	ErrFor map[string]error
}

// NewBridge creates a mock bridge that accepts every call.
func NewBridge() *Bridge {
	return &Bridge{ErrFor: map[string]error{}}
}

func (m *Bridge) record(c Call) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, c)
	if err, ok := m.ErrFor[c.Name]; ok {
		return err
	}
	return m.Err
}

// Calls returns a copy of the recorded calls.
func (m *Bridge) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// Names returns the recorded call names in order.
func (m *Bridge) Names() []string {
	calls := m.Calls()
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Name
	}
	return names
}

// Count returns how many times name was called.
func (m *Bridge) Count(name string) int {
	n := 0
	for _, c := range m.Calls() {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Reset drops the recorded calls.
func (m *Bridge) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *Bridge) Init(_ context.Context, siteID string) error {
	return m.record(Call{Name: "init", SiteID: siteID})
}

func (m *Bridge) TrackPageView(_ context.Context, opts bridge.PageViewOptions) error {
	return m.record(Call{Name: "trackPageView", PageView: &opts})
}

func (m *Bridge) StartEngagement(_ context.Context, opts bridge.EngagementOptions) error {
	return m.record(Call{Name: "startEngagement", Engagement: &opts})
}

func (m *Bridge) StopEngagement(_ context.Context) error {
	return m.record(Call{Name: "stopEngagement"})
}

func (m *Bridge) TrackPlay(_ context.Context, opts bridge.PlayOptions) error {
	return m.record(Call{Name: "trackPlay", Play: &opts})
}

func (m *Bridge) TrackPause(_ context.Context) error {
	return m.record(Call{Name: "trackPause"})
}

func (m *Bridge) ResetVideo(_ context.Context) error {
	return m.record(Call{Name: "resetVideo"})
}

func (m *Bridge) TrackElement(_ context.Context, event bridge.ElementEvent) error {
	return m.record(Call{Name: "trackElement", Element: &event})
}
