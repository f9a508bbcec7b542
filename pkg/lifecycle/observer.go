// Package lifecycle maps application state changes onto tracker sessions.
package lifecycle

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/expo-parsely/engagement-tracker/pkg/engagement"
)

// AppState is the platform application state.
type AppState string

const (
	StateActive     AppState = "active"
	StateInactive   AppState = "inactive"
	StateBackground AppState = "background"
)

// ParseAppState validates a state name.
func ParseAppState(s string) (AppState, error) {
	switch AppState(s) {
	case StateActive, StateInactive, StateBackground:
		return AppState(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAppState, s)
	}
}

// Tracker is the part of engagement.Tracker the observer drives.
type Tracker interface {
	Start(ctx context.Context, patches ...engagement.ConfigPatch) error
	StopWithReason(ctx context.Context, reason engagement.EndReason)
	IsActive() bool
}

// Observer stops the tracker when the app is backgrounded and restarts it
// when the app returns to the foreground without a live session.
type Observer struct {
	tracker Tracker

	mu          sync.Mutex
	state       AppState
	transitions int
}

// NewObserver creates an observer that assumes the app starts active.
func NewObserver(tracker Tracker) *Observer {
	return &Observer{tracker: tracker, state: StateActive}
}

// State returns the last observed state.
func (o *Observer) State() AppState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Transitions returns how many state changes were observed.
func (o *Observer) Transitions() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.transitions
}

// HandleAppStateChange applies next. Repeated states are ignored. The state
// is recorded only once the tracker call succeeds, so a failed foreground
// restart is retried on the next active event.
func (o *Observer) HandleAppStateChange(ctx context.Context, next AppState) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	prev := o.state
	if prev == next {
		return nil
	}

	logrus.Debugf("app state %s -> %s", prev, next)

	switch next {
	case StateBackground:
		o.tracker.StopWithReason(ctx, engagement.EndReasonBackground)
	case StateActive:
		if !o.tracker.IsActive() {
			if err := o.tracker.Start(ctx); err != nil {
				return fmt.Errorf("failed to restart engagement on foreground: %w", err)
			}
		}
	}
	o.state = next
	o.transitions++
	return nil
}
