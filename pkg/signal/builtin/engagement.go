package builtin

import (
	"context"
	"fmt"

	"github.com/expo-parsely/engagement-tracker/pkg/bridge"
	"github.com/expo-parsely/engagement-tracker/pkg/engagement"
	"github.com/expo-parsely/engagement-tracker/pkg/lifecycle"
	"github.com/expo-parsely/engagement-tracker/pkg/signal"
)

// ActivityEventProcessor records a generic activity on the tracker.
type ActivityEventProcessor struct{}

func (p *ActivityEventProcessor) EventType() string {
	return TypeActivity
}

func (p *ActivityEventProcessor) Process(ctx context.Context, event signal.Event, targets *signal.Targets) (signal.Signal, error) {
	if targets.Tracker == nil {
		return nil, unavailable("engagement tracker")
	}
	targets.Tracker.RecordActivity()
	return signal.NewBaseSignal(TypeActivity, timestampOf(event), nil), nil
}

// ScrollPayload is the data of a scroll event.
type ScrollPayload struct {
	Scrolling bool `json:"scrolling"`
}

// ScrollEventProcessor sets the scroll state directly, bypassing gesture
// classification.
type ScrollEventProcessor struct{}

func (p *ScrollEventProcessor) EventType() string {
	return TypeScroll
}

func (p *ScrollEventProcessor) Process(ctx context.Context, event signal.Event, targets *signal.Targets) (signal.Signal, error) {
	if targets.Tracker == nil {
		return nil, unavailable("engagement tracker")
	}

	var payload ScrollPayload
	if err := event.Decode(&payload); err != nil {
		return nil, err
	}
	targets.Tracker.SetScrollState(payload.Scrolling)

	return signal.NewBaseSignal(TypeScroll, timestampOf(event), map[string]interface{}{
		"scrolling": payload.Scrolling,
	}), nil
}

// AppStatePayload is the data of an app_state event.
type AppStatePayload struct {
	State string `json:"state"`
}

// AppStateEventProcessor forwards app state changes to the lifecycle observer.
type AppStateEventProcessor struct{}

func (p *AppStateEventProcessor) EventType() string {
	return TypeAppState
}

func (p *AppStateEventProcessor) Process(ctx context.Context, event signal.Event, targets *signal.Targets) (signal.Signal, error) {
	if targets.Lifecycle == nil {
		return nil, unavailable("lifecycle observer")
	}

	var payload AppStatePayload
	if err := event.Decode(&payload); err != nil {
		return nil, err
	}
	state, err := lifecycle.ParseAppState(payload.State)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", signal.ErrInvalidPayload, err)
	}
	if err := targets.Lifecycle.HandleAppStateChange(ctx, state); err != nil {
		return nil, err
	}

	return signal.NewBaseSignal(TypeAppState, timestampOf(event), map[string]interface{}{
		"state": string(state),
	}), nil
}

// SessionStartPayload optionally overrides the engagement target.
type SessionStartPayload struct {
	URL       string           `json:"url,omitempty"`
	URLRef    string           `json:"urlref,omitempty"`
	ExtraData bridge.ExtraData `json:"extraData,omitempty"`
}

// SessionStartEventProcessor starts an engagement session.
type SessionStartEventProcessor struct{}

func (p *SessionStartEventProcessor) EventType() string {
	return TypeSessionStart
}

func (p *SessionStartEventProcessor) Process(ctx context.Context, event signal.Event, targets *signal.Targets) (signal.Signal, error) {
	if targets.Tracker == nil {
		return nil, unavailable("engagement tracker")
	}

	var payload SessionStartPayload
	if err := event.Decode(&payload); err != nil {
		return nil, err
	}

	var patches []engagement.ConfigPatch
	if payload.URL != "" {
		patches = append(patches, engagement.ConfigPatch{
			Engagement: &bridge.EngagementOptions{
				URL:       payload.URL,
				URLRef:    payload.URLRef,
				ExtraData: payload.ExtraData,
			},
		})
	}
	if err := targets.Tracker.Start(ctx, patches...); err != nil {
		return nil, err
	}

	return signal.NewBaseSignal(TypeSessionStart, timestampOf(event), map[string]interface{}{
		"session_id": targets.Tracker.Status().SessionID,
	}), nil
}

// SessionStopEventProcessor stops the engagement session.
type SessionStopEventProcessor struct{}

func (p *SessionStopEventProcessor) EventType() string {
	return TypeSessionStop
}

func (p *SessionStopEventProcessor) Process(ctx context.Context, event signal.Event, targets *signal.Targets) (signal.Signal, error) {
	if targets.Tracker == nil {
		return nil, unavailable("engagement tracker")
	}
	targets.Tracker.Stop(ctx)
	return signal.NewBaseSignal(TypeSessionStop, timestampOf(event), nil), nil
}
