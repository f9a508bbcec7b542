package builtin

import (
	"context"
	"fmt"
	"time"

	"github.com/expo-parsely/engagement-tracker/pkg/element"
	"github.com/expo-parsely/engagement-tracker/pkg/signal"
)

// ElementRegisterPayload describes an element to track.
type ElementRegisterPayload struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	Location         string `json:"location,omitempty"`
	TrackImpressions *bool  `json:"trackImpressions,omitempty"`
	TrackViews       *bool  `json:"trackViews,omitempty"`
	ViewThresholdMs  int    `json:"viewThresholdMs,omitempty"`
}

// ElementRegisterEventProcessor registers an element, sending its impression.
type ElementRegisterEventProcessor struct{}

func (p *ElementRegisterEventProcessor) EventType() string {
	return TypeElementRegister
}

func (p *ElementRegisterEventProcessor) Process(ctx context.Context, event signal.Event, targets *signal.Targets) (signal.Signal, error) {
	if targets.Elements == nil {
		return nil, unavailable("element tracker")
	}

	var payload ElementRegisterPayload
	if err := event.Decode(&payload); err != nil {
		return nil, err
	}

	def := element.Definition{
		ID:               payload.ID,
		Type:             payload.Type,
		Location:         payload.Location,
		TrackImpressions: payload.TrackImpressions == nil || *payload.TrackImpressions,
		TrackViews:       payload.TrackViews == nil || *payload.TrackViews,
		ViewThreshold:    time.Duration(payload.ViewThresholdMs) * time.Millisecond,
	}
	if err := targets.Elements.Register(ctx, def); err != nil {
		return nil, fmt.Errorf("failed to register element: %w", err)
	}

	return signal.NewBaseSignal(TypeElementRegister, timestampOf(event), map[string]interface{}{
		"element_id": def.ID,
	}), nil
}

// ElementVisibilityPayload is the data of an element_visibility event.
type ElementVisibilityPayload struct {
	ID      string `json:"id"`
	Visible bool   `json:"visible"`
}

// ElementVisibilityEventProcessor updates element visibility.
type ElementVisibilityEventProcessor struct{}

func (p *ElementVisibilityEventProcessor) EventType() string {
	return TypeElementVisibility
}

func (p *ElementVisibilityEventProcessor) Process(ctx context.Context, event signal.Event, targets *signal.Targets) (signal.Signal, error) {
	if targets.Elements == nil {
		return nil, unavailable("element tracker")
	}

	var payload ElementVisibilityPayload
	if err := event.Decode(&payload); err != nil {
		return nil, err
	}
	if err := targets.Elements.SetVisible(ctx, payload.ID, payload.Visible); err != nil {
		return nil, err
	}

	return signal.NewBaseSignal(TypeElementVisibility, timestampOf(event), map[string]interface{}{
		"element_id": payload.ID,
		"visible":    payload.Visible,
	}), nil
}

// ElementClickPayload is the data of an element_click event.
type ElementClickPayload struct {
	ID string `json:"id"`
}

// ElementClickEventProcessor reports element clicks.
type ElementClickEventProcessor struct{}

func (p *ElementClickEventProcessor) EventType() string {
	return TypeElementClick
}

func (p *ElementClickEventProcessor) Process(ctx context.Context, event signal.Event, targets *signal.Targets) (signal.Signal, error) {
	if targets.Elements == nil {
		return nil, unavailable("element tracker")
	}

	var payload ElementClickPayload
	if err := event.Decode(&payload); err != nil {
		return nil, err
	}
	if err := targets.Elements.Click(ctx, payload.ID); err != nil {
		return nil, err
	}

	return signal.NewBaseSignal(TypeElementClick, timestampOf(event), map[string]interface{}{
		"element_id": payload.ID,
	}), nil
}
