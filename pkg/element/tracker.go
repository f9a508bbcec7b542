// Package element tracks impressions, views and clicks of UI elements.
package element

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/expo-parsely/engagement-tracker/pkg/bridge"
	"github.com/expo-parsely/engagement-tracker/pkg/clock"
)

// DefaultViewThreshold is how long an element must stay visible to count as viewed.
const DefaultViewThreshold = time.Second

// Definition describes a tracked element.
type Definition struct {
	ID               string        `yaml:"id" json:"id"`
	Type             string        `yaml:"type" json:"type"`
	Location         string        `yaml:"location,omitempty" json:"location,omitempty"`
	TrackImpressions bool          `yaml:"track_impressions" json:"trackImpressions"`
	TrackViews       bool          `yaml:"track_views" json:"trackViews"`
	ViewThreshold    time.Duration `yaml:"view_threshold,omitempty" json:"viewThreshold,omitempty"`
}

// Validate checks the definition.
func (d Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: element id is required", ErrInvalidDefinition)
	}
	if d.Type == "" {
		return fmt.Errorf("%w: element %s: type is required", ErrInvalidDefinition, d.ID)
	}
	if d.ViewThreshold < 0 {
		return fmt.Errorf("%w: element %s: view threshold cannot be negative", ErrInvalidDefinition, d.ID)
	}
	return nil
}

// State is the tracking state of one element.
type State struct {
	Definition
	ImpressionTracked bool `json:"impressionTracked"`
	ViewTracked       bool `json:"viewTracked"`
	Visible           bool `json:"visible"`
	Clicks            int  `json:"clicks"`
}

type entry struct {
	state State
	timer clock.Timer
	gen   uint64
}

// Tracker forwards element events to the bridge. Impressions and views are
// sent at most once per registration.
type Tracker struct {
	clock  clock.Clock
	bridge bridge.Bridge

	mu       sync.RWMutex
	elements map[string]*entry
}

// NewTracker creates an element tracker.
func NewTracker(clk clock.Clock, b bridge.Bridge) *Tracker {
	if clk == nil {
		clk = clock.NewReal()
	}
	return &Tracker{
		clock:    clk,
		bridge:   b,
		elements: make(map[string]*entry),
	}
}

// Register adds an element and sends its impression if enabled.
func (t *Tracker) Register(ctx context.Context, def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if def.ViewThreshold == 0 {
		def.ViewThreshold = DefaultViewThreshold
	}

	t.mu.Lock()
	if _, exists := t.elements[def.ID]; exists {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, def.ID)
	}
	e := &entry{state: State{Definition: def}}
	t.elements[def.ID] = e
	impression := def.TrackImpressions
	if impression {
		e.state.ImpressionTracked = true
	}
	t.mu.Unlock()

	if impression {
		t.send(ctx, bridge.ElementImpression, def)
	}
	return nil
}

// Unregister drops an element and cancels its pending view.
func (t *Tracker) Unregister(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.elements[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
	}
	delete(t.elements, id)
	return nil
}

// SetVisible updates visibility. A view is sent once the element stays
// visible for its threshold; hiding it earlier cancels the view.
func (t *Tracker) SetVisible(ctx context.Context, id string, visible bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.elements[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	if e.state.Visible == visible {
		return nil
	}
	e.state.Visible = visible

	if !visible {
		e.gen++
		if e.timer != nil {
			e.timer.Stop()
			e.timer = nil
		}
		return nil
	}

	if !e.state.TrackViews || e.state.ViewTracked {
		return nil
	}
	e.gen++
	gen := e.gen
	e.timer = t.clock.AfterFunc(e.state.ViewThreshold, func() {
		t.viewElapsed(context.WithoutCancel(ctx), id, gen)
	})
	return nil
}

// Click sends a click event.
func (t *Tracker) Click(ctx context.Context, id string) error {
	t.mu.Lock()
	e, ok := t.elements[id]
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	e.state.Clicks++
	def := e.state.Definition
	t.mu.Unlock()

	t.send(ctx, bridge.ElementClick, def)
	return nil
}

// Get returns the state of an element.
func (t *Tracker) Get(id string) (State, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.elements[id]
	if !ok {
		return State{}, false
	}
	return e.state, true
}

// Count returns the number of registered elements.
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.elements)
}

func (t *Tracker) viewElapsed(ctx context.Context, id string, gen uint64) {
	t.mu.Lock()
	e, ok := t.elements[id]
	if !ok || e.gen != gen || !e.state.Visible || e.state.ViewTracked {
		t.mu.Unlock()
		return
	}
	e.state.ViewTracked = true
	e.timer = nil
	def := e.state.Definition
	t.mu.Unlock()

	t.send(ctx, bridge.ElementView, def)
}

func (t *Tracker) send(ctx context.Context, action string, def Definition) {
	if t.bridge == nil {
		return
	}
	event := bridge.ElementEvent{
		Action:      action,
		ElementType: def.Type,
		ElementID:   def.ID,
		Location:    def.Location,
	}
	if err := t.bridge.TrackElement(ctx, event); err != nil {
		logrus.WithFields(logrus.Fields{
			"element_id": def.ID,
			"action":     action,
		}).Warnf("failed to track element: %v", err)
	}
}
