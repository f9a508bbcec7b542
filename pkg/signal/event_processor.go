package signal

import (
	"context"
	"fmt"
	"sync"

	"github.com/expo-parsely/engagement-tracker/pkg/activity"
	"github.com/expo-parsely/engagement-tracker/pkg/bridge"
	"github.com/expo-parsely/engagement-tracker/pkg/element"
	"github.com/expo-parsely/engagement-tracker/pkg/engagement"
	"github.com/expo-parsely/engagement-tracker/pkg/lifecycle"
)

// Targets are the components an EventProcessor may drive. Nil fields are
// reported as ErrTargetUnavailable by the processors that need them.
type Targets struct {
	Tracker   *engagement.Tracker
	Detector  *activity.Detector
	Lifecycle *lifecycle.Observer
	Elements  *element.Tracker
	Bridge    bridge.Bridge
}

// EventProcessor applies one event type to its targets.
type EventProcessor interface {
	// EventType returns the type of event this processor handles.
	// Examples: "touch_start", "video_play"
	EventType() string

	// Process applies the event and returns the resulting signal.
	Process(ctx context.Context, event Event, targets *Targets) (Signal, error)
}

// EventProcessorRegistry manages registered event processors.
type EventProcessorRegistry struct {
	mu         sync.RWMutex
	processors map[string]EventProcessor
}

// NewEventProcessorRegistry creates a new event processor registry.
func NewEventProcessorRegistry() *EventProcessorRegistry {
	return &EventProcessorRegistry{
		processors: make(map[string]EventProcessor),
	}
}

// Register adds an event processor to the registry, replacing any
// processor for the same type.
func (r *EventProcessorRegistry) Register(processor EventProcessor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processors[processor.EventType()] = processor
}

// Get retrieves an event processor by event type.
func (r *EventProcessorRegistry) Get(eventType string) EventProcessor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.processors[eventType]
}

// GetAll returns all registered event processors.
func (r *EventProcessorRegistry) GetAll() map[string]EventProcessor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]EventProcessor, len(r.processors))
	for k, v := range r.processors {
		result[k] = v
	}
	return result
}

// Count returns the number of registered event processors.
func (r *EventProcessorRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.processors)
}

// Unregister removes an event processor from the registry.
func (r *EventProcessorRegistry) Unregister(eventType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.processors[eventType]; !exists {
		return fmt.Errorf("event processor for type '%s' not found", eventType)
	}

	delete(r.processors, eventType)
	return nil
}
