package signal

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Result is the outcome of one event in a batch.
type Result struct {
	Index  int    `json:"index"`
	Type   string `json:"type"`
	Error  string `json:"error,omitempty"`
	signal Signal
}

// Signal returns the produced signal, nil on failure.
func (r Result) Signal() Signal {
	return r.signal
}

// Dispatcher routes events to their registered processors.
type Dispatcher struct {
	registry *EventProcessorRegistry
	targets  *Targets
}

// NewDispatcher creates a dispatcher over registry and targets.
func NewDispatcher(registry *EventProcessorRegistry, targets *Targets) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		targets:  targets,
	}
}

// Registry returns the processor registry.
func (d *Dispatcher) Registry() *EventProcessorRegistry {
	return d.registry
}

// Dispatch applies a single event.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) (Signal, error) {
	processor := d.registry.Get(event.Type)
	if processor == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, event.Type)
	}

	sig, err := processor.Process(ctx, event, d.targets)
	if err != nil {
		return nil, fmt.Errorf("failed to process %s event: %w", event.Type, err)
	}

	logrus.Debugf("processed %s event", event.Type)
	return sig, nil
}

// DispatchBatch applies events in order. A failing event does not stop the
// batch; the number of applied events is returned with per-event results.
func (d *Dispatcher) DispatchBatch(ctx context.Context, events []Event) (int, []Result) {
	applied := 0
	results := make([]Result, 0, len(events))

	for i, event := range events {
		res := Result{Index: i, Type: event.Type}
		sig, err := d.Dispatch(ctx, event)
		if err != nil {
			logrus.Warnf("dropping event %d: %v", i, err)
			res.Error = err.Error()
		} else {
			res.signal = sig
			applied++
		}
		results = append(results, res)
	}
	return applied, results
}
