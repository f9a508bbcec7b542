package signal

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event is a raw client signal as received from the app.
type Event struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"ts"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Decode unmarshals the event data into v. Empty data leaves v untouched.
func (e Event) Decode(v interface{}) error {
	if len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, e.Type, err)
	}
	return nil
}

// Signal is the normalized result of processing an Event.
type Signal interface {
	// Type returns the event type that produced the signal.
	Type() string

	// Timestamp returns when the signal was applied.
	Timestamp() time.Time

	// Metadata returns signal-specific data for logging and responses.
	Metadata() map[string]interface{}
}

// BaseSignal is the common Signal implementation.
type BaseSignal struct {
	signalType string
	timestamp  time.Time
	metadata   map[string]interface{}
}

// NewBaseSignal creates a signal.
func NewBaseSignal(signalType string, timestamp time.Time, metadata map[string]interface{}) *BaseSignal {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return &BaseSignal{
		signalType: signalType,
		timestamp:  timestamp,
		metadata:   metadata,
	}
}

// Type implements Signal interface.
func (s *BaseSignal) Type() string {
	return s.signalType
}

// Timestamp implements Signal interface.
func (s *BaseSignal) Timestamp() time.Time {
	return s.timestamp
}

// Metadata implements Signal interface.
func (s *BaseSignal) Metadata() map[string]interface{} {
	return s.metadata
}
