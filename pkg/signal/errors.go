package signal

import "errors"

var (
	// ErrUnknownEventType indicates no processor is registered for an event type.
	ErrUnknownEventType = errors.New("unknown event type")

	// ErrInvalidPayload indicates event data that does not match its type.
	ErrInvalidPayload = errors.New("invalid event payload")

	// ErrTargetUnavailable indicates the processor's target was not wired.
	ErrTargetUnavailable = errors.New("event target unavailable")
)
