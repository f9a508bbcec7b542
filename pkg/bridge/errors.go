package bridge

import "errors"

var (
	// ErrNotInitialized indicates a tracking call was made before Init.
	ErrNotInitialized = errors.New("parsely tracker not initialized")

	// ErrMissingURL indicates a call that requires a URL was made without one.
	ErrMissingURL = errors.New("URL is required")

	// ErrMissingSiteID indicates Init was called with an empty site ID.
	ErrMissingSiteID = errors.New("site ID is required")

	// ErrInvalidElementEvent indicates an element event with an unknown action or missing ID.
	ErrInvalidElementEvent = errors.New("invalid element event")

	// ErrBridgeCall wraps every failure surfaced by an instrumented bridge.
	ErrBridgeCall = errors.New("bridge call failed")
)
