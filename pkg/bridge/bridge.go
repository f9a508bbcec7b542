package bridge

import "context"

// Bridge is the contract with the native Parse.ly SDK.
// Implementations must be safe for concurrent use.
type Bridge interface {
	// Init configures the SDK for a site. Calls made before Init fail with
	// ErrNotInitialized.
	Init(ctx context.Context, siteID string) error

	TrackPageView(ctx context.Context, opts PageViewOptions) error

	// StartEngagement begins native engaged-time tracking for a URL.
	StartEngagement(ctx context.Context, opts EngagementOptions) error

	// StopEngagement ends native engaged-time tracking.
	StopEngagement(ctx context.Context) error

	TrackPlay(ctx context.Context, opts PlayOptions) error
	TrackPause(ctx context.Context) error
	ResetVideo(ctx context.Context) error

	TrackElement(ctx context.Context, event ElementEvent) error
}
