package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/expo-parsely/engagement-tracker/pkg/common"
)

// CallRecorder observes the outcome of every bridge call.
type CallRecorder interface {
	RecordBridgeCall(call string, duration time.Duration, err error)
}

// Instrumented wraps a Bridge with a span per call and an optional recorder.
// Errors from the wrapped bridge are returned wrapped in ErrBridgeCall.
type Instrumented struct {
	next     Bridge
	recorder CallRecorder
}

// NewInstrumented wraps next. recorder may be nil.
func NewInstrumented(next Bridge, recorder CallRecorder) *Instrumented {
	return &Instrumented{next: next, recorder: recorder}
}

func (b *Instrumented) call(ctx context.Context, name string, attrs map[string]interface{}, fn func(ctx context.Context) error) error {
	scope := common.StartScope(ctx, "bridge."+name)
	defer scope.Finish()

	for k, v := range attrs {
		scope.SetAttributes(k, v)
	}

	start := time.Now()
	err := fn(scope.Ctx)
	if b.recorder != nil {
		b.recorder.RecordBridgeCall(name, time.Since(start), err)
	}
	if err != nil {
		scope.TraceError(err)
		scope.Log.WithField("call", name).Warnf("bridge call failed: %v", err)
		return fmt.Errorf("%w: %s: %w", ErrBridgeCall, name, err)
	}
	return nil
}

// Init implements Bridge.
func (b *Instrumented) Init(ctx context.Context, siteID string) error {
	return b.call(ctx, "init", map[string]interface{}{"site_id": siteID}, func(ctx context.Context) error {
		return b.next.Init(ctx, siteID)
	})
}

// TrackPageView implements Bridge.
func (b *Instrumented) TrackPageView(ctx context.Context, opts PageViewOptions) error {
	return b.call(ctx, "trackPageView", map[string]interface{}{"url": opts.URL}, func(ctx context.Context) error {
		return b.next.TrackPageView(ctx, opts)
	})
}

// StartEngagement implements Bridge.
func (b *Instrumented) StartEngagement(ctx context.Context, opts EngagementOptions) error {
	return b.call(ctx, "startEngagement", map[string]interface{}{"url": opts.URL}, func(ctx context.Context) error {
		return b.next.StartEngagement(ctx, opts)
	})
}

// StopEngagement implements Bridge.
func (b *Instrumented) StopEngagement(ctx context.Context) error {
	return b.call(ctx, "stopEngagement", nil, b.next.StopEngagement)
}

// TrackPlay implements Bridge.
func (b *Instrumented) TrackPlay(ctx context.Context, opts PlayOptions) error {
	return b.call(ctx, "trackPlay", map[string]interface{}{"video_id": opts.Video.VideoID}, func(ctx context.Context) error {
		return b.next.TrackPlay(ctx, opts)
	})
}

// TrackPause implements Bridge.
func (b *Instrumented) TrackPause(ctx context.Context) error {
	return b.call(ctx, "trackPause", nil, b.next.TrackPause)
}

// ResetVideo implements Bridge.
func (b *Instrumented) ResetVideo(ctx context.Context) error {
	return b.call(ctx, "resetVideo", nil, b.next.ResetVideo)
}

// TrackElement implements Bridge.
func (b *Instrumented) TrackElement(ctx context.Context, event ElementEvent) error {
	attrs := map[string]interface{}{
		"element_id": event.ElementID,
		"action":     event.Action,
	}
	return b.call(ctx, "trackElement", attrs, func(ctx context.Context) error {
		return b.next.TrackElement(ctx, event)
	})
}
