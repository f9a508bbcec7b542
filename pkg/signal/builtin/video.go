package builtin

import (
	"context"

	"github.com/expo-parsely/engagement-tracker/pkg/bridge"
	"github.com/expo-parsely/engagement-tracker/pkg/signal"
)

// VideoPlayEventProcessor marks video as playing and reports the play to the bridge.
type VideoPlayEventProcessor struct{}

func (p *VideoPlayEventProcessor) EventType() string {
	return TypeVideoPlay
}

func (p *VideoPlayEventProcessor) Process(ctx context.Context, event signal.Event, targets *signal.Targets) (signal.Signal, error) {
	var opts bridge.PlayOptions
	if err := event.Decode(&opts); err != nil {
		return nil, err
	}
	if targets.Tracker != nil {
		targets.Tracker.SetVideoPlaying(true)
	}
	if targets.Bridge != nil {
		if err := targets.Bridge.TrackPlay(ctx, opts); err != nil {
			return nil, err
		}
	}

	return signal.NewBaseSignal(TypeVideoPlay, timestampOf(event), map[string]interface{}{
		"video_id": opts.Video.VideoID,
	}), nil
}

// VideoPauseEventProcessor clears the video flag and reports the pause.
type VideoPauseEventProcessor struct{}

func (p *VideoPauseEventProcessor) EventType() string {
	return TypeVideoPause
}

func (p *VideoPauseEventProcessor) Process(ctx context.Context, event signal.Event, targets *signal.Targets) (signal.Signal, error) {
	if targets.Tracker != nil {
		targets.Tracker.SetVideoPlaying(false)
	}
	if targets.Bridge != nil {
		if err := targets.Bridge.TrackPause(ctx); err != nil {
			return nil, err
		}
	}
	return signal.NewBaseSignal(TypeVideoPause, timestampOf(event), nil), nil
}

// VideoResetEventProcessor clears the video flag and resets native video tracking.
type VideoResetEventProcessor struct{}

func (p *VideoResetEventProcessor) EventType() string {
	return TypeVideoReset
}

func (p *VideoResetEventProcessor) Process(ctx context.Context, event signal.Event, targets *signal.Targets) (signal.Signal, error) {
	if targets.Tracker != nil {
		targets.Tracker.SetVideoPlaying(false)
	}
	if targets.Bridge != nil {
		if err := targets.Bridge.ResetVideo(ctx); err != nil {
			return nil, err
		}
	}
	return signal.NewBaseSignal(TypeVideoReset, timestampOf(event), nil), nil
}

// PageViewEventProcessor forwards page views to the bridge.
type PageViewEventProcessor struct{}

func (p *PageViewEventProcessor) EventType() string {
	return TypePageView
}

func (p *PageViewEventProcessor) Process(ctx context.Context, event signal.Event, targets *signal.Targets) (signal.Signal, error) {
	if targets.Bridge == nil {
		return nil, unavailable("bridge")
	}

	var opts bridge.PageViewOptions
	if err := event.Decode(&opts); err != nil {
		return nil, err
	}
	if err := targets.Bridge.TrackPageView(ctx, opts); err != nil {
		return nil, err
	}

	return signal.NewBaseSignal(TypePageView, timestampOf(event), map[string]interface{}{
		"url": opts.URL,
	}), nil
}
