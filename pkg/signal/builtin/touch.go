package builtin

import (
	"context"

	"github.com/expo-parsely/engagement-tracker/pkg/activity"
	"github.com/expo-parsely/engagement-tracker/pkg/signal"
)

// TouchStartEventProcessor feeds touch starts to the activity detector.
type TouchStartEventProcessor struct{}

func (p *TouchStartEventProcessor) EventType() string {
	return TypeTouchStart
}

func (p *TouchStartEventProcessor) Process(ctx context.Context, event signal.Event, targets *signal.Targets) (signal.Signal, error) {
	if targets.Detector == nil {
		return nil, unavailable("activity detector")
	}

	var point activity.Point
	if err := event.Decode(&point); err != nil {
		return nil, err
	}
	targets.Detector.TouchStart(point)

	return signal.NewBaseSignal(TypeTouchStart, timestampOf(event), map[string]interface{}{
		"x": point.X,
		"y": point.Y,
	}), nil
}

// TouchMoveEventProcessor feeds touch moves to the activity detector.
type TouchMoveEventProcessor struct{}

func (p *TouchMoveEventProcessor) EventType() string {
	return TypeTouchMove
}

func (p *TouchMoveEventProcessor) Process(ctx context.Context, event signal.Event, targets *signal.Targets) (signal.Signal, error) {
	if targets.Detector == nil {
		return nil, unavailable("activity detector")
	}

	var point activity.Point
	if err := event.Decode(&point); err != nil {
		return nil, err
	}
	targets.Detector.TouchMove(point)

	return signal.NewBaseSignal(TypeTouchMove, timestampOf(event), map[string]interface{}{
		"x":         point.X,
		"y":         point.Y,
		"scrolling": targets.Detector.IsScrolling(),
	}), nil
}

// TouchEndEventProcessor ends a touch. With Cancel set it handles touch_cancel.
type TouchEndEventProcessor struct {
	Cancel bool
}

func (p *TouchEndEventProcessor) EventType() string {
	if p.Cancel {
		return TypeTouchCancel
	}
	return TypeTouchEnd
}

func (p *TouchEndEventProcessor) Process(ctx context.Context, event signal.Event, targets *signal.Targets) (signal.Signal, error) {
	if targets.Detector == nil {
		return nil, unavailable("activity detector")
	}
	targets.Detector.TouchEnd()
	return signal.NewBaseSignal(p.EventType(), timestampOf(event), nil), nil
}
