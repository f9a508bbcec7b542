package bridge

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogBridge stands in for the native SDK by writing every call as a
// structured log entry. It enforces the same preconditions as the SDK.
type LogBridge struct {
	mu     sync.RWMutex
	siteID string
	log    *logrus.Entry
}

// NewLogBridge returns an uninitialized LogBridge writing to logger.
func NewLogBridge(logger logrus.FieldLogger) *LogBridge {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogBridge{log: logger.WithField("component", "parsely_bridge")}
}

// Init implements Bridge.
func (b *LogBridge) Init(_ context.Context, siteID string) error {
	if strings.TrimSpace(siteID) == "" {
		return ErrMissingSiteID
	}

	b.mu.Lock()
	b.siteID = siteID
	b.mu.Unlock()

	b.log.WithField("site_id", siteID).Info("parsely tracker initialized")
	return nil
}

// SiteID returns the site the bridge was initialized with.
func (b *LogBridge) SiteID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.siteID
}

func (b *LogBridge) entry(call string) (*logrus.Entry, error) {
	siteID := b.SiteID()
	if siteID == "" {
		return nil, fmt.Errorf("%s: %w", call, ErrNotInitialized)
	}
	return b.log.WithFields(logrus.Fields{"call": call, "site_id": siteID}), nil
}

// TrackPageView implements Bridge.
func (b *LogBridge) TrackPageView(_ context.Context, opts PageViewOptions) error {
	entry, err := b.entry("trackPageView")
	if err != nil {
		return err
	}
	if opts.URL == "" {
		return fmt.Errorf("trackPageView: %w", ErrMissingURL)
	}

	fields := logrus.Fields{"url": opts.URL}
	if opts.URLRef != "" {
		fields["urlref"] = opts.URLRef
	}
	if opts.SiteID != "" {
		fields["site_id"] = opts.SiteID
	}
	if opts.Action != "" {
		fields["action"] = opts.Action
	}
	if opts.Metadata != nil && opts.Metadata.Title != "" {
		fields["title"] = opts.Metadata.Title
	}
	if len(opts.ExtraData) > 0 {
		fields["extra_data"] = opts.ExtraData
	}
	entry.WithFields(fields).Info("page view")
	return nil
}

// StartEngagement implements Bridge.
func (b *LogBridge) StartEngagement(_ context.Context, opts EngagementOptions) error {
	entry, err := b.entry("startEngagement")
	if err != nil {
		return err
	}
	if opts.URL == "" {
		return fmt.Errorf("startEngagement: %w", ErrMissingURL)
	}

	fields := logrus.Fields{"url": opts.URL}
	if opts.URLRef != "" {
		fields["urlref"] = opts.URLRef
	}
	if opts.SiteID != "" {
		fields["site_id"] = opts.SiteID
	}
	if len(opts.ExtraData) > 0 {
		fields["extra_data"] = opts.ExtraData
	}
	entry.WithFields(fields).Info("engagement started")
	return nil
}

// StopEngagement implements Bridge.
func (b *LogBridge) StopEngagement(_ context.Context) error {
	entry, err := b.entry("stopEngagement")
	if err != nil {
		return err
	}
	entry.Info("engagement stopped")
	return nil
}

// TrackPlay implements Bridge.
func (b *LogBridge) TrackPlay(_ context.Context, opts PlayOptions) error {
	entry, err := b.entry("trackPlay")
	if err != nil {
		return err
	}
	if opts.URL == "" {
		return fmt.Errorf("trackPlay: %w", ErrMissingURL)
	}
	entry.WithFields(logrus.Fields{
		"url":      opts.URL,
		"video_id": opts.Video.VideoID,
		"duration": opts.Video.Duration,
	}).Info("video play")
	return nil
}

// TrackPause implements Bridge.
func (b *LogBridge) TrackPause(_ context.Context) error {
	entry, err := b.entry("trackPause")
	if err != nil {
		return err
	}
	entry.Info("video pause")
	return nil
}

// ResetVideo implements Bridge.
func (b *LogBridge) ResetVideo(_ context.Context) error {
	entry, err := b.entry("resetVideo")
	if err != nil {
		return err
	}
	entry.Info("video reset")
	return nil
}

// TrackElement implements Bridge.
func (b *LogBridge) TrackElement(_ context.Context, event ElementEvent) error {
	entry, err := b.entry("trackElement")
	if err != nil {
		return err
	}
	if err := ValidateElementEvent(event); err != nil {
		return fmt.Errorf("trackElement: %w", err)
	}
	entry.WithFields(logrus.Fields{
		"action":       event.Action,
		"element_type": event.ElementType,
		"element_id":   event.ElementID,
		"location":     event.Location,
	}).Info("element event")
	return nil
}

// ValidateElementEvent checks the action and identifiers of an element event.
func ValidateElementEvent(event ElementEvent) error {
	switch event.Action {
	case ElementImpression, ElementView, ElementClick:
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidElementEvent, event.Action)
	}
	if event.ElementID == "" {
		return fmt.Errorf("%w: element id is required", ErrInvalidElementEvent)
	}
	if event.ElementType == "" {
		return fmt.Errorf("%w: element type is required", ErrInvalidElementEvent)
	}
	return nil
}
