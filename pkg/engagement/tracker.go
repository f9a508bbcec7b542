package engagement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/expo-parsely/engagement-tracker/pkg/bridge"
	"github.com/expo-parsely/engagement-tracker/pkg/clock"
)

// Dependencies are the collaborators of a Tracker. Every field is optional.
type Dependencies struct {
	Clock clock.Clock

	// Bridge receives startEngagement/stopEngagement. Nil disables
	// notifications.
	Bridge bridge.Bridge

	// Observer must not call Start or Stop.
	Observer Observer

	Logger logrus.FieldLogger
}

// Tracker owns one engagement session at a time. It judges engagement once
// per heartbeat interval and accumulates engaged seconds while engaged.
//
// Config changes made while a session runs are picked up by the next check:
// the pending check keeps the interval it was scheduled with, and the check
// itself reads the current timeout, callback and interval.
type Tracker struct {
	clock    clock.Clock
	bridge   bridge.Bridge
	observer Observer
	log      *logrus.Entry

	// bridgeMu keeps bridge notifications in transition order.
	// Lock order: bridgeMu, then mu.
	bridgeMu sync.Mutex

	mu           sync.Mutex
	config       Config
	session      *session
	timer        clock.Timer
	generation   uint64
	videoPlaying bool
}

// NewTracker creates a stopped tracker.
func NewTracker(deps Dependencies, config Config) (*Tracker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if deps.Clock == nil {
		deps.Clock = clock.NewReal()
	}
	if deps.Observer == nil {
		deps.Observer = NopObserver{}
	}
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}

	return &Tracker{
		clock:    deps.Clock,
		bridge:   deps.Bridge,
		observer: deps.Observer,
		log:      deps.Logger.WithField("component", "engagement_tracker"),
		config:   config,
	}, nil
}

// Configure merges patch over the current config. Invalid values are
// rejected and leave the config unchanged.
func (t *Tracker) Configure(patch ConfigPatch) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	candidate := patch.Apply(t.config)
	if err := candidate.Validate(); err != nil {
		return err
	}
	t.config = candidate
	return nil
}

// Config returns the current config.
func (t *Tracker) Config() Config {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.config
}

// Start applies patches and opens a new session. It is a no-op when a
// session is already active: patches are neither validated nor applied.
// With heartbeats disabled the patches are kept but no session opens. Only
// configuration errors are returned; bridge failures are logged.
func (t *Tracker) Start(ctx context.Context, patches ...ConfigPatch) error {
	t.bridgeMu.Lock()
	defer t.bridgeMu.Unlock()

	t.mu.Lock()
	if t.session != nil && t.session.active {
		t.mu.Unlock()
		return nil
	}

	cfg := t.config
	for _, p := range patches {
		cfg = p.Apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.mu.Unlock()
		return err
	}
	t.config = cfg
	if !cfg.EnableHeartbeats {
		t.mu.Unlock()
		t.log.Debug("heartbeats disabled, not starting session")
		return nil
	}

	now := t.clock.Now()
	s := &session{
		id:              uuid.NewString(),
		start:           now,
		lastActivityAt:  now,
		lastHeartbeatAt: now,
		active:          true,
	}
	t.session = s
	t.scheduleLocked(cfg.interval())
	t.mu.Unlock()

	t.log.WithFields(logrus.Fields{
		"session_id":         s.id,
		"heartbeat_interval": cfg.HeartbeatIntervalSeconds,
		"active_timeout":     cfg.ActiveTimeoutSeconds,
	}).Info("engagement session started")

	if cfg.Engagement.URL != "" {
		t.notify(ctx, "startEngagement", func(ctx context.Context) error {
			return t.bridge.StartEngagement(ctx, cfg.Engagement)
		})
	} else {
		t.log.WithField("session_id", s.id).Debug("no engagement URL configured, skipping native start")
	}
	t.observer.SessionStarted(s.id)
	return nil
}

// Stop ends the active session with EndReasonStopped. Idempotent.
func (t *Tracker) Stop(ctx context.Context) {
	t.StopWithReason(ctx, EndReasonStopped)
}

// StopWithReason ends the active session, recording reason. Idempotent.
func (t *Tracker) StopWithReason(ctx context.Context, reason EndReason) {
	t.bridgeMu.Lock()
	defer t.bridgeMu.Unlock()

	t.mu.Lock()
	if t.session == nil || !t.session.active {
		t.mu.Unlock()
		return
	}
	id := t.session.id
	status := t.endLocked(t.clock.Now(), reason)
	t.mu.Unlock()

	t.ended(ctx, id, reason, status)
}

// RecordActivity marks the user as active now. It never schedules a check.
func (t *Tracker) RecordActivity() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.config.EnableHeartbeats || t.session == nil || !t.session.active {
		return
	}
	t.touchLocked(t.clock.Now())
}

// SetScrollState sets the scrolling flag of the active session. Scrolling
// also counts as activity.
func (t *Tracker) SetScrollState(scrolling bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil || !t.session.active {
		return
	}
	t.session.scrolling = scrolling
	if scrolling && t.config.EnableHeartbeats {
		t.touchLocked(t.clock.Now())
	}
}

// SetVideoPlaying sets the video flag. It outlives sessions, since it mirrors
// the player rather than the user.
func (t *Tracker) SetVideoPlaying(playing bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.videoPlaying = playing
}

// IsActive reports whether a session is running.
func (t *Tracker) IsActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session != nil && t.session.active
}

// Status returns a snapshot. It has no side effects.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	if t.session == nil {
		return Status{VideoPlaying: t.videoPlaying, ObservedAt: now}
	}
	return t.session.snapshot(now, t.videoPlaying)
}

func (t *Tracker) touchLocked(now time.Time) {
	if now.After(t.session.lastActivityAt) {
		t.session.lastActivityAt = now
	}
	t.session.activities++
}

func (t *Tracker) scheduleLocked(d time.Duration) {
	gen := t.generation
	t.timer = t.clock.AfterFunc(d, func() {
		t.check(gen)
	})
}

// endLocked deactivates the session and cancels the pending check.
func (t *Tracker) endLocked(now time.Time, reason EndReason) Status {
	s := t.session
	s.active = false
	s.endedAt = now
	s.endReason = reason

	t.generation++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	return s.snapshot(now, t.videoPlaying)
}

func (t *Tracker) ended(ctx context.Context, id string, reason EndReason, status Status) {
	t.log.WithFields(logrus.Fields{
		"session_id":      id,
		"reason":          reason,
		"heartbeats":      status.HeartbeatCount,
		"engaged_seconds": status.TotalEngagedSeconds,
	}).Info("engagement session ended")

	t.notify(ctx, "stopEngagement", func(ctx context.Context) error {
		return t.bridge.StopEngagement(ctx)
	})
	t.observer.SessionEnded(id, reason, status)
}

// check is the heartbeat tick for generation gen.
func (t *Tracker) check(gen uint64) {
	ctx := context.Background()

	t.bridgeMu.Lock()
	t.mu.Lock()
	if gen != t.generation || t.session == nil || !t.session.active {
		t.mu.Unlock()
		t.bridgeMu.Unlock()
		return
	}
	t.timer = nil

	s := t.session
	cfg := t.config
	now := t.clock.Now()
	sinceActivity := now.Sub(s.lastActivityAt)
	engaged := t.videoPlaying || s.scrolling || sinceActivity <= cfg.activeTimeout()

	if !engaged {
		status := t.endLocked(now, EndReasonInactivity)
		t.mu.Unlock()

		t.log.WithField("session_id", s.id).Debugf("no activity for %v, ending session", sinceActivity)
		t.ended(ctx, s.id, EndReasonInactivity, status)
		t.bridgeMu.Unlock()
		return
	}

	delta := int(now.Sub(s.lastHeartbeatAt) / time.Second)
	s.engagedSeconds += delta
	s.lastHeartbeatAt = now
	s.heartbeats++

	var (
		expired bool
		status  Status
	)
	if limit := cfg.maxDuration(); limit > 0 && now.Sub(s.start) >= limit {
		expired = true
		status = t.endLocked(now, EndReasonMaxDuration)
	} else {
		t.scheduleLocked(cfg.interval())
	}
	id := s.id
	t.mu.Unlock()

	t.log.WithFields(logrus.Fields{
		"session_id":      id,
		"engaged_seconds": delta,
	}).Debug("heartbeat")
	t.observer.Heartbeat(id, delta)
	if expired {
		t.ended(ctx, id, EndReasonMaxDuration, status)
	}
	t.bridgeMu.Unlock()

	if cfg.OnHeartbeat != nil {
		cfg.OnHeartbeat(delta)
	}
}

func (t *Tracker) notify(ctx context.Context, call string, fn func(ctx context.Context) error) {
	if t.bridge == nil {
		return
	}
	if err := fn(ctx); err != nil {
		t.log.WithField("call", call).Warnf("engagement bridge call failed: %v", err)
		t.observer.BridgeFailed(call, fmt.Errorf("%s: %w", call, err))
	}
}
