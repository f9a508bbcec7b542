// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/expo-parsely/engagement-tracker/pkg/activity"
	"github.com/expo-parsely/engagement-tracker/pkg/bridge"
	"github.com/expo-parsely/engagement-tracker/pkg/clock"
	"github.com/expo-parsely/engagement-tracker/pkg/element"
	"github.com/expo-parsely/engagement-tracker/pkg/engagement"
	"github.com/expo-parsely/engagement-tracker/pkg/lifecycle"
	"github.com/expo-parsely/engagement-tracker/pkg/profile"
)

// Components are the tracking components built from a profile.
type Components struct {
	Tracker   *engagement.Tracker
	Detector  *activity.Detector
	Lifecycle *lifecycle.Observer
	Elements  *element.Tracker
}

// InitTracker creates the engagement tracker, gesture detector, lifecycle
// observer and element tracker described by p, and registers the profile's
// elements.
func InitTracker(ctx context.Context, clk clock.Clock, p *profile.Profile, b bridge.Bridge, observer engagement.Observer) (*Components, error) {
	cfg := p.HeartbeatPatch().Apply(engagement.DefaultConfig())
	cfg.OnHeartbeat = func(engagedSeconds int) {
		logrus.Debugf("heartbeat: %d engaged seconds", engagedSeconds)
	}

	tracker, err := engagement.NewTracker(engagement.Dependencies{
		Clock:    clk,
		Bridge:   b,
		Observer: observer,
		Logger:   logrus.StandardLogger(),
	}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create engagement tracker: %w", err)
	}
	logrus.Infof("initialized engagement tracker (interval: %ds, timeout: %ds)",
		cfg.HeartbeatIntervalSeconds, cfg.ActiveTimeoutSeconds)

	detector, err := activity.NewDetector(clk, tracker, p.ActivityConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create activity detector: %w", err)
	}

	elements := element.NewTracker(clk, b)
	for _, def := range p.ElementDefinitions() {
		if err := elements.Register(ctx, def); err != nil {
			return nil, fmt.Errorf("failed to register element %s: %w", def.ID, err)
		}
	}
	logrus.Infof("registered %d tracked elements", elements.Count())

	return &Components{
		Tracker:   tracker,
		Detector:  detector,
		Lifecycle: lifecycle.NewObserver(tracker),
		Elements:  elements,
	}, nil
}

// Close stops the session and releases timers.
func (c *Components) Close(ctx context.Context) {
	c.Detector.Close()
	c.Tracker.Stop(ctx)
}
