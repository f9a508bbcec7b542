package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/expo-parsely/engagement-tracker/internal/bootstrap"
	"github.com/expo-parsely/engagement-tracker/pkg/bridge"
	"github.com/expo-parsely/engagement-tracker/pkg/clock"
	"github.com/expo-parsely/engagement-tracker/pkg/common"
	"github.com/expo-parsely/engagement-tracker/pkg/engagement"
)

var replayEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// Result summarizes a replay.
type Result struct {
	Final  engagement.Status
	Config engagement.Config
	Failed int
}

// timeline prints session events with their offset into the replay.
type timeline struct {
	out   io.Writer
	clock clock.Clock
	start time.Time
}

func (l *timeline) printf(format string, args ...interface{}) {
	offset := l.clock.Now().Sub(l.start)
	_, _ = fmt.Fprintf(l.out, "[%6s] %s\n", offset, fmt.Sprintf(format, args...))
}

func (l *timeline) SessionStarted(string) {
	l.printf("session started")
}

func (l *timeline) Heartbeat(_ string, engagedSeconds int) {
	l.printf("heartbeat +%ds", engagedSeconds)
}

func (l *timeline) SessionEnded(_ string, reason engagement.EndReason, st engagement.Status) {
	l.printf("session ended (%s): %d heartbeats, %ds engaged", reason, st.HeartbeatCount, st.TotalEngagedSeconds)
}

func (l *timeline) BridgeFailed(call string, err error) {
	l.printf("bridge %s failed: %v", call, err)
}

// Replay runs s on a fake clock and writes the timeline to out.
func Replay(ctx context.Context, s *Scenario, out io.Writer, logger logrus.FieldLogger) (*Result, error) {
	clk := clock.NewFake(replayEpoch)
	tl := &timeline{out: out, clock: clk, start: replayEpoch}

	params := s.Profile.CommonParameters()
	siteID := params.SiteID
	if siteID == "" {
		siteID = common.GetEnv("PARSELY_SITE_ID", "")
	}
	if siteID == "" {
		siteID = "replay.local"
	}
	params.SiteID = siteID

	analytics := bridge.NewParameterized(bridge.NewLogBridge(logger))
	analytics.SetCommonParameters(params)
	if err := analytics.Init(ctx, siteID); err != nil {
		return nil, err
	}

	components, err := bootstrap.InitTracker(ctx, clk, &s.Profile, analytics, tl)
	if err != nil {
		return nil, err
	}
	defer components.Detector.Close()
	dispatcher := bootstrap.InitDispatcher(components, analytics)

	result := &Result{}
	for _, step := range s.Steps {
		clk.Set(replayEpoch.Add(step.At))

		event, err := step.event(replayEpoch)
		if err == nil {
			_, err = dispatcher.Dispatch(ctx, event)
		}
		if err != nil {
			result.Failed++
			tl.printf("%s failed: %v", step.Event, err)
			continue
		}
		logger.Debugf("applied %s at %v", step.Event, step.At)
	}
	clk.Set(replayEpoch.Add(s.End()))

	result.Final = components.Tracker.Status()
	result.Config = components.Tracker.Config()
	return result, nil
}
