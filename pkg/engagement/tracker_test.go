package engagement

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/expo-parsely/engagement-tracker/pkg/bridge"
	"github.com/expo-parsely/engagement-tracker/pkg/bridge/mock"
	"github.com/expo-parsely/engagement-tracker/pkg/clock"
)

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type recordingObserver struct {
	mu         sync.Mutex
	started    []string
	heartbeats []int
	ended      []EndReason
	failures   []string
}

func (o *recordingObserver) SessionStarted(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started = append(o.started, id)
}

func (o *recordingObserver) Heartbeat(_ string, engagedSeconds int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.heartbeats = append(o.heartbeats, engagedSeconds)
}

func (o *recordingObserver) SessionEnded(_ string, reason EndReason, _ Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ended = append(o.ended, reason)
}

func (o *recordingObserver) BridgeFailed(call string, _ error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures = append(o.failures, call)
}

type fixture struct {
	clock    *clock.Fake
	bridge   *mock.Bridge
	observer *recordingObserver
	tracker  *Tracker
	beats    []int
}

// newFixture builds a tracker with a 10s interval and 5s timeout on a fake clock.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		clock:    clock.NewFake(epoch),
		bridge:   mock.NewBridge(),
		observer: &recordingObserver{},
	}
	logger, _ := test.NewNullLogger()

	cfg := DefaultConfig()
	cfg.HeartbeatIntervalSeconds = 10
	cfg.ActiveTimeoutSeconds = 5
	cfg.Engagement = bridge.EngagementOptions{URL: "https://example.com/article"}
	cfg.OnHeartbeat = func(engagedSeconds int) {
		f.beats = append(f.beats, engagedSeconds)
	}

	tracker, err := NewTracker(Dependencies{
		Clock:    f.clock,
		Bridge:   f.bridge,
		Observer: f.observer,
		Logger:   logger,
	}, cfg)
	if err != nil {
		t.Fatalf("Failed to create tracker: %v", err)
	}
	f.tracker = tracker
	return f
}

func (f *fixture) start(t *testing.T) {
	t.Helper()
	if err := f.tracker.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
}

func TestTracker_NoDoubleCounting(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	for i := 0; i < 3; i++ {
		f.clock.Advance(9 * time.Second)
		f.tracker.RecordActivity()
		f.clock.Advance(1 * time.Second)
	}

	status := f.tracker.Status()
	if status.HeartbeatCount != 3 {
		t.Fatalf("Expected 3 heartbeats, got %d", status.HeartbeatCount)
	}
	if status.TotalEngagedSeconds != 30 {
		t.Errorf("Expected 30 engaged seconds, got %d", status.TotalEngagedSeconds)
	}
	if len(f.beats) != 3 || f.beats[0] != 10 || f.beats[1] != 10 || f.beats[2] != 10 {
		t.Errorf("Expected heartbeat deltas [10 10 10], got %v", f.beats)
	}
	if !status.LastHeartbeatAt.Equal(epoch.Add(30 * time.Second)) {
		t.Errorf("Unexpected last heartbeat time %v", status.LastHeartbeatAt)
	}
	if f.clock.Pending() != 1 {
		t.Errorf("Expected exactly one pending check, got %d", f.clock.Pending())
	}
}

func TestTracker_FloorsPartialSeconds(t *testing.T) {
	f := newFixture(t)
	f.clock.Advance(300 * time.Millisecond)
	f.start(t)

	// Status reports whole seconds even though the session began mid-second.
	f.clock.Advance(1700 * time.Millisecond)
	if got := f.tracker.Status().SessionDurationSeconds; got != 1 {
		t.Errorf("Expected session duration 1s, got %d", got)
	}

	f.tracker.SetVideoPlaying(true)
	f.clock.Advance(8300 * time.Millisecond)
	if f.tracker.Status().TotalEngagedSeconds != 10 {
		t.Errorf("Expected 10 engaged seconds, got %d", f.tracker.Status().TotalEngagedSeconds)
	}
}

func TestTracker_StartIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	first := f.tracker.Status()

	f.clock.Advance(2 * time.Second)
	f.start(t)
	second := f.tracker.Status()

	if first.SessionID != second.SessionID {
		t.Errorf("Expected the same session, got %s and %s", first.SessionID, second.SessionID)
	}
	if !second.SessionStart.Equal(epoch) {
		t.Errorf("Expected session start to stay at %v, got %v", epoch, second.SessionStart)
	}
	if f.clock.Pending() != 1 {
		t.Errorf("Expected exactly one pending check, got %d", f.clock.Pending())
	}
	if n := f.bridge.Count("startEngagement"); n != 1 {
		t.Errorf("Expected 1 startEngagement call, got %d", n)
	}
}

func TestTracker_StopIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	f.tracker.Stop(context.Background())
	f.tracker.Stop(context.Background())

	status := f.tracker.Status()
	if status.IsActive {
		t.Error("Expected inactive session after stop")
	}
	if status.EndReason != EndReasonStopped {
		t.Errorf("Expected end reason %q, got %q", EndReasonStopped, status.EndReason)
	}
	if n := f.bridge.Count("stopEngagement"); n != 1 {
		t.Errorf("Expected 1 stopEngagement call, got %d", n)
	}
	if f.clock.Pending() != 0 {
		t.Errorf("Expected no pending check, got %d", f.clock.Pending())
	}
	if len(f.observer.ended) != 1 {
		t.Errorf("Expected 1 session end, got %d", len(f.observer.ended))
	}
}

func TestTracker_StopBeforeStart(t *testing.T) {
	f := newFixture(t)
	f.tracker.Stop(context.Background())

	if f.tracker.IsActive() {
		t.Error("Expected tracker to stay inactive")
	}
	if len(f.bridge.Calls()) != 0 {
		t.Errorf("Expected no bridge calls, got %v", f.bridge.Names())
	}
}

func TestTracker_InactivityTermination(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	f.clock.Advance(10 * time.Second)

	status := f.tracker.Status()
	if status.IsActive {
		t.Fatal("Expected session to end after inactivity")
	}
	if status.HeartbeatCount != 0 {
		t.Errorf("Expected 0 heartbeats, got %d", status.HeartbeatCount)
	}
	if status.EndReason != EndReasonInactivity {
		t.Errorf("Expected end reason %q, got %q", EndReasonInactivity, status.EndReason)
	}
	if f.clock.Pending() != 0 {
		t.Errorf("Expected no further scheduling, got %d pending", f.clock.Pending())
	}
	if len(f.beats) != 0 {
		t.Errorf("Expected no heartbeat callback, got %v", f.beats)
	}
	if n := f.bridge.Count("stopEngagement"); n != 1 {
		t.Errorf("Expected 1 stopEngagement call, got %d", n)
	}

	// Activity after the session ended is ignored until a restart.
	f.tracker.RecordActivity()
	f.clock.Advance(30 * time.Second)
	if f.tracker.IsActive() || f.tracker.Status().TotalActivities != 0 {
		t.Error("Expected ended session to ignore activity")
	}
}

func TestTracker_ActivityWithinTimeoutKeepsSession(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	f.clock.Advance(5 * time.Second)
	f.tracker.RecordActivity()
	if f.clock.Pending() != 1 {
		t.Errorf("Expected activity not to schedule a check, got %d pending", f.clock.Pending())
	}

	// Exactly at the timeout still counts as engaged.
	f.clock.Advance(5 * time.Second)

	status := f.tracker.Status()
	if !status.IsActive || status.HeartbeatCount != 1 {
		t.Errorf("Expected an engaged tick, got active=%v heartbeats=%d", status.IsActive, status.HeartbeatCount)
	}
	if status.TotalActivities != 1 {
		t.Errorf("Expected 1 recorded activity, got %d", status.TotalActivities)
	}
}

func TestTracker_ScrollOverridesTimeout(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.tracker.SetScrollState(true)

	f.clock.Advance(10 * time.Second)

	status := f.tracker.Status()
	if !status.IsActive {
		t.Fatal("Expected scrolling session to remain active")
	}
	if status.HeartbeatCount != 1 {
		t.Errorf("Expected 1 heartbeat, got %d", status.HeartbeatCount)
	}
	if !status.IsScrolling {
		t.Error("Expected scrolling flag to be reported")
	}

	f.tracker.SetScrollState(false)
	f.clock.Advance(10 * time.Second)
	if f.tracker.IsActive() {
		t.Error("Expected session to end once scrolling stopped and activity went stale")
	}
}

func TestTracker_ScrollStateIsSessionScoped(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.tracker.SetScrollState(true)
	f.tracker.Stop(context.Background())

	f.start(t)
	if f.tracker.Status().IsScrolling {
		t.Error("Expected a new session to start without the previous scroll flag")
	}
}

func TestTracker_VideoOverridesEverything(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.tracker.SetVideoPlaying(true)

	f.clock.Advance(50 * time.Second)

	status := f.tracker.Status()
	if !status.IsActive {
		t.Fatal("Expected video session to remain active")
	}
	if status.HeartbeatCount != 5 {
		t.Errorf("Expected 5 heartbeats, got %d", status.HeartbeatCount)
	}
	if status.TotalEngagedSeconds != 50 {
		t.Errorf("Expected 50 engaged seconds, got %d", status.TotalEngagedSeconds)
	}

	f.tracker.SetVideoPlaying(false)
	f.clock.Advance(10 * time.Second)
	if f.tracker.IsActive() {
		t.Error("Expected session to end after video paused with no activity")
	}
}

func TestTracker_BackgroundForeground(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	firstID := f.tracker.Status().SessionID

	f.clock.Advance(3 * time.Second)
	f.tracker.StopWithReason(context.Background(), EndReasonBackground)
	if f.tracker.IsActive() {
		t.Fatal("Expected background to stop the session")
	}

	f.clock.Advance(7 * time.Second)
	if got := f.tracker.Status().HeartbeatCount; got != 0 {
		t.Errorf("Expected cancelled tick, got %d heartbeats", got)
	}

	f.clock.Advance(10 * time.Second)
	f.start(t)

	status := f.tracker.Status()
	if status.SessionID == firstID {
		t.Error("Expected a new session on foreground")
	}
	if !status.SessionStart.Equal(epoch.Add(20 * time.Second)) {
		t.Errorf("Expected session start at 20s, got %v", status.SessionStart.Sub(epoch))
	}
	if status.HeartbeatCount != 0 || status.TotalEngagedSeconds != 0 {
		t.Errorf("Expected fresh counters, got %+v", status)
	}
	want := []EndReason{EndReasonBackground}
	if len(f.observer.ended) != 1 || f.observer.ended[0] != want[0] {
		t.Errorf("Expected end reasons %v, got %v", want, f.observer.ended)
	}
}

func TestTracker_ReconfigureKeepsPendingInterval(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.tracker.SetVideoPlaying(true)

	f.clock.Advance(2 * time.Second)
	if err := f.tracker.Configure(ConfigPatch{HeartbeatIntervalSeconds: Int(30)}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	// The pending tick still fires at 10s.
	f.clock.Advance(8 * time.Second)
	if got := f.tracker.Status().HeartbeatCount; got != 1 {
		t.Fatalf("Expected the pending tick to fire at 10s, got %d heartbeats", got)
	}

	// The next one is scheduled with the new interval.
	f.clock.Advance(29 * time.Second)
	if got := f.tracker.Status().HeartbeatCount; got != 1 {
		t.Errorf("Expected no tick before 40s, got %d heartbeats", got)
	}
	f.clock.Advance(1 * time.Second)
	if got := f.tracker.Status().HeartbeatCount; got != 2 {
		t.Errorf("Expected a tick at 40s, got %d heartbeats", got)
	}
	if f.beats[1] != 30 {
		t.Errorf("Expected second delta of 30s, got %d", f.beats[1])
	}
}

func TestTracker_TickReadsCurrentTimeout(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	if err := f.tracker.Configure(ConfigPatch{ActiveTimeoutSeconds: Int(20)}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	f.clock.Advance(10 * time.Second)

	if !f.tracker.IsActive() {
		t.Error("Expected the tick to judge with the updated timeout")
	}
}

func TestTracker_ConfigurationErrors(t *testing.T) {
	f := newFixture(t)

	err := f.tracker.Configure(ConfigPatch{HeartbeatIntervalSeconds: Int(0)})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}
	if got := f.tracker.Config().HeartbeatIntervalSeconds; got != 10 {
		t.Errorf("Expected config to be unchanged, got interval %d", got)
	}

	err = f.tracker.Start(context.Background(), ConfigPatch{ActiveTimeoutSeconds: Int(-1)})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig from Start, got %v", err)
	}
	if f.tracker.IsActive() {
		t.Error("Expected rejected start not to open a session")
	}

	if _, err := NewTracker(Dependencies{}, Config{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig from NewTracker, got %v", err)
	}
}

func TestTracker_StartAppliesPatchesWhenInactive(t *testing.T) {
	f := newFixture(t)
	if f.tracker.IsActive() {
		t.Fatal("Expected a stopped tracker")
	}

	err := f.tracker.Start(context.Background(), ConfigPatch{
		HeartbeatIntervalSeconds: Int(20),
		Engagement:               &bridge.EngagementOptions{URL: "https://example.com/other"},
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	f.tracker.SetVideoPlaying(true)

	f.clock.Advance(10 * time.Second)
	if got := f.tracker.Status().HeartbeatCount; got != 0 {
		t.Errorf("Expected no tick at 10s with a 20s interval, got %d", got)
	}
	f.clock.Advance(10 * time.Second)
	if got := f.tracker.Status().HeartbeatCount; got != 1 {
		t.Errorf("Expected a tick at 20s, got %d", got)
	}

	calls := f.bridge.Calls()
	if calls[0].Engagement == nil || calls[0].Engagement.URL != "https://example.com/other" {
		t.Errorf("Expected patched engagement URL, got %+v", calls[0])
	}
}

func TestTracker_StartOnActiveSessionIgnoresPatches(t *testing.T) {
	f := newFixture(t)
	if err := f.tracker.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	before := f.tracker.Config()
	id := f.tracker.Status().SessionID

	if err := f.tracker.Start(context.Background(), ConfigPatch{HeartbeatIntervalSeconds: Int(0)}); err != nil {
		t.Errorf("Expected invalid patch on an active session to be ignored, got %v", err)
	}
	err := f.tracker.Start(context.Background(), ConfigPatch{
		ActiveTimeoutSeconds: Int(60),
		Engagement:           &bridge.EngagementOptions{URL: "https://example.com/other"},
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	after := f.tracker.Config()
	if after.ActiveTimeoutSeconds != before.ActiveTimeoutSeconds || after.HeartbeatIntervalSeconds != before.HeartbeatIntervalSeconds {
		t.Errorf("Expected config unchanged, got timeout %d interval %d", after.ActiveTimeoutSeconds, after.HeartbeatIntervalSeconds)
	}
	if after.Engagement.URL != "https://example.com/article" {
		t.Errorf("Expected engagement target unchanged, got %q", after.Engagement.URL)
	}
	if got := f.tracker.Status().SessionID; got != id {
		t.Errorf("Expected the same session, got %q want %q", got, id)
	}
	if got := f.bridge.Count("startEngagement"); got != 1 {
		t.Errorf("Expected 1 startEngagement call, got %d", got)
	}

	// The original 5s timeout still applies at the first tick.
	f.clock.Advance(10 * time.Second)
	if f.tracker.IsActive() {
		t.Error("Expected the session to end on the original timeout")
	}
}

func TestObservers_FanOut(t *testing.T) {
	first, second := &recordingObserver{}, &recordingObserver{}
	obs := Observers{first, second}

	obs.SessionStarted("s1")
	obs.Heartbeat("s1", 10)
	obs.BridgeFailed("stopEngagement", errors.New("boom"))
	obs.SessionEnded("s1", EndReasonStopped, Status{})

	for i, o := range []*recordingObserver{first, second} {
		if len(o.started) != 1 || len(o.heartbeats) != 1 || o.heartbeats[0] != 10 {
			t.Errorf("observer %d: unexpected events %+v", i, o)
		}
		if len(o.failures) != 1 || len(o.ended) != 1 || o.ended[0] != EndReasonStopped {
			t.Errorf("observer %d: unexpected end events %+v", i, o)
		}
	}
}

func TestTracker_HeartbeatsDisabled(t *testing.T) {
	f := newFixture(t)
	if err := f.tracker.Configure(ConfigPatch{EnableHeartbeats: Bool(false)}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	f.start(t)
	f.tracker.RecordActivity()

	if f.tracker.IsActive() {
		t.Error("Expected disabled tracker not to start")
	}
	if f.clock.Pending() != 0 {
		t.Errorf("Expected nothing scheduled, got %d", f.clock.Pending())
	}
	if len(f.bridge.Calls()) != 0 {
		t.Errorf("Expected no bridge calls, got %v", f.bridge.Names())
	}
}

func TestTracker_BridgeFailureDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.bridge.Err = errors.New("native module unavailable")

	f.start(t)
	if !f.tracker.IsActive() {
		t.Fatal("Expected session to start despite bridge failure")
	}

	f.tracker.Stop(context.Background())
	if f.tracker.IsActive() {
		t.Fatal("Expected session to stop despite bridge failure")
	}

	want := []string{"startEngagement", "stopEngagement"}
	if len(f.observer.failures) != 2 || f.observer.failures[0] != want[0] || f.observer.failures[1] != want[1] {
		t.Errorf("Expected failures %v, got %v", want, f.observer.failures)
	}
}

func TestTracker_SkipsNativeStartWithoutURL(t *testing.T) {
	f := newFixture(t)
	if err := f.tracker.Configure(ConfigPatch{Engagement: &bridge.EngagementOptions{}}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	f.start(t)
	if !f.tracker.IsActive() {
		t.Fatal("Expected session to start")
	}
	if n := f.bridge.Count("startEngagement"); n != 0 {
		t.Errorf("Expected no startEngagement without a URL, got %d", n)
	}
}

func TestTracker_MaxSessionDuration(t *testing.T) {
	f := newFixture(t)
	if err := f.tracker.Configure(ConfigPatch{MaxSessionDurationSeconds: Int(25)}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	f.start(t)
	f.tracker.SetVideoPlaying(true)

	f.clock.Advance(60 * time.Second)

	status := f.tracker.Status()
	if status.IsActive {
		t.Fatal("Expected session to end at max duration")
	}
	if status.HeartbeatCount != 3 {
		t.Errorf("Expected the final tick to still emit a heartbeat, got %d", status.HeartbeatCount)
	}
	if status.EndReason != EndReasonMaxDuration {
		t.Errorf("Expected end reason %q, got %q", EndReasonMaxDuration, status.EndReason)
	}
	if status.SessionDurationSeconds != 30 {
		t.Errorf("Expected frozen duration of 30s, got %d", status.SessionDurationSeconds)
	}
}

// manualClock captures callbacks and never cancels them, so a tick can be
// delivered after its session was stopped.
type manualClock struct {
	now       time.Time
	callbacks []func()
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return false }

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) AfterFunc(_ time.Duration, f func()) clock.Timer {
	c.callbacks = append(c.callbacks, f)
	return noopTimer{}
}

func TestTracker_LateTickAfterStopIsIgnored(t *testing.T) {
	clk := &manualClock{now: epoch}
	logger, _ := test.NewNullLogger()
	cfg := DefaultConfig()
	cfg.HeartbeatIntervalSeconds = 10

	tracker, err := NewTracker(Dependencies{Clock: clk, Logger: logger}, cfg)
	if err != nil {
		t.Fatalf("Failed to create tracker: %v", err)
	}
	if err := tracker.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	tracker.SetVideoPlaying(true)
	tracker.Stop(context.Background())

	// Restart so a live session exists when the stale tick arrives.
	clk.now = epoch.Add(5 * time.Second)
	if err := tracker.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	clk.now = epoch.Add(10 * time.Second)
	clk.callbacks[0]()

	status := tracker.Status()
	if status.HeartbeatCount != 0 {
		t.Errorf("Expected stale tick to be ignored, got %d heartbeats", status.HeartbeatCount)
	}
	if len(clk.callbacks) != 2 {
		t.Errorf("Expected stale tick not to reschedule, got %d callbacks", len(clk.callbacks))
	}

	clk.now = epoch.Add(15 * time.Second)
	clk.callbacks[1]()
	if got := tracker.Status().HeartbeatCount; got != 1 {
		t.Errorf("Expected the live tick to count, got %d heartbeats", got)
	}
}

func TestTracker_CallbackMayStopTracker(t *testing.T) {
	f := newFixture(t)
	f.tracker.SetVideoPlaying(true)
	if err := f.tracker.Configure(ConfigPatch{OnHeartbeat: func(int) {
		f.tracker.Stop(context.Background())
	}}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	f.start(t)

	f.clock.Advance(10 * time.Second)

	if f.tracker.IsActive() {
		t.Error("Expected the heartbeat callback to stop the tracker")
	}
	if f.clock.Pending() != 0 {
		t.Errorf("Expected rescheduled check to be cancelled, got %d pending", f.clock.Pending())
	}
}

func TestTracker_StatusBeforeStart(t *testing.T) {
	f := newFixture(t)
	f.tracker.SetVideoPlaying(true)

	status := f.tracker.Status()
	if status.IsActive || status.SessionID != "" || status.HeartbeatCount != 0 {
		t.Errorf("Expected empty status, got %+v", status)
	}
	if !status.VideoPlaying {
		t.Error("Expected video flag to be reported before a session exists")
	}
}

func TestTracker_ConcurrentUse(t *testing.T) {
	logger, _ := test.NewNullLogger()
	tracker, err := NewTracker(Dependencies{Logger: logger, Bridge: mock.NewBridge()}, DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create tracker: %v", err)
	}
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				switch (i + j) % 5 {
				case 0:
					_ = tracker.Start(ctx)
				case 1:
					tracker.RecordActivity()
				case 2:
					tracker.SetScrollState(j%2 == 0)
				case 3:
					_ = tracker.Status()
				case 4:
					tracker.Stop(ctx)
				}
			}
		}(i)
	}
	wg.Wait()
	tracker.Stop(ctx)

	if tracker.IsActive() {
		t.Error("Expected tracker to be stopped")
	}
}
