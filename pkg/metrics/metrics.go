// Package metrics exposes engagement activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/expo-parsely/engagement-tracker/pkg/bridge"
	"github.com/expo-parsely/engagement-tracker/pkg/engagement"
)

const namespace = "engagement_tracker"

// Engagement implements engagement.Observer and bridge.CallRecorder.
type Engagement struct {
	SessionsStarted   prometheus.Counter
	SessionsEnded     *prometheus.CounterVec
	Heartbeats        prometheus.Counter
	EngagedSeconds    prometheus.Counter
	ActiveSessions    prometheus.Gauge
	SessionEngagement prometheus.Histogram
	BridgeCalls       *prometheus.CounterVec
	BridgeFailures    *prometheus.CounterVec
	BridgeLatency     *prometheus.HistogramVec
}

// NewEngagement creates the collectors. Register them with Register.
func NewEngagement() *Engagement {
	return &Engagement{
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Total number of engagement sessions started",
		}),
		SessionsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_ended_total",
			Help:      "Total number of engagement sessions ended, by reason",
		}, []string{"reason"}),
		Heartbeats: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "heartbeats_total",
			Help:      "Total number of heartbeats emitted",
		}),
		EngagedSeconds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engaged_seconds_total",
			Help:      "Total engaged seconds reported by heartbeats",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of sessions currently running",
		}),
		SessionEngagement: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_engaged_seconds",
			Help:      "Engaged seconds per finished session",
			Buckets:   []float64{0, 10, 30, 60, 150, 300, 600, 1800, 3600},
		}),
		BridgeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bridge_calls_total",
			Help:      "Total number of native bridge calls",
		}, []string{"call"}),
		BridgeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bridge_failures_total",
			Help:      "Total number of failed native bridge calls",
		}, []string{"call"}),
		BridgeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bridge_call_duration_seconds",
			Help:      "Latency of native bridge calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"call"}),
	}
}

// Collectors returns every collector.
func (m *Engagement) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.SessionsStarted,
		m.SessionsEnded,
		m.Heartbeats,
		m.EngagedSeconds,
		m.ActiveSessions,
		m.SessionEngagement,
		m.BridgeCalls,
		m.BridgeFailures,
		m.BridgeLatency,
	}
}

// Register adds every collector to registerer.
func (m *Engagement) Register(registerer prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := registerer.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// SessionStarted implements engagement.Observer.
func (m *Engagement) SessionStarted(string) {
	m.SessionsStarted.Inc()
	m.ActiveSessions.Inc()
}

// Heartbeat implements engagement.Observer.
func (m *Engagement) Heartbeat(_ string, engagedSeconds int) {
	m.Heartbeats.Inc()
	m.EngagedSeconds.Add(float64(engagedSeconds))
}

// SessionEnded implements engagement.Observer.
func (m *Engagement) SessionEnded(_ string, reason engagement.EndReason, status engagement.Status) {
	m.SessionsEnded.WithLabelValues(string(reason)).Inc()
	m.ActiveSessions.Dec()
	m.SessionEngagement.Observe(float64(status.TotalEngagedSeconds))
}

// BridgeFailed implements engagement.Observer. Failures of instrumented
// bridges are already counted by RecordBridgeCall.
func (m *Engagement) BridgeFailed(string, error) {}

// RecordBridgeCall implements bridge.CallRecorder.
func (m *Engagement) RecordBridgeCall(call string, duration time.Duration, err error) {
	m.BridgeCalls.WithLabelValues(call).Inc()
	m.BridgeLatency.WithLabelValues(call).Observe(duration.Seconds())
	if err != nil {
		m.BridgeFailures.WithLabelValues(call).Inc()
	}
}

var (
	_ engagement.Observer = (*Engagement)(nil)
	_ bridge.CallRecorder = (*Engagement)(nil)
)
