package engagement

import "time"

// EndReason tells why a session stopped.
type EndReason string

const (
	EndReasonNone        EndReason = ""
	EndReasonStopped     EndReason = "stopped"
	EndReasonBackground  EndReason = "background"
	EndReasonInactivity  EndReason = "inactivity"
	EndReasonMaxDuration EndReason = "max_duration"
)

type session struct {
	id              string
	start           time.Time
	lastActivityAt  time.Time
	lastHeartbeatAt time.Time
	endedAt         time.Time
	engagedSeconds  int
	heartbeats      int
	activities      int
	active          bool
	scrolling       bool
	endReason       EndReason
}

// Status is a point-in-time snapshot of the tracker.
type Status struct {
	IsActive               bool      `json:"isActive"`
	SessionID              string    `json:"sessionId,omitempty"`
	SessionStart           time.Time `json:"sessionStart"`
	LastActivityAt         time.Time `json:"lastActivityAt"`
	LastHeartbeatAt        time.Time `json:"lastHeartbeatAt"`
	SessionDurationSeconds int       `json:"sessionDurationSeconds"`
	TimeSinceActivity      int       `json:"timeSinceActivitySeconds"`
	HeartbeatCount         int       `json:"heartbeatCount"`
	TotalEngagedSeconds    int       `json:"totalEngagedSeconds"`
	TotalActivities        int       `json:"totalActivities"`
	IsScrolling            bool      `json:"isScrolling"`
	VideoPlaying           bool      `json:"videoPlaying"`
	EndReason              EndReason `json:"endReason,omitempty"`
	ObservedAt             time.Time `json:"observedAt"`
}

// Engaged reports whether the snapshot would be judged engaged by a check
// using timeout.
func (s Status) Engaged(timeout time.Duration) bool {
	if !s.IsActive {
		return false
	}
	return s.VideoPlaying || s.IsScrolling || s.ObservedAt.Sub(s.LastActivityAt) <= timeout
}

func (s *session) snapshot(now time.Time, videoPlaying bool) Status {
	until := now
	if !s.active {
		until = s.endedAt
	}
	return Status{
		IsActive:               s.active,
		SessionID:              s.id,
		SessionStart:           s.start,
		LastActivityAt:         s.lastActivityAt,
		LastHeartbeatAt:        s.lastHeartbeatAt,
		SessionDurationSeconds: int(until.Sub(s.start) / time.Second),
		TimeSinceActivity:      int(now.Sub(s.lastActivityAt) / time.Second),
		HeartbeatCount:         s.heartbeats,
		TotalEngagedSeconds:    s.engagedSeconds,
		TotalActivities:        s.activities,
		IsScrolling:            s.scrolling,
		VideoPlaying:           videoPlaying,
		EndReason:              s.endReason,
		ObservedAt:             now,
	}
}
