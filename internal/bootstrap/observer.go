// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/sirupsen/logrus"

	"github.com/expo-parsely/engagement-tracker/pkg/engagement"
)

// SessionLogger is an engagement.Observer that writes a summary line per
// session and counts bridge failures for the running session. The tracker
// serializes observer calls, so no locking is needed.
type SessionLogger struct {
	log            logrus.FieldLogger
	bridgeFailures int
}

// NewSessionLogger creates a SessionLogger. A nil logger uses the standard logger.
func NewSessionLogger(log logrus.FieldLogger) *SessionLogger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SessionLogger{log: log.WithField("component", "session")}
}

func (l *SessionLogger) SessionStarted(sessionID string) {
	l.bridgeFailures = 0
	l.log.WithField("session_id", sessionID).Debug("session opened")
}

func (l *SessionLogger) Heartbeat(sessionID string, engagedSeconds int) {}

func (l *SessionLogger) SessionEnded(sessionID string, reason engagement.EndReason, status engagement.Status) {
	l.log.WithFields(logrus.Fields{
		"session_id":       sessionID,
		"reason":           reason,
		"duration_seconds": status.SessionDurationSeconds,
		"engaged_seconds":  status.TotalEngagedSeconds,
		"activities":       status.TotalActivities,
		"bridge_failures":  l.bridgeFailures,
	}).Info("session summary")
}

func (l *SessionLogger) BridgeFailed(call string, err error) {
	l.bridgeFailures++
	l.log.WithField("call", call).Debugf("bridge failure #%d: %v", l.bridgeFailures, err)
}
