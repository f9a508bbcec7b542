package status

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTTL bounds how long a snapshot outlives its tracker.
	DefaultTTL = 5 * time.Minute
	// KeyPrefix is the prefix for all status keys
	KeyPrefix = "engagement_tracker:status:"

	snapshotField = "snapshot"
)

// RedisStore keeps the latest view of a tracker instance in a Redis hash so
// an out-of-process overlay can read it.
type RedisStore struct {
	client     *redis.Client
	instanceID string
	ttl        time.Duration
}

// NewRedisStore creates a store for instanceID.
func NewRedisStore(client *redis.Client, instanceID string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client:     client,
		instanceID: instanceID,
		ttl:        ttl,
	}
}

// Key returns the hash key of this instance.
func (s *RedisStore) Key() string {
	return makeKey(s.instanceID)
}

func makeKey(instanceID string) string {
	return fmt.Sprintf("%s%s", KeyPrefix, instanceID)
}

// Publish implements Sink. The flat fields allow HGET from redis-cli; the
// snapshot field carries the full view.
func (s *RedisStore) Publish(ctx context.Context, view View) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	key := s.Key()
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			snapshotField, data,
			"is_active", strconv.FormatBool(view.IsActive),
			"session_id", view.SessionID,
			"heartbeat_count", view.HeartbeatCount,
			"total_engaged_seconds", view.TotalEngagedSeconds,
			"last_activity", view.LastActivity,
			"observed_at", view.ObservedAt.UTC().Format(time.RFC3339),
		)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		logrus.Errorf("failed to store status for %s: %v", s.instanceID, err)
		return fmt.Errorf("failed to store status: %w", err)
	}
	return nil
}

// Load reads the stored view of instanceID.
func (s *RedisStore) Load(ctx context.Context, instanceID string) (View, error) {
	data, err := s.client.HGet(ctx, makeKey(instanceID), snapshotField).Result()
	if err == redis.Nil {
		return View{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, instanceID)
	}
	if err != nil {
		return View{}, fmt.Errorf("failed to get status: %w", err)
	}

	var view View
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		return View{}, fmt.Errorf("failed to unmarshal status: %w", err)
	}
	return view, nil
}
