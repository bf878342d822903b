package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/whisperwall/whisperwall"
)

// defaultListKey is the Redis list audit events are pushed onto.
const defaultListKey = "whisperwall:audit"

var _ Recorder = (*RedisRecorder)(nil)

// A RedisRecorder pushes Events onto a Redis list as JSON,
// for an external collector to drain.
type RedisRecorder struct {
	client *redis.Client
	key    string
}

// NewRedisRecorder constructs a *RedisRecorder against the Redis server at uri.
//
// To authenticate to the Redis server, provide pass, otherwise its zero-value is acceptable.
func NewRedisRecorder(uri, pass string) (*RedisRecorder, error) {
	client := redis.NewClient(&redis.Options{Addr: uri, Password: pass})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("%w: failed reaching Redis: %s", whisperwall.ErrBadConfig, err)
	}

	return &RedisRecorder{client: client, key: defaultListKey}, nil
}

// Record appends the Event to the list.
func (r *RedisRecorder) Record(ctx context.Context, event Event) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshaling audit event: %s", whisperwall.ErrUnexpected, err)
	}

	if err := r.client.LPush(ctx, r.key, b).Err(); err != nil {
		return fmt.Errorf("%w: recording audit event: %s", whisperwall.ErrUnexpected, err)
	}

	return nil
}
