package checkpoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"velocity-ai-be/pkg/agent/state"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "pipeline:checkpoint:"
	redisTTL       = 24 * time.Hour
)

// RedisStore persists checkpoints in Redis so runs survive restarts and
// are visible across instances.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Save(ctx context.Context, runID string, st *state.State) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to serialize checkpoint: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+runID, payload, redisTTL).Err(); err != nil {
		return fmt.Errorf("failed to save checkpoint %s: %w", runID, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, runID string) (*state.State, bool, error) {
	payload, err := s.rdb.Get(ctx, redisKeyPrefix+runID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load checkpoint %s: %w", runID, err)
	}

	var st state.State
	if err := json.Unmarshal(payload, &st); err != nil {
		return nil, false, fmt.Errorf("failed to deserialize checkpoint %s: %w", runID, err)
	}
	return &st, true, nil
}
