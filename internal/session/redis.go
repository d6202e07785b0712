package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/uwosh/course-combine-api/pkg/errors"
)

const keyPrefix = "combine:workflow:"

// RedisStore keeps workflow contexts in Redis with a TTL, so a combine
// session can span multiple API instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps a Redis client as a session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, wc *WorkflowContext) error {
	payload, err := json.Marshal(wc)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, keyPrefix+wc.ID, payload, s.ttl).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save workflow session")
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (*WorkflowContext, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load workflow session")
	}

	wc := &WorkflowContext{}
	if err := json.Unmarshal(payload, wc); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "corrupt workflow session payload")
	}
	return wc, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete workflow session")
	}
	return nil
}
