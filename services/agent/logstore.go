package agent

import (
	"context"
	"encoding/json"
	"time"

	"bookingagent/models"

	"github.com/go-redis/redis/v8"
)

const conversationPrefix = "agent:log:"

// RedisConversationStore keeps conversation logs in Redis with a TTL, so an
// abandoned conversation expires on its own.
type RedisConversationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisConversationStore(client *redis.Client, ttl time.Duration) *RedisConversationStore {
	return &RedisConversationStore{client: client, ttl: ttl}
}

func (s *RedisConversationStore) Get(ctx context.Context, conversationID string) ([]models.ConversationMessage, error) {
	key := conversationPrefix + conversationID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var log []models.ConversationMessage
	if err := json.Unmarshal([]byte(data), &log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *RedisConversationStore) Set(ctx context.Context, conversationID string, log []models.ConversationMessage) error {
	key := conversationPrefix + conversationID
	b, err := json.Marshal(log)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisConversationStore) Clear(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx, conversationPrefix+conversationID).Err()
}
