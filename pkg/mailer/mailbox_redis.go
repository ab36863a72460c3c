package mailer

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/tradedocs-portal/pkg/helpers"
)

// RedisMailbox stores captured messages in Redis so previews survive restarts
// and are visible to every API replica.
type RedisMailbox struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisMailbox(rdb *redis.Client, ttl time.Duration) *RedisMailbox {
	return &RedisMailbox{rdb: rdb, ttl: ttl}
}

func keyPreview(id string) string { return "mail:preview:" + id }

func (s *RedisMailbox) Save(ctx context.Context, m StoredMessage) error {
	return helpers.RedisSetJSON(ctx, s.rdb, keyPreview(m.ID), m, s.ttl)
}

func (s *RedisMailbox) Get(ctx context.Context, id string) (*StoredMessage, error) {
	var m StoredMessage
	found, err := helpers.RedisGetJSON(ctx, s.rdb, keyPreview(id), &m)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrPreviewNotFound
	}
	return &m, nil
}
