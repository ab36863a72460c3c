// Package cache decorates template lookups with a Redis read-through cache.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	"github.com/oksasatya/tradedocs-portal/internal/domain/repository"
	"github.com/oksasatya/tradedocs-portal/pkg/helpers"
)

func keyTemplate(id string) string { return "tpl:" + id }

const keyTemplateList = "tpl:list"

// TemplateCache caches hits of the wrapped repository. Misses are never cached
// so a newly seeded template is visible at once. Redis errors fall through to
// the repository.
type TemplateCache struct {
	next   repository.TemplateRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewTemplateCache(next repository.TemplateRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *TemplateCache {
	return &TemplateCache{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *TemplateCache) GetByID(ctx context.Context, id string) (*entity.Template, error) {
	var t entity.Template
	found, err := helpers.RedisGetJSON(ctx, c.rdb, keyTemplate(id), &t)
	if err != nil {
		helpers.LogWarn(c.logger, "template cache read failed", err, logrus.Fields{"template_id": id})
	} else if found {
		return &t, nil
	}

	got, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := helpers.RedisSetJSON(ctx, c.rdb, keyTemplate(id), got, c.ttl); err != nil {
		helpers.LogWarn(c.logger, "template cache write failed", err, logrus.Fields{"template_id": id})
	}
	return got, nil
}

func (c *TemplateCache) List(ctx context.Context) ([]entity.Template, error) {
	var list []entity.Template
	found, err := helpers.RedisGetJSON(ctx, c.rdb, keyTemplateList, &list)
	if err == nil && found {
		return list, nil
	}
	list, err = c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	_ = helpers.RedisSetJSON(ctx, c.rdb, keyTemplateList, list, c.ttl)
	return list, nil
}

// Invalidate drops cached entries for id and the list.
func (c *TemplateCache) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, keyTemplate(id), keyTemplateList).Err()
}

var _ repository.TemplateRepository = (*TemplateCache)(nil)
