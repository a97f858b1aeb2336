package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio/api/internal/models"
)

const projectListKey = "projects:visible"

// ProjectListCache keeps the public project listing in redis between writes.
// It is strictly best-effort: every failure is reported as a miss and the
// caller falls through to the database.
type ProjectListCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProjectListCache(client *redis.Client, ttl time.Duration) *ProjectListCache {
	return &ProjectListCache{client: client, ttl: ttl}
}

func (c *ProjectListCache) Get(ctx context.Context) ([]models.Project, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, projectListKey).Bytes()
	if err != nil {
		return nil, false
	}

	var projects []models.Project
	if err := json.Unmarshal(payload, &projects); err != nil {
		return nil, false
	}
	return projects, true
}

func (c *ProjectListCache) Set(ctx context.Context, projects []models.Project) error {
	if c == nil || c.client == nil {
		return nil
	}

	payload, err := json.Marshal(projects)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, projectListKey, payload, c.ttl).Err()
}

// Invalidate drops the cached listing. Called after every project mutation,
// including engagement updates, so visitors never see counters older than
// the cache TTL implies.
func (c *ProjectListCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, projectListKey).Err()
}
