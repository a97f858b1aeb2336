package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio/api/internal/models"
)

func TestProjectListCacheNilSafe(t *testing.T) {
	ctx := context.Background()

	var nilCache *ProjectListCache
	_, ok := nilCache.Get(ctx)
	assert.False(t, ok)
	assert.NoError(t, nilCache.Set(ctx, []models.Project{{ID: "p1"}}))
	assert.NoError(t, nilCache.Invalidate(ctx))

	noClient := NewProjectListCache(nil, 0)
	_, ok = noClient.Get(ctx)
	assert.False(t, ok)
	assert.NoError(t, noClient.Set(ctx, nil))
	assert.NoError(t, noClient.Invalidate(ctx))
}
