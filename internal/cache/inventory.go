package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProjectKeyPrefix = "project:%s"
	ProjectListKey   = "projects:list"
	FeaturedProjects = "projects:featured"
)

const (
	ProjectTTL     = 10 * time.Minute
	ProjectListTTL = 5 * time.Minute
)

func ProjectKey(slug string) string {
	return fmt.Sprintf(ProjectKeyPrefix, slug)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateProject drops the cached detail view for one slug along with the
// list views that embed project rows.
func InvalidateProject(ctx context.Context, slug string) {
	Invalidate(ctx, ProjectKey(slug))
	InvalidateProjectLists(ctx)
}

func InvalidateProjectLists(ctx context.Context) {
	Invalidate(ctx, ProjectListKey)
	Invalidate(ctx, FeaturedProjects)
}
