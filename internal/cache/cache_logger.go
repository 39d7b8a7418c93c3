package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeDelete deletes keys and logs failures instead of propagating them.
// Invalidation failures must never break the write path
func (c *CacheHelper) SafeDelete(ctx context.Context, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		slog.WarnContext(ctx, "Cache delete failed",
			"error", err,
			"keys", keys)
	}
}

// SafeInvalidatePattern invalidates a pattern and logs failures instead of
// propagating them
func (c *CacheHelper) SafeInvalidatePattern(ctx context.Context, pattern string) {
	if err := c.InvalidatePattern(ctx, pattern); err != nil {
		slog.WarnContext(ctx, "Cache pattern invalidation failed",
			"error", err,
			"pattern", pattern)
	}
}

// InvalidateStudentProfile drops the cached combined score view and
// existence marker for one student
func (cm *CacheManager) InvalidateStudentProfile(ctx context.Context, studentID uint) {
	cm.Profile.SafeDelete(ctx, fmt.Sprintf("combined:%d", studentID))
	cm.Exists.SafeDelete(ctx, fmt.Sprintf("student:%d", studentID))
}

// InvalidateAchievementTypes drops every cached achievement type entry,
// including the list views
func (cm *CacheManager) InvalidateAchievementTypes(ctx context.Context) {
	cm.AchievementType.SafeInvalidatePattern(ctx, "*")
}
