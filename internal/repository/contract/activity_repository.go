package contract

import (
	"context"
	"time"

	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/repository/specification"
)

type ActivityRepository interface {
	Create(ctx context.Context, entry *entity.ActivityEntry) error
	// FindRecent returns the newest entries first, capped at limit.
	FindRecent(ctx context.Context, limit int) ([]*entity.ActivityEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	// TrimOldest deletes everything beyond the newest keep entries, so
	// the feed behaves like a fixed-size ring.
	TrimOldest(ctx context.Context, keep int) error
}
