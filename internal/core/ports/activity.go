package ports

import (
	"context"

	"github.com/civicvoice/participation/internal/core/domain"
)

// ActivityRepository is the append-only store of proposal activity.
type ActivityRepository interface {
	InsertActivity(ctx context.Context, event domain.ActivityEvent) error
}

// ActivityService records a single activity event.
type ActivityService interface {
	Record(ctx context.Context, event domain.ActivityEvent) error
}

// ActivityPublisher hands events off for asynchronous recording. It must not
// block on persistence.
type ActivityPublisher interface {
	Publish(event domain.ActivityEvent)
}
