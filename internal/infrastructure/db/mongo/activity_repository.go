package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/civicvoice/participation/internal/core/domain"
	"github.com/civicvoice/participation/internal/core/ports"
)

const collectionActivity = "proposal_activity"

// ActivityRepository implements ports.ActivityRepository as an append-only
// audit collection.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) ports.ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

// InsertActivity persists one event to the proposal_activity collection.
func (r *ActivityRepository) InsertActivity(ctx context.Context, event domain.ActivityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"proposal_id":    event.ProposalID,
		"kind":           string(event.Kind),
		"actor_document": event.ActorDocumentID,
		"occurred_at":    event.OccurredAt.UTC(),
		"recorded_at":    time.Now().UTC(),
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
