package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/civicvoice/participation/internal/core/domain"
)

const collectionProposals = "proposals"

// ProposalRepository stores each proposal as one document with its votes and
// comments embedded. Writes replace the whole document.
type ProposalRepository struct {
	col *mongo.Collection
}

func NewProposalRepository(db *mongo.Database) *ProposalRepository {
	return &ProposalRepository{col: db.Collection(collectionProposals)}
}

func (r *ProposalRepository) FindByID(ctx context.Context, id string) (*domain.Proposal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Proposal
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProposalNotFound
		}
		return nil, fmt.Errorf("find proposal: %w", err)
	}
	return &p, nil
}

func (r *ProposalRepository) FindAll(ctx context.Context) ([]*domain.Proposal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "limit_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find proposals: %w", err)
	}
	proposals := make([]*domain.Proposal, 0)
	if err := cur.All(ctx, &proposals); err != nil {
		return nil, fmt.Errorf("decode proposals: %w", err)
	}
	return proposals, nil
}

// Save upserts p. A proposal without an ID gets a fresh ObjectID in hex form.
func (r *ProposalRepository) Save(ctx context.Context, p *domain.Proposal) (*domain.Proposal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, options.Replace().SetUpsert(true)); err != nil {
		return nil, fmt.Errorf("save proposal: %w", err)
	}
	return p, nil
}

func (r *ProposalRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete proposal: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProposalNotFound
	}
	return nil
}
