package ports

import (
	"context"
	"time"

	"github.com/civicvoice/participation/internal/core/domain"
)

// CreateProposalInput is what a mayor supplies for a new proposal. Authorship
// is never part of it: it always comes from the caller's identity.
type CreateProposalInput struct {
	Title       string
	Description string
	LimitDate   time.Time
}

// ProposalService runs the proposal lifecycle. Every method resolves the
// caller from ctx and enforces its role before touching the store.
type ProposalService interface {
	List(ctx context.Context) ([]*domain.Proposal, error)
	Get(ctx context.Context, id string) (*domain.Proposal, error)
	Create(ctx context.Context, in CreateProposalInput) (*domain.Proposal, error)
	Delete(ctx context.Context, id string) error
	Comment(ctx context.Context, proposalID, description string) (*domain.Proposal, error)
	Vote(ctx context.Context, proposalID string, inFavor bool) (*domain.Proposal, error)
	DeleteComment(ctx context.Context, proposalID, commentID string) (*domain.Proposal, error)
}
