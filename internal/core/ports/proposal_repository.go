package ports

import (
	"context"

	"github.com/civicvoice/participation/internal/core/domain"
)

// ProposalRepository persists proposals together with their votes and
// comments. FindByID returns domain.ErrProposalNotFound when absent.
type ProposalRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Proposal, error)
	FindAll(ctx context.Context) ([]*domain.Proposal, error)
	// Save writes the whole proposal. An empty ID is assigned a new one.
	Save(ctx context.Context, p *domain.Proposal) (*domain.Proposal, error)
	DeleteByID(ctx context.Context, id string) error
}
