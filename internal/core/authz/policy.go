package authz

import (
	"context"
	"fmt"

	"github.com/civicvoice/participation/internal/core/domain"
)

// Operation names an access-controlled entry point.
type Operation string

const (
	OpListProposals  Operation = "proposal.list"
	OpCreateProposal Operation = "proposal.create"
	OpDeleteProposal Operation = "proposal.delete"
	OpComment        Operation = "proposal.comment"
	OpVote           Operation = "proposal.vote"
	OpDeleteComment  Operation = "proposal.comment.delete"
	OpListUsers      Operation = "user.list"
	OpDeleteUser     Operation = "user.delete"
)

// Policy binds each operation to the single role allowed to run it.
type Policy map[Operation]domain.Role

// DefaultPolicy is the role table of the platform.
func DefaultPolicy() Policy {
	return Policy{
		OpListProposals:  domain.RoleMayor,
		OpCreateProposal: domain.RoleMayor,
		OpDeleteProposal: domain.RoleMayor,
		OpComment:        domain.RoleCitizen,
		OpVote:           domain.RoleCitizen,
		OpDeleteComment:  domain.RoleModerator,
		OpListUsers:      domain.RoleModerator,
		OpDeleteUser:     domain.RoleModerator,
	}
}

// Authorize resolves the role op requires and checks the caller in ctx
// against it. Operations missing from the table are denied.
func (p Policy) Authorize(ctx context.Context, op Operation) (domain.Identity, error) {
	role, ok := p[op]
	if !ok {
		return domain.Identity{}, domain.NewForbiddenError(fmt.Sprintf("operation %q is not permitted", op))
	}
	return RequireRole(ctx, role)
}

// RequireRole returns the caller's identity when it holds exactly role.
func RequireRole(ctx context.Context, role domain.Role) (domain.Identity, error) {
	id, err := RequireIdentity(ctx)
	if err != nil {
		return domain.Identity{}, err
	}
	if id.Role != role {
		return domain.Identity{}, domain.ErrRoleMismatch
	}
	return id, nil
}

// RequireIdentity returns the caller's identity regardless of role.
func RequireIdentity(ctx context.Context) (domain.Identity, error) {
	id, ok := IdentityFrom(ctx)
	if !ok || id.DocumentID == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}
