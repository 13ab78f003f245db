package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/civicvoice/participation/internal/core/authz"
	"github.com/civicvoice/participation/internal/core/domain"
	"github.com/civicvoice/participation/internal/core/ports"
)

// ProposalService implements the proposal lifecycle: creation, author-only
// deletion, comments, votes and comment moderation.
type ProposalService struct {
	repo     ports.ProposalRepository
	activity ports.ActivityPublisher
	policy   authz.Policy
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

func NewProposalService(repo ports.ProposalRepository, activity ports.ActivityPublisher, policy authz.Policy, log zerolog.Logger) *ProposalService {
	return &ProposalService{
		repo:     repo,
		activity: activity,
		policy:   policy,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// List returns every proposal.
func (s *ProposalService) List(ctx context.Context) ([]*domain.Proposal, error) {
	if _, err := s.policy.Authorize(ctx, authz.OpListProposals); err != nil {
		return nil, err
	}

	proposals, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	return proposals, nil
}

// Get returns a single proposal to any authenticated caller.
func (s *ProposalService) Get(ctx context.Context, id string) (*domain.Proposal, error) {
	if _, err := authz.RequireIdentity(ctx); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Create stores a new proposal authored by the calling mayor.
func (s *ProposalService) Create(ctx context.Context, in ports.CreateProposalInput) (*domain.Proposal, error) {
	caller, err := s.policy.Authorize(ctx, authz.OpCreateProposal)
	if err != nil {
		return nil, err
	}

	p := &domain.Proposal{
		Title:            in.Title,
		Description:      in.Description,
		AuthorDocumentID: caller.DocumentID,
		LimitDate:        in.LimitDate,
		Votes:            []domain.Vote{},
		Comments:         []domain.Comment{},
	}

	created, err := s.repo.Save(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create proposal")
		return nil, fmt.Errorf("create proposal: %w", err)
	}

	s.publish(created.ID, domain.ActivityProposalCreated, caller)
	s.log.Info().Str("proposal_id", created.ID).Str("author", caller.DocumentID).Msg("proposal created")
	return created, nil
}

// Delete removes a proposal. Only its author may do so.
func (s *ProposalService) Delete(ctx context.Context, id string) error {
	caller, err := s.policy.Authorize(ctx, authz.OpDeleteProposal)
	if err != nil {
		return err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsAuthor(caller.DocumentID) {
		return domain.ErrOnlyAuthor
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete proposal: %w", err)
	}

	s.publish(id, domain.ActivityProposalDeleted, caller)
	s.log.Info().Str("proposal_id", id).Str("author", caller.DocumentID).Msg("proposal deleted")
	return nil
}

// Comment appends a comment by the calling citizen. The publish date is the
// server's clock.
func (s *ProposalService) Comment(ctx context.Context, proposalID, description string) (*domain.Proposal, error) {
	caller, err := s.policy.Authorize(ctx, authz.OpComment)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	p.AddComment(domain.Comment{
		ID:               s.newID(),
		AuthorDocumentID: caller.DocumentID,
		Description:      description,
		PublishDate:      s.now(),
	})

	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("comment proposal: %w", err)
	}

	s.publish(proposalID, domain.ActivityCommentAdded, caller)
	return saved, nil
}

// Vote records the calling citizen's vote, replacing any earlier one.
func (s *ProposalService) Vote(ctx context.Context, proposalID string, inFavor bool) (*domain.Proposal, error) {
	caller, err := s.policy.Authorize(ctx, authz.OpVote)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	p.CastVote(domain.Vote{VoterDocumentID: caller.DocumentID, InFavor: inFavor})

	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("vote proposal: %w", err)
	}

	s.publish(proposalID, domain.ActivityVoteCast, caller)
	return saved, nil
}

// DeleteComment removes a comment from a proposal. Moderators only. The
// proposal is written back only when a comment was actually removed.
func (s *ProposalService) DeleteComment(ctx context.Context, proposalID, commentID string) (*domain.Proposal, error) {
	caller, err := s.policy.Authorize(ctx, authz.OpDeleteComment)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveComment(commentID) {
		return nil, domain.ErrCommentNotFound
	}

	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}

	s.publish(proposalID, domain.ActivityCommentRemoved, caller)
	s.log.Info().
		Str("proposal_id", proposalID).
		Str("comment_id", commentID).
		Str("moderator", caller.DocumentID).
		Msg("comment removed")
	return saved, nil
}

func (s *ProposalService) publish(proposalID string, kind domain.ActivityKind, caller domain.Identity) {
	if s.activity == nil {
		return
	}
	s.activity.Publish(domain.ActivityEvent{
		ProposalID:      proposalID,
		Kind:            kind,
		ActorDocumentID: caller.DocumentID,
		OccurredAt:      s.now(),
	})
}
