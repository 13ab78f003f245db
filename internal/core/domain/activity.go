package domain

import "time"

// ActivityKind classifies an entry of a proposal's activity trail.
type ActivityKind string

const (
	ActivityProposalCreated ActivityKind = "proposal_created"
	ActivityProposalDeleted ActivityKind = "proposal_deleted"
	ActivityCommentAdded    ActivityKind = "comment_added"
	ActivityCommentRemoved  ActivityKind = "comment_removed"
	ActivityVoteCast        ActivityKind = "vote_cast"
)

// ActivityEvent is an append-only audit record of a proposal mutation.
type ActivityEvent struct {
	ProposalID      string
	Kind            ActivityKind
	ActorDocumentID string
	OccurredAt      time.Time
}
