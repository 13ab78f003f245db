package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/civicvoice/participation/internal/core/domain"
	"github.com/civicvoice/participation/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService backed by repo.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Record persists a single activity event.
func (s *activityService) Record(ctx context.Context, event domain.ActivityEvent) error {
	if event.ProposalID == "" || event.Kind == "" {
		return domain.NewValidationError("activity event requires proposal and kind")
	}

	if err := s.repo.InsertActivity(ctx, event); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	s.log.Debug().
		Str("proposal_id", event.ProposalID).
		Str("kind", string(event.Kind)).
		Str("actor", event.ActorDocumentID).
		Msg("activity recorded")
	return nil
}
