package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicvoice/participation/internal/core/authz"
	"github.com/civicvoice/participation/internal/core/domain"
	"github.com/civicvoice/participation/internal/core/ports"
)

// UserService implements registration and user management.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	policy authz.Policy
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, policy authz.Policy, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, policy: policy, log: log}
}

// Register validates in and stores a new user with a hashed password.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if err := s.validateRegistration(ctx, in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		DocumentID:   in.DocumentID,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Address:      in.Address,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Role == domain.RoleMayor {
		user.District = in.District
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.log.Info().Str("document", created.DocumentID).Str("role", created.Role.String()).Msg("user registered")
	return created, nil
}

// validateRegistration applies the registration rules in a fixed order; the
// first failing rule is reported.
func (s *UserService) validateRegistration(ctx context.Context, in ports.RegisterInput) error {
	if in.Name == "" || in.DocumentID == "" || in.Email == "" || in.Password == "" {
		return domain.ErrMissingFields
	}

	taken, err := s.documentTaken(ctx, in.DocumentID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicateDoc
	}

	if !domain.ValidEmail(in.Email) {
		return domain.ErrInvalidEmail
	}

	taken, err = s.emailTaken(ctx, in.Email)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicateEmail
	}

	if !domain.ValidDocument(in.DocumentID) {
		return domain.ErrInvalidDocument
	}
	return nil
}

func (s *UserService) documentTaken(ctx context.Context, documentID string) (bool, error) {
	_, err := s.repo.FindByDocument(ctx, documentID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrUserNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("lookup document: %w", err)
	}
}

func (s *UserService) emailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrUserNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("lookup email: %w", err)
	}
}

// List returns every registered user. Moderators only.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	if _, err := s.policy.Authorize(ctx, authz.OpListUsers); err != nil {
		return nil, err
	}

	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Delete removes the user with documentID. Moderators only.
func (s *UserService) Delete(ctx context.Context, documentID string) error {
	caller, err := s.policy.Authorize(ctx, authz.OpDeleteUser)
	if err != nil {
		return err
	}

	if _, err := s.repo.FindByDocument(ctx, documentID); err != nil {
		return err
	}
	if err := s.repo.DeleteByDocument(ctx, documentID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info().Str("document", documentID).Str("moderator", caller.DocumentID).Msg("user deleted")
	return nil
}

// Modify applies self-service changes to the caller's own account. Only the
// fields set in in are changed.
func (s *UserService) Modify(ctx context.Context, in ports.ModifyInput) (*domain.User, error) {
	caller, err := authz.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByDocument(ctx, caller.DocumentID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrMissingFields
		}
		user.Name = *in.Name
	}

	if in.Email != nil && *in.Email != user.Email {
		if !domain.ValidEmail(*in.Email) {
			return nil, domain.ErrInvalidEmail
		}
		taken, err := s.emailTaken(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateEmail
		}
		user.Email = *in.Email
	}

	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.ErrMissingFields
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	user.UpdatedAt = time.Now().UTC()
	updated, err := s.repo.Save(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("modify user: %w", err)
	}

	s.log.Info().Str("document", updated.DocumentID).Msg("user modified")
	return updated, nil
}
