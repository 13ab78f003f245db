package ports

import (
	"context"

	"github.com/civicvoice/participation/internal/core/domain"
)

// UserRepository is the credential store. Lookups of an absent user return
// domain.ErrUserNotFound.
type UserRepository interface {
	FindByDocument(ctx context.Context, documentID string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	// Create inserts a new user. An existing DocumentID yields
	// domain.ErrDuplicateDoc and an existing email domain.ErrDuplicateEmail.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Save replaces the user keyed by DocumentID.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteByDocument(ctx context.Context, documentID string) error
}
