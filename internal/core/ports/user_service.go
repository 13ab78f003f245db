package ports

import (
	"context"

	"github.com/civicvoice/participation/internal/core/domain"
)

// RegisterInput carries the data needed to create a user of a given role.
type RegisterInput struct {
	DocumentID string
	Name       string
	Email      string
	Password   string
	Address    string
	Role       domain.Role
	District   string
}

// ModifyInput holds the self-service changes a user may make. Nil fields are
// left untouched.
type ModifyInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UserService manages registration and the user lifecycle.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, documentID string) error
	Modify(ctx context.Context, in ModifyInput) (*domain.User, error)
}
