package ports

import (
	"context"

	"github.com/civicvoice/participation/internal/core/domain"
)

// TokenIssuer mints signed session tokens.
type TokenIssuer interface {
	Issue(documentID string, role domain.Role) (string, error)
}

// TokenValidator turns a raw token back into the caller identity. Any failure
// is reported as domain.ErrInvalidToken.
type TokenValidator interface {
	Validate(token string) (domain.Identity, error)
}

// PasswordHasher is a one-way hash and verify capability.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// AuthService verifies credentials and hands out tokens.
type AuthService interface {
	Verify(ctx context.Context, email, password string) (domain.Identity, error)
	Login(ctx context.Context, email, password string) (string, error)
}
