// Package authz carries the authenticated caller through context.Context and
// decides whether that caller may run an operation.
package authz

import (
	"context"

	"github.com/civicvoice/participation/internal/core/domain"
)

type contextKey struct{ name string }

var identityKey = &contextKey{"identity"}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity attached to ctx, if any.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}
