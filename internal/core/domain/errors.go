package domain

import "errors"

// Error kinds. Every domain error unwraps to exactly one of these, so callers
// can branch with errors.Is(err, domain.ErrNotFound) without knowing the
// concrete failure.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidToken = errors.New("invalid token")
)

// Error is a domain failure carrying a human-readable message and its kind.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kind sentinel to errors.Is.
func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// NewValidationError builds a ValidationFailed error with the given message.
func NewValidationError(msg string) error { return newError(ErrValidation, msg) }

// NewForbiddenError builds a Forbidden error with the given message.
func NewForbiddenError(msg string) error { return newError(ErrForbidden, msg) }

var (
	ErrProposalNotFound = newError(ErrNotFound, "proposal not found")
	ErrUserNotFound     = newError(ErrNotFound, "user not found")

	ErrCommentNotFound = newError(ErrValidation, "comment not found in proposal")
	ErrMissingFields   = newError(ErrValidation, "all fields are required")
	ErrDuplicateDoc    = newError(ErrValidation, "there is already a user with that document")
	ErrDuplicateEmail  = newError(ErrValidation, "there is already a user with that email")
	ErrInvalidEmail    = newError(ErrValidation, "invalid email format")
	ErrInvalidDocument = newError(ErrValidation, "invalid document format")
	ErrInvalidRole     = newError(ErrValidation, "unknown role")

	ErrInvalidCredentials = newError(ErrUnauthorized, "invalid credentials")

	ErrUnauthenticated = newError(ErrForbidden, "authentication required")
	ErrRoleMismatch    = newError(ErrForbidden, "access forbidden")
	ErrOnlyAuthor      = newError(ErrForbidden, "only the author can delete the proposal")

	ErrTokenRejected = newError(ErrInvalidToken, "invalid token")
)
