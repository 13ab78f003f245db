package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/civicvoice/participation/internal/core/domain"
	"github.com/civicvoice/participation/internal/core/ports"
)

// BcryptHasher implements ports.PasswordHasher with bcrypt.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (h BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AuthService implements credential verification and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// Verify checks email and password against the credential store. An unknown
// email yields domain.ErrUserNotFound and a wrong password
// domain.ErrInvalidCredentials.
func (s *AuthService) Verify(ctx context.Context, email, password string) (domain.Identity, error) {
	if email == "" || password == "" {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Identity{}, domain.ErrUserNotFound
		}
		return domain.Identity{}, fmt.Errorf("verify credentials: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}
	return user.Identity(), nil
}

// Login verifies the credentials and returns a signed session token. Unknown
// emails are reported as invalid credentials so responses do not reveal which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	id, err := s.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Msg("login rejected: unknown email")
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	token, err := s.tokens.Issue(id.DocumentID, id.Role)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("document", id.DocumentID).Str("role", id.Role.String()).Msg("user logged in")
	return token, nil
}
