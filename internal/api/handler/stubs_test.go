package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/civicvoice/participation/internal/core/domain"
	"github.com/civicvoice/participation/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, error)
}

func (s *stubAuthService) Verify(context.Context, string, string) (domain.Identity, error) {
	return domain.Identity{}, nil
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

type stubUserService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	listFn     func(ctx context.Context) ([]*domain.User, error)
	deleteFn   func(ctx context.Context, documentID string) error
	modifyFn   func(ctx context.Context, in ports.ModifyInput) (*domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Delete(ctx context.Context, documentID string) error {
	return s.deleteFn(ctx, documentID)
}

func (s *stubUserService) Modify(ctx context.Context, in ports.ModifyInput) (*domain.User, error) {
	return s.modifyFn(ctx, in)
}

type stubProposalService struct {
	listFn          func(ctx context.Context) ([]*domain.Proposal, error)
	getFn           func(ctx context.Context, id string) (*domain.Proposal, error)
	createFn        func(ctx context.Context, in ports.CreateProposalInput) (*domain.Proposal, error)
	deleteFn        func(ctx context.Context, id string) error
	commentFn       func(ctx context.Context, proposalID, description string) (*domain.Proposal, error)
	voteFn          func(ctx context.Context, proposalID string, inFavor bool) (*domain.Proposal, error)
	deleteCommentFn func(ctx context.Context, proposalID, commentID string) (*domain.Proposal, error)
}

func (s *stubProposalService) List(ctx context.Context) ([]*domain.Proposal, error) {
	return s.listFn(ctx)
}

func (s *stubProposalService) Get(ctx context.Context, id string) (*domain.Proposal, error) {
	return s.getFn(ctx, id)
}

func (s *stubProposalService) Create(ctx context.Context, in ports.CreateProposalInput) (*domain.Proposal, error) {
	return s.createFn(ctx, in)
}

func (s *stubProposalService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubProposalService) Comment(ctx context.Context, proposalID, description string) (*domain.Proposal, error) {
	return s.commentFn(ctx, proposalID, description)
}

func (s *stubProposalService) Vote(ctx context.Context, proposalID string, inFavor bool) (*domain.Proposal, error) {
	return s.voteFn(ctx, proposalID, inFavor)
}

func (s *stubProposalService) DeleteComment(ctx context.Context, proposalID, commentID string) (*domain.Proposal, error) {
	return s.deleteCommentFn(ctx, proposalID, commentID)
}

// newContext builds an echo context with the package validator installed.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// httpStatus extracts the status of an *echo.HTTPError, or 0.
func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

