package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/civicvoice/participation/internal/core/authz"
	"github.com/civicvoice/participation/internal/core/domain"
)

var discardLogger = zerolog.Nop()

var testHasher = NewBcryptHasher(bcrypt.MinCost)

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User
	saveErr error
	saves   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByDocument(_ context.Context, documentID string) (*domain.User, error) {
	u, ok := r.users[documentID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	if _, ok := r.users[user.DocumentID]; ok {
		return nil, domain.ErrDuplicateDoc
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.saves++
	r.users[user.DocumentID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	r.saves++
	r.users[user.DocumentID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) DeleteByDocument(_ context.Context, documentID string) error {
	delete(r.users, documentID)
	return nil
}

// ---------------------------------------------------------------------------
// In-memory proposal repository
// ---------------------------------------------------------------------------

type stubProposalRepo struct {
	proposals map[string]*domain.Proposal
	seq       int
	saves     int
	deleted   []string
	saveErr   error
}

func newStubProposalRepo() *stubProposalRepo {
	return &stubProposalRepo{proposals: make(map[string]*domain.Proposal)}
}

func cloneProposal(p *domain.Proposal) *domain.Proposal {
	clone := *p
	if p.Votes != nil {
		clone.Votes = append([]domain.Vote(nil), p.Votes...)
	}
	if p.Comments != nil {
		clone.Comments = append([]domain.Comment(nil), p.Comments...)
	}
	return &clone
}

func (r *stubProposalRepo) FindByID(_ context.Context, id string) (*domain.Proposal, error) {
	p, ok := r.proposals[id]
	if !ok {
		return nil, domain.ErrProposalNotFound
	}
	return cloneProposal(p), nil
}

func (r *stubProposalRepo) FindAll(_ context.Context) ([]*domain.Proposal, error) {
	out := make([]*domain.Proposal, 0, len(r.proposals))
	for _, p := range r.proposals {
		out = append(out, cloneProposal(p))
	}
	return out, nil
}

func (r *stubProposalRepo) Save(_ context.Context, p *domain.Proposal) (*domain.Proposal, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	r.saves++
	stored := cloneProposal(p)
	if stored.ID == "" {
		r.seq++
		stored.ID = fmt.Sprintf("p-%d", r.seq)
	}
	r.proposals[stored.ID] = stored
	return cloneProposal(stored), nil
}

func (r *stubProposalRepo) DeleteByID(_ context.Context, id string) error {
	delete(r.proposals, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubProposalRepo) put(p *domain.Proposal) {
	r.proposals[p.ID] = cloneProposal(p)
}

// ---------------------------------------------------------------------------
// Activity doubles
// ---------------------------------------------------------------------------

type recordingPublisher struct {
	events []domain.ActivityEvent
}

func (p *recordingPublisher) Publish(event domain.ActivityEvent) {
	p.events = append(p.events, event)
}

func (p *recordingPublisher) kinds() []domain.ActivityKind {
	out := make([]domain.ActivityKind, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Kind)
	}
	return out
}

type stubActivityRepo struct {
	inserted  []domain.ActivityEvent
	insertErr error
}

func (r *stubActivityRepo) InsertActivity(_ context.Context, event domain.ActivityEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, event)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func asCaller(documentID string, role domain.Role) context.Context {
	return authz.WithIdentity(context.Background(), domain.Identity{DocumentID: documentID, Role: role})
}
