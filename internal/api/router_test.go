package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/civicvoice/participation/internal/api/handler"
	"github.com/civicvoice/participation/internal/core/authz"
	"github.com/civicvoice/participation/internal/core/domain"
	"github.com/civicvoice/participation/internal/core/service"
)

// ---------------------------------------------------------------------------
// In-memory stores
// ---------------------------------------------------------------------------

type memUsers struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func (r *memUsers) FindByDocument(_ context.Context, doc string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[doc]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUsers) FindAll(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, &u)
	}
	return out, nil
}

func (r *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.DocumentID]; ok {
		return nil, domain.ErrDuplicateDoc
	}
	r.users[u.DocumentID] = *u
	return u, nil
}

func (r *memUsers) Save(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.DocumentID] = *u
	return u, nil
}

func (r *memUsers) DeleteByDocument(_ context.Context, doc string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, doc)
	return nil
}

type memProposals struct {
	mu        sync.Mutex
	seq       int
	proposals map[string]domain.Proposal
}

func (r *memProposals) FindByID(_ context.Context, id string) (*domain.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.proposals[id]
	if !ok {
		return nil, domain.ErrProposalNotFound
	}
	p.Votes = append([]domain.Vote(nil), p.Votes...)
	p.Comments = append([]domain.Comment(nil), p.Comments...)
	return &p, nil
}

func (r *memProposals) FindAll(_ context.Context) ([]*domain.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Proposal, 0, len(r.proposals))
	for _, p := range r.proposals {
		out = append(out, &p)
	}
	return out, nil
}

func (r *memProposals) Save(_ context.Context, p *domain.Proposal) (*domain.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		r.seq++
		p.ID = fmt.Sprintf("p%d", r.seq)
	}
	r.proposals[p.ID] = *p
	return p, nil
}

func (r *memProposals) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.proposals, id)
	return nil
}

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	key, err := service.NewSigningKey()
	if err != nil {
		t.Fatalf("signing key: %v", err)
	}

	log := zerolog.Nop()
	policy := authz.DefaultPolicy()
	hasher := service.NewBcryptHasher(bcrypt.MinCost)
	tokens := service.NewTokenService(key, time.Hour)
	users := &memUsers{users: map[string]domain.User{}}
	proposals := &memProposals{proposals: map[string]domain.Proposal{}}

	return NewRouter(Dependencies{
		Auth:      service.NewAuthService(users, hasher, tokens, log),
		Users:     service.NewUserService(users, hasher, policy, log),
		Proposals: service.NewProposalService(proposals, nil, policy, log),
		Tokens:    tokens,
		Policy:    policy,
		PublicRoutes: []string{
			"/api/users/login", "/api/users/citizen", "/api/users/mayor", "/api/users/moderator",
			"/health", "/health/ready", "/metrics",
		},
		Readiness: map[string]handler.Check{"memory": func(context.Context) error { return nil }},
		Registry:  prometheus.NewRegistry(),
		Log:       log,
	})
}

func do(t *testing.T, e *echo.Echo, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec.Code, out
}

func register(t *testing.T, e *echo.Echo, route, document, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"document":%q,"name":"n","email":%q,"password":"pw","address":"a"}`, document, email)
	if code, resp := do(t, e, http.MethodPost, "/api/users/"+route, "", body); code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d %v", route, code, resp)
	}
	code, resp := do(t, e, http.MethodPost, "/api/users/login", "", fmt.Sprintf(`{"email":%q,"password":"pw"}`, email))
	if code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d %v", email, code, resp)
	}
	return resp["token"].(string)
}

// ---------------------------------------------------------------------------
// Scenarios
// ---------------------------------------------------------------------------

func TestRouter_ProposalLifecycle(t *testing.T) {
	e := newTestServer(t)

	mayor := register(t, e, "mayor", "64246717", "m@x.com")
	citizen := register(t, e, "citizen", "49359161", "c@x.com")
	moderator := register(t, e, "moderator", "41162211", "mod@x.com")

	create := `{"title":"Bike lanes","description":"Paint them","limit_date":"31/12/2026"}`
	for _, token := range []string{"", "garbage", citizen, moderator} {
		if code, _ := do(t, e, http.MethodPost, "/api/proposals", token, create); code != http.StatusForbidden {
			t.Fatalf("create with token %q: expected 403, got %d", token, code)
		}
	}

	code, resp := do(t, e, http.MethodPost, "/api/proposals", mayor, create)
	if code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d %v", code, resp)
	}
	id := resp["id"].(string)
	if resp["author_document"] != "64246717" || resp["limit_date"] != "31/12/2026" {
		t.Fatalf("unexpected proposal: %v", resp)
	}

	do(t, e, http.MethodPost, "/api/proposals/"+id+"/vote", citizen, `{"in_favor":true}`)
	code, resp = do(t, e, http.MethodPost, "/api/proposals/"+id+"/vote", citizen, `{"in_favor":false}`)
	if code != http.StatusOK {
		t.Fatalf("vote: expected 200, got %d", code)
	}
	tally := resp["tally"].(map[string]any)
	if tally["in_favor"].(float64) != 0 || tally["against"].(float64) != 1 {
		t.Fatalf("vote must replace, got tally %v", tally)
	}

	code, resp = do(t, e, http.MethodPost, "/api/proposals/"+id+"/comment", citizen, `{"description":"spam"}`)
	if code != http.StatusCreated {
		t.Fatalf("comment: expected 201, got %d", code)
	}
	commentID := resp["comments"].([]any)[0].(map[string]any)["id"].(string)

	deletePath := "/api/moderator/" + id + "/deleteComment"
	if code, _ := do(t, e, http.MethodPost, deletePath, mayor, `{"comment_id":"`+commentID+`"}`); code != http.StatusForbidden {
		t.Fatalf("mayor delete comment: expected 403, got %d", code)
	}
	if code, resp := do(t, e, http.MethodPost, deletePath, moderator, `{"comment_id":"ghost"}`); code != http.StatusUnprocessableEntity || resp["error"] != "comment not found in proposal" {
		t.Fatalf("ghost comment: expected 422, got %d %v", code, resp)
	}
	code, resp = do(t, e, http.MethodPost, deletePath, moderator, `{"comment_id":"`+commentID+`"}`)
	if code != http.StatusOK || len(resp["comments"].([]any)) != 0 {
		t.Fatalf("delete comment: got %d %v", code, resp)
	}

	other := register(t, e, "mayor", "93514822", "m2@x.com")
	if code, resp := do(t, e, http.MethodDelete, "/api/proposals/"+id, other, ""); code != http.StatusForbidden || resp["error"] != "only the author can delete the proposal" {
		t.Fatalf("non-author delete: got %d %v", code, resp)
	}
	if code, _ := do(t, e, http.MethodDelete, "/api/proposals/"+id, mayor, ""); code != http.StatusNoContent {
		t.Fatalf("author delete: expected 204, got %d", code)
	}
	if code, _ := do(t, e, http.MethodGet, "/api/proposals/"+id, citizen, ""); code != http.StatusNotFound {
		t.Fatalf("get deleted: expected 404, got %d", code)
	}
}

func TestRouter_Users(t *testing.T) {
	e := newTestServer(t)
	citizen := register(t, e, "citizen", "49359161", "c@x.com")
	moderator := register(t, e, "moderator", "41162211", "mod@x.com")

	body := `{"document":"49359161","name":"n","email":"other@x.com","password":"pw"}`
	if code, resp := do(t, e, http.MethodPost, "/api/users/citizen", "", body); code != http.StatusUnprocessableEntity || resp["error"] != "there is already a user with that document" {
		t.Fatalf("duplicate: got %d %v", code, resp)
	}
	if code, resp := do(t, e, http.MethodPost, "/api/users/login", "", `{"email":"ghost@x.com","password":"pw"}`); code != http.StatusUnauthorized || resp["error"] != "invalid credentials" {
		t.Fatalf("unknown email: got %d %v", code, resp)
	}
	if code, resp := do(t, e, http.MethodPost, "/api/users/login", "", `{"email":"c@x.com","password":"nope"}`); code != http.StatusUnauthorized || resp["error"] != "invalid credentials" {
		t.Fatalf("wrong password: got %d %v", code, resp)
	}

	if code, _ := do(t, e, http.MethodGet, "/api/users", citizen, ""); code != http.StatusForbidden {
		t.Fatalf("citizen list: expected 403, got %d", code)
	}
	if code, _ := do(t, e, http.MethodGet, "/api/users", moderator, ""); code != http.StatusOK {
		t.Fatalf("moderator list: expected 200, got %d", code)
	}

	if code, resp := do(t, e, http.MethodPut, "/api/users", citizen, `{"name":"Carla"}`); code != http.StatusOK || resp["name"] != "Carla" {
		t.Fatalf("modify: got %d %v", code, resp)
	}
	if code, _ := do(t, e, http.MethodPut, "/api/users", "", `{"name":"Carla"}`); code != http.StatusForbidden {
		t.Fatalf("anonymous modify: expected 403, got %d", code)
	}

	if code, _ := do(t, e, http.MethodDelete, "/api/users/49359162", moderator, ""); code != http.StatusNotFound {
		t.Fatalf("bad document: expected 404, got %d", code)
	}
	if code, _ := do(t, e, http.MethodDelete, "/api/users/49359161", moderator, ""); code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", code)
	}
	if code, _ := do(t, e, http.MethodPost, "/api/users/login", "", `{"email":"c@x.com","password":"pw"}`); code != http.StatusUnauthorized {
		t.Fatalf("deleted user login: expected 401, got %d", code)
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	e := newTestServer(t)

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
