package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/civicvoice/participation/internal/core/authz"
	"github.com/civicvoice/participation/internal/core/domain"
)

func contextFor(id *domain.Identity) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if id != nil {
		req = req.WithContext(authz.WithIdentity(req.Context(), *id))
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGuard_Allows(t *testing.T) {
	c := contextFor(&domain.Identity{DocumentID: "64246717", Role: domain.RoleMayor})

	called := false
	handler := Guard(authz.DefaultPolicy(), authz.OpCreateProposal)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next handler not called")
	}
}

func TestGuard_Denies(t *testing.T) {
	cases := map[string]*domain.Identity{
		"anonymous":  nil,
		"wrong role": {DocumentID: "49359161", Role: domain.RoleCitizen},
		"moderator":  {DocumentID: "41162211", Role: domain.RoleModerator},
	}

	for name, id := range cases {
		t.Run(name, func(t *testing.T) {
			handler := Guard(authz.DefaultPolicy(), authz.OpCreateProposal)(func(c echo.Context) error {
				t.Fatal("should not reach next")
				return nil
			})
			if err := handler(contextFor(id)); !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected Forbidden, got %v", err)
			}
		})
	}
}

func TestRequireIdentity(t *testing.T) {
	handler := RequireIdentity()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(contextFor(nil)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	if err := handler(contextFor(&domain.Identity{DocumentID: "41162211", Role: domain.RoleModerator})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
