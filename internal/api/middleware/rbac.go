package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/civicvoice/participation/internal/core/authz"
)

// Guard rejects the request before the handler runs unless the caller holds
// the role policy requires for op. Services repeat the check, so a route
// without a guard is still protected.
func Guard(policy authz.Policy, op authz.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := policy.Authorize(c.Request().Context(), op); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequireIdentity rejects anonymous requests on routes open to any role.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := authz.RequireIdentity(c.Request().Context()); err != nil {
				return err
			}
			return next(c)
		}
	}
}
