package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/civicvoice/participation/internal/core/authz"
	"github.com/civicvoice/participation/internal/core/ports"
)

const bearerPrefix = "Bearer "

// Authenticate resolves the caller from the Authorization header and attaches
// the identity to the request context. It never rejects a request: a missing,
// malformed or invalid token leaves the request anonymous and the access
// policy decides later. Paths in publicRoutes skip the lookup entirely.
func Authenticate(validator ports.TokenValidator, publicRoutes []string, log zerolog.Logger) echo.MiddlewareFunc {
	public := newRouteSet(publicRoutes)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if public.contains(req.URL.Path) {
				return next(c)
			}

			header := req.Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return next(c)
			}

			id, err := validator.Validate(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				log.Debug().Err(err).Str("path", req.URL.Path).Msg("ignoring invalid bearer token")
				return next(c)
			}

			c.SetRequest(req.WithContext(authz.WithIdentity(req.Context(), id)))
			return next(c)
		}
	}
}

// routeSet matches request paths exactly, or by prefix for entries ending in
// "/*".
type routeSet struct {
	exact    map[string]struct{}
	prefixes []string
}

func newRouteSet(routes []string) routeSet {
	s := routeSet{exact: make(map[string]struct{}, len(routes))}
	for _, r := range routes {
		r = strings.TrimSpace(r)
		switch {
		case r == "":
		case strings.HasSuffix(r, "/*"):
			s.prefixes = append(s.prefixes, strings.TrimSuffix(r, "*"))
		default:
			s.exact[r] = struct{}{}
		}
	}
	return s
}

func (s routeSet) contains(path string) bool {
	if _, ok := s.exact[path]; ok {
		return true
	}
	for _, p := range s.prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
