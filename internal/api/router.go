package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/civicvoice/participation/docs"
	"github.com/civicvoice/participation/internal/api/handler"
	"github.com/civicvoice/participation/internal/api/middleware"
	"github.com/civicvoice/participation/internal/core/authz"
	"github.com/civicvoice/participation/internal/core/domain"
	"github.com/civicvoice/participation/internal/core/ports"
)

const metricsPath = "/metrics"

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Auth      ports.AuthService
	Users     ports.UserService
	Proposals ports.ProposalService
	Tokens    ports.TokenValidator
	Policy    authz.Policy

	// PublicRoutes are skipped by the authenticator.
	PublicRoutes []string
	// Readiness checks, keyed by dependency name, back /health/ready.
	Readiness map[string]handler.Check
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	policy := deps.Policy
	if policy == nil {
		policy = authz.DefaultPolicy()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(prometheusConfig(deps.Registry)))
	e.Use(middleware.Authenticate(deps.Tokens, deps.PublicRoutes, deps.Log))

	// --- Operational endpoints ---
	health := handler.NewHealthHandler(deps.Readiness)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET(metricsPath, metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Users ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Users)
	userHandler := handler.NewUserHandler(deps.Users)

	users := e.Group("/api/users")
	users.POST("/login", authHandler.Login)
	users.POST("/citizen", authHandler.Register(domain.RoleCitizen))
	users.POST("/mayor", authHandler.Register(domain.RoleMayor))
	users.POST("/moderator", authHandler.Register(domain.RoleModerator))
	users.GET("", userHandler.List, middleware.Guard(policy, authz.OpListUsers))
	users.PUT("", userHandler.Modify, middleware.RequireIdentity())
	users.DELETE("/:document", userHandler.Delete, middleware.Guard(policy, authz.OpDeleteUser))

	// --- Proposals ---
	proposalHandler := handler.NewProposalHandler(deps.Proposals)

	proposals := e.Group("/api/proposals")
	proposals.GET("", proposalHandler.List, middleware.Guard(policy, authz.OpListProposals))
	proposals.POST("", proposalHandler.Create, middleware.Guard(policy, authz.OpCreateProposal))
	proposals.GET("/:id", proposalHandler.Get, middleware.RequireIdentity())
	proposals.DELETE("/:id", proposalHandler.Delete, middleware.Guard(policy, authz.OpDeleteProposal))
	proposals.POST("/:id/comment", proposalHandler.Comment, middleware.Guard(policy, authz.OpComment))
	proposals.POST("/:id/vote", proposalHandler.Vote, middleware.Guard(policy, authz.OpVote))

	// --- Moderation ---
	moderatorHandler := handler.NewModeratorHandler(deps.Proposals)
	e.POST("/api/moderator/:proposalId/deleteComment", moderatorHandler.DeleteComment,
		middleware.Guard(policy, authz.OpDeleteComment))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func prometheusConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{
		Namespace: "participation",
		Skipper: func(c echo.Context) bool {
			return c.Path() == metricsPath
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
