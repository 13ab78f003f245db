package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/civicvoice/participation/internal/api/metrics"
	"github.com/civicvoice/participation/internal/core/domain"
	"github.com/civicvoice/participation/internal/core/ports"
)

// AuthHandler serves the public login and registration endpoints.
type AuthHandler struct {
	authService ports.AuthService
	userService ports.UserService
}

func NewAuthHandler(authService ports.AuthService, userService ports.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

// Register returns the handler for one of the role-specific registration
// routes.
//
// @Summary      Register a user
// @Description  One route per role: citizen, mayor and moderator. Only mayors keep a district.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        role  path      string           true  "citizen, mayor or moderator"
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/users/{role} [post]
func (h *AuthHandler) Register(role domain.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req registerRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}

		user, err := h.userService.Register(c.Request().Context(), toRegisterInput(req, role))
		if err != nil {
			return err
		}

		metrics.RegistrationsTotal.WithLabelValues(role.String()).Inc()
		return c.JSON(http.StatusCreated, toUserResponse(user))
	}
}
