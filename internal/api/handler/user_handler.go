package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/civicvoice/participation/internal/core/domain"
	"github.com/civicvoice/participation/internal/core/ports"
)

// UserHandler serves the authenticated user management endpoints.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Delete handles DELETE /api/users/:document. A document that fails the
// checksum can never have been registered, so it is reported as not found
// without a store lookup.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        document  path  string  true  "Document number"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{document} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	param := documentParam{Document: c.Param("document")}
	if err := c.Validate(&param); err != nil {
		return domain.ErrUserNotFound
	}

	if err := h.service.Delete(c.Request().Context(), param.Document); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Modify handles PUT /api/users. Only the fields present in the body change.
//
// @Summary      Modify the calling user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      modifyUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/users [put]
func (h *UserHandler) Modify(c echo.Context) error {
	var req modifyUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Modify(c.Request().Context(), toModifyInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
