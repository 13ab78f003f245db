package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/civicvoice/participation/internal/api/metrics"
	"github.com/civicvoice/participation/internal/core/ports"
)

// ModeratorHandler serves comment moderation.
type ModeratorHandler struct {
	service ports.ProposalService
}

func NewModeratorHandler(service ports.ProposalService) *ModeratorHandler {
	return &ModeratorHandler{service: service}
}

// DeleteComment handles POST /api/moderator/:proposalId/deleteComment.
//
// @Summary      Remove a comment
// @Tags         moderator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        proposalId  path      string                true  "Proposal ID"
// @Param        body        body      deleteCommentRequest  true  "Comment to remove"
// @Success      200         {object}  proposalResponse
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Failure      422         {object}  errorResponse
// @Router       /api/moderator/{proposalId}/deleteComment [post]
func (h *ModeratorHandler) DeleteComment(c echo.Context) error {
	var req deleteCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.DeleteComment(c.Request().Context(), c.Param("proposalId"), req.CommentID)
	if err != nil {
		return err
	}

	metrics.CommentsTotal.WithLabelValues("removed").Inc()
	return c.JSON(http.StatusOK, toProposalResponse(p))
}
