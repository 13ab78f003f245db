package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/civicvoice/participation/internal/api/metrics"
	"github.com/civicvoice/participation/internal/core/ports"
)

// ProposalHandler handles HTTP requests for proposal operations.
type ProposalHandler struct {
	service ports.ProposalService
}

func NewProposalHandler(service ports.ProposalService) *ProposalHandler {
	return &ProposalHandler{service: service}
}

// List handles GET /api/proposals.
//
// @Summary      List proposals
// @Tags         proposals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   proposalResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/proposals [get]
func (h *ProposalHandler) List(c echo.Context) error {
	proposals, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProposalResponses(proposals))
}

// Get handles GET /api/proposals/:id.
//
// @Summary      Get a proposal
// @Tags         proposals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Proposal ID"
// @Success      200  {object}  proposalResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/proposals/{id} [get]
func (h *ProposalHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProposalResponse(p))
}

// Create handles POST /api/proposals. The author is always the caller.
//
// @Summary      Create a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProposalRequest  true  "Proposal details, limit_date as dd/MM/yyyy"
// @Success      201   {object}  proposalResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/proposals [post]
func (h *ProposalHandler) Create(c echo.Context) error {
	var req createProposalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), toCreateProposalInput(req))
	if err != nil {
		return err
	}

	metrics.ProposalsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toProposalResponse(p))
}

// Delete handles DELETE /api/proposals/:id.
//
// @Summary      Delete a proposal
// @Description  Only the mayor who authored the proposal may delete it.
// @Tags         proposals
// @Security     BearerAuth
// @Param        id  path  string  true  "Proposal ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/proposals/{id} [delete]
func (h *ProposalHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Comment handles POST /api/proposals/:id/comment.
//
// @Summary      Comment on a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Proposal ID"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      201   {object}  proposalResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/proposals/{id}/comment [post]
func (h *ProposalHandler) Comment(c echo.Context) error {
	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Comment(c.Request().Context(), c.Param("id"), req.Description)
	if err != nil {
		return err
	}

	metrics.CommentsTotal.WithLabelValues("added").Inc()
	return c.JSON(http.StatusCreated, toProposalResponse(p))
}

// Vote handles POST /api/proposals/:id/vote. A second vote replaces the first.
//
// @Summary      Vote on a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Proposal ID"
// @Param        body  body      voteRequest  true  "Vote"
// @Success      200   {object}  proposalResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/proposals/{id}/vote [post]
func (h *ProposalHandler) Vote(c echo.Context) error {
	var req voteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Vote(c.Request().Context(), c.Param("id"), *req.InFavor)
	if err != nil {
		return err
	}

	metrics.VotesCastTotal.WithLabelValues(strconv.FormatBool(*req.InFavor)).Inc()
	return c.JSON(http.StatusOK, toProposalResponse(p))
}
