package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hubicito/hubicito-api/internal/api/handler/v1/request"
	"github.com/hubicito/hubicito-api/internal/api/handler/v1/response"
	"github.com/hubicito/hubicito-api/internal/domain"
)

type FeedbackService interface {
	Authorize(ctx context.Context, actor domain.Actor, projectID uuid.UUID) error
	Post(ctx context.Context, actor domain.Actor, projectID uuid.UUID, message string) (domain.Feedback, error)
	List(ctx context.Context, actor domain.Actor, projectID uuid.UUID) ([]domain.Feedback, error)
}

type FeedbackHandler struct {
	svc FeedbackService
	hub *FeedbackHub
}

func NewFeedbackHandler(svc FeedbackService, hub *FeedbackHub) *FeedbackHandler {
	return &FeedbackHandler{
		svc: svc,
		hub: hub,
	}
}

// HandlePostFeedback godoc
// @Summary      Post feedback on a project
// @Description  The project owner and admins share one thread per project.
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        projectID  path      string                   true  "project id"
// @Param        request    body      request.FeedbackRequest  true  "request body"
// @Success      201  {object}  domain.Feedback
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /projects/{projectID}/feedback [post]
// @Security BearerAuth
func (h *FeedbackHandler) HandlePostFeedback(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := uuidParam(ctx, "projectID")
	if !ok {
		return
	}

	var req request.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	feedback, err := h.svc.Post(ctx.Request.Context(), actor, projectID, req.Message)
	if err != nil {
		renderServiceErr(ctx, "v1.HandlePostFeedback -> h.svc.Post", err, projectID)
		return
	}

	ctx.JSON(http.StatusCreated, feedback)
}

// HandleListFeedback godoc
// @Summary      Get the feedback thread of a project
// @Tags         feedback
// @Produce      json
// @Param        projectID  path      string  true  "project id"
// @Success      200  {array}   domain.Feedback
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /projects/{projectID}/feedback [get]
// @Security BearerAuth
func (h *FeedbackHandler) HandleListFeedback(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := uuidParam(ctx, "projectID")
	if !ok {
		return
	}

	thread, err := h.svc.List(ctx.Request.Context(), actor, projectID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListFeedback -> h.svc.List", err, projectID)
		return
	}

	ctx.JSON(http.StatusOK, thread)
}
