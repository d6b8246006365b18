package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hubicito/hubicito-api/internal/api/handler/v1/request"
	"github.com/hubicito/hubicito-api/internal/api/handler/v1/response"
	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/service"
)

type ProjectService interface {
	Review(ctx context.Context, actor domain.Actor, id uuid.UUID, review service.ProjectReview) (domain.Project, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (domain.Project, error)
	List(ctx context.Context, actor domain.Actor, filter service.ProjectListFilter) ([]domain.Project, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	ToggleLike(ctx context.Context, actor domain.Actor, id uuid.UUID) (domain.LikeResult, error)
}

type ProjectHandler struct {
	svc ProjectService
}

func NewProjectHandler(svc ProjectService) *ProjectHandler {
	return &ProjectHandler{
		svc: svc,
	}
}

// HandleListProjects godoc
// @Summary      List projects
// @Description  Admins see every project. Students see their own plus the approved, in progress and completed ones.
// @Tags         projects
// @Produce      json
// @Param        status    query     []string  false  "filter by status"  collectionFormat(multi)
// @Param        owner_id  query     string    false  "filter by owner"
// @Success      200  {array}   domain.Project
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /projects [get]
// @Security BearerAuth
func (h *ProjectHandler) HandleListProjects(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}

	var filter service.ProjectListFilter
	for _, s := range ctx.QueryArray("status") {
		status := domain.ProjectStatus(s)
		if !status.Valid() {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unknown status %q", s)))
			return
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	if owner := ctx.Query("owner_id"); owner != "" {
		id, err := uuid.Parse(owner)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid owner_id: %w", err)))
			return
		}
		filter.OwnerID = &id
	}

	projects, err := h.svc.List(ctx.Request.Context(), actor, filter)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListProjects -> h.svc.List", err, nil)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

// HandleGetProject godoc
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        projectID  path      string  true  "project id"
// @Success      200  {object}  domain.Project
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /projects/{projectID} [get]
// @Security BearerAuth
func (h *ProjectHandler) HandleGetProject(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "projectID")
	if !ok {
		return
	}

	project, err := h.svc.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetProject -> h.svc.Get", err, id)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// HandleDeleteProject godoc
// @Summary      Delete a project
// @Description  Owners may delete their projects until they are approved.
// @Tags         projects
// @Param        projectID  path      string  true  "project id"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /projects/{projectID} [delete]
// @Security BearerAuth
func (h *ProjectHandler) HandleDeleteProject(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "projectID")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), actor, id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteProject -> h.svc.Delete", err, id)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUpdateStatus godoc
// @Summary      Change the status of a project
// @Description  Admin review: submitted to approved or rejected, approved to in_progress, in_progress to completed, rejected to submitted.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        projectID  path      string                        true  "project id"
// @Param        request    body      request.ProjectStatusRequest  true  "request body"
// @Success      200  {object}  domain.Project
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /projects/{projectID}/status [post]
// @Security BearerAuth
func (h *ProjectHandler) HandleUpdateStatus(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "projectID")
	if !ok {
		return
	}

	var req request.ProjectStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	project, err := h.svc.Review(ctx.Request.Context(), actor, id, req.ToReview())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateStatus -> h.svc.Review", err, id)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// HandleToggleLike godoc
// @Summary      Like or unlike a project
// @Tags         projects
// @Produce      json
// @Param        projectID  path      string  true  "project id"
// @Success      200  {object}  domain.LikeResult
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /projects/{projectID}/like [post]
// @Security BearerAuth
func (h *ProjectHandler) HandleToggleLike(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "projectID")
	if !ok {
		return
	}

	result, err := h.svc.ToggleLike(ctx.Request.Context(), actor, id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleToggleLike -> h.svc.ToggleLike", err, id)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
