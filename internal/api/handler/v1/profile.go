package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hubicito/hubicito-api/internal/api/handler/v1/request"
	"github.com/hubicito/hubicito-api/internal/api/handler/v1/response"
	"github.com/hubicito/hubicito-api/internal/domain"
)

type ProfileService interface {
	Me(ctx context.Context, actor domain.Actor) (domain.Profile, error)
	UpdateMe(ctx context.Context, actor domain.Actor, update domain.ProfileUpdate) (domain.Profile, error)
}

type ProfileHandler struct {
	svc ProfileService
}

func NewProfileHandler(svc ProfileService) *ProfileHandler {
	return &ProfileHandler{
		svc: svc,
	}
}

// HandleGetMe godoc
// @Summary      Get the profile of the current user
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  response.Err
// @Router       /profiles/me [get]
// @Security BearerAuth
func (h *ProfileHandler) HandleGetMe(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}

	profile, err := h.svc.Me(ctx.Request.Context(), actor)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetMe -> h.svc.Me", err, actor.ID)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleUpdateMe godoc
// @Summary      Update the profile of the current user
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpdateProfileRequest  true  "request body"
// @Success      200  {object}  domain.Profile
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Router       /profiles/me [patch]
// @Security BearerAuth
func (h *ProfileHandler) HandleUpdateMe(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	profile, err := h.svc.UpdateMe(ctx.Request.Context(), actor, req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateMe -> h.svc.UpdateMe", err, actor.ID)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}
