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

type AdminService interface {
	CreateAdminUser(ctx context.Context, actor domain.Actor, user service.NewAdminUser) (domain.Profile, error)
	UpdateAdminUser(ctx context.Context, actor domain.Actor, id uuid.UUID, update domain.ProfileUpdate) (domain.Profile, error)
	ListUsers(ctx context.Context, actor domain.Actor, roles ...domain.Role) ([]domain.Profile, error)
	GetStats(ctx context.Context, actor domain.Actor) (domain.AdminStats, error)
}

type AdminHandler struct {
	svc AdminService
}

func NewAdminHandler(svc AdminService) *AdminHandler {
	return &AdminHandler{
		svc: svc,
	}
}

// HandleCreateAdminUser godoc
// @Summary      Create an admin account
// @Description  Super admins only. The role must be admin or super_admin.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateAdminUserRequest  true  "request body"
// @Success      201  {object}  domain.Profile
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /admin/users [post]
// @Security BearerAuth
func (h *AdminHandler) HandleCreateAdminUser(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}

	var req request.CreateAdminUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	profile, err := h.svc.CreateAdminUser(ctx.Request.Context(), actor, service.NewAdminUser{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateAdminUser -> h.svc.CreateAdminUser", err, nil)
		return
	}

	ctx.JSON(http.StatusCreated, profile)
}

// HandleUpdateAdminUser godoc
// @Summary      Change the role, position or name of a user
// @Description  Super admins only. Nobody can change their own role.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        userID   path      string                          true  "profile id"
// @Param        request  body      request.UpdateAdminUserRequest  true  "request body"
// @Success      200  {object}  domain.Profile
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /admin/users/{userID} [patch]
// @Security BearerAuth
func (h *AdminHandler) HandleUpdateAdminUser(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "userID")
	if !ok {
		return
	}

	var req request.UpdateAdminUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	profile, err := h.svc.UpdateAdminUser(ctx.Request.Context(), actor, id, req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateAdminUser -> h.svc.UpdateAdminUser", err, id)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleListUsers godoc
// @Summary      List profiles
// @Tags         admin
// @Produce      json
// @Param        role  query     []string  false  "roles to include, all when empty"  collectionFormat(multi)
// @Success      200  {array}   domain.Profile
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /admin/users [get]
// @Security BearerAuth
func (h *AdminHandler) HandleListUsers(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}

	roles := []domain.Role{domain.RoleStudent, domain.RoleAdmin, domain.RoleSuperAdmin}
	if values := ctx.QueryArray("role"); len(values) > 0 {
		roles = roles[:0]
		for _, v := range values {
			role := domain.Role(v)
			if !role.Valid() {
				response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unknown role %q", v)))
				return
			}
			roles = append(roles, role)
		}
	}

	profiles, err := h.svc.ListUsers(ctx.Request.Context(), actor, roles...)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListUsers -> h.svc.ListUsers", err, nil)
		return
	}

	ctx.JSON(http.StatusOK, profiles)
}

// HandleGetStats godoc
// @Summary      Dashboard counters
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.AdminStats
// @Failure      403  {object}  response.Err
// @Router       /admin/stats [get]
// @Security BearerAuth
func (h *AdminHandler) HandleGetStats(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}

	stats, err := h.svc.GetStats(ctx.Request.Context(), actor)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetStats -> h.svc.GetStats", err, nil)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
