package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hubicito/hubicito-api/internal/api/handler/v1/response"
	"github.com/hubicito/hubicito-api/internal/api/middleware"
	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/service"
	"github.com/hubicito/hubicito-api/internal/wizard"
)

// HandleHealthcheck godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// actorFromContext returns the authenticated actor or renders 401.
func actorFromContext(ctx *gin.Context) (domain.Actor, bool) {
	actor := middleware.Actor(ctx)
	if !actor.IsAuthenticated() {
		response.RenderErr(ctx, response.ErrUnauthenticated(domain.ErrUnauthenticated))
		return domain.Actor{}, false
	}
	return actor, true
}

func uuidParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %s: %w", name, err)))
		return uuid.Nil, false
	}
	return id, true
}

// renderServiceErr renders err returned by a service call made for resource
// id. op names the failed call for the server log.
func renderServiceErr(ctx *gin.Context, op string, err error, id any) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		response.RenderErr(ctx, response.ErrNotFound("project", "id", id))
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "id", id))
	case errors.Is(err, service.ErrProfileNotFound):
		response.RenderErr(ctx, response.ErrNotFound("profile", "id", id))
	case errors.Is(err, wizard.ErrFormNotFound):
		response.RenderErr(ctx, response.ErrNotFound("form", "id", id))
	case errors.Is(err, service.ErrProfileEmailExists):
		response.RenderErr(ctx, response.ErrConflict(service.ErrProfileEmailExists))
	default:
		response.RenderErr(ctx, response.FromDomain(fmt.Errorf("%s -> %w", op, err)))
	}
}
