package middleware

import (
	"fmt"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/hubicito/hubicito-api/internal/api/handler/v1/response"
	"github.com/hubicito/hubicito-api/internal/domain"
)

// RequireRole lets the request through only for the given roles. It must run
// after VerifyJWT.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor := Actor(ctx)
		if !actor.IsAuthenticated() {
			response.RenderErr(ctx, response.ErrUnauthenticated(domain.ErrUnauthenticated))
			return
		}
		if !slices.Contains(roles, actor.Role) {
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("role %s is not allowed", actor.Role)))
			return
		}

		ctx.Next()
	}
}

// RequireAdmin accepts admins and super admins.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin)
}
