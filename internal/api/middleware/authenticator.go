package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hubicito/hubicito-api/internal/api/handler/v1/response"
	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/pkg/jwthelper"
)

const actorKey = "hubicito.actor"

var errMissingToken = errors.New("missing bearer token")

// ActorResolver loads the actor behind a verified token subject.
type ActorResolver interface {
	ResolveActor(ctx context.Context, id uuid.UUID) (domain.Actor, error)
}

type Authenticator struct {
	key      []byte
	resolver ActorResolver
}

func NewAuthenticator(key string, resolver ActorResolver) *Authenticator {
	return &Authenticator{
		key:      []byte(key),
		resolver: resolver,
	}
}

// VerifyJWT checks the bearer token and stores the resolved actor in the
// request context. Browsers cannot set headers on websocket upgrades, so the
// token is also accepted as the "access_token" query parameter.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			response.RenderErr(ctx, response.ErrUnauthenticated(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.key, token, ctx.Request.UserAgent())
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthenticated(err))
			return
		}

		id, err := claims.UserID()
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthenticated(err))
			return
		}

		actor, err := a.resolver.ResolveActor(ctx.Request.Context(), id)
		if err != nil {
			// The profile behind a valid token is gone.
			response.RenderErr(ctx, response.ErrUnauthenticated(fmt.Errorf("a.resolver.ResolveActor -> %w", err)))
			return
		}

		ctx.Set(actorKey, actor)
		ctx.Next()
	}
}

// Actor returns the actor stored by VerifyJWT, or the zero Actor.
func Actor(ctx *gin.Context) domain.Actor {
	v, ok := ctx.Get(actorKey)
	if !ok {
		return domain.Actor{}
	}
	actor, _ := v.(domain.Actor)
	return actor
}

// SetActor is used by tests and by handlers mounted without VerifyJWT.
func SetActor(ctx *gin.Context, actor domain.Actor) {
	ctx.Set(actorKey, actor)
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ctx.Query("access_token")
}
