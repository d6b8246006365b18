package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/pkg/jwthelper"
)

const (
	signingKey = "test-key"
	userAgent  = "middleware-test"
)

type actorMap map[uuid.UUID]domain.Actor

func (m actorMap) ResolveActor(_ context.Context, id uuid.UUID) (domain.Actor, error) {
	a, ok := m[id]
	if !ok {
		return domain.Actor{}, domain.ErrUnauthenticated
	}
	return a, nil
}

func newRouter(actors actorMap, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{NewAuthenticator(signingKey, actors).VerifyJWT()}, extra...)
	handlers = append(handlers, func(ctx *gin.Context) {
		ctx.String(http.StatusOK, string(Actor(ctx).Role))
	})
	r.GET("/me", handlers...)
	return r
}

func tokenFor(t *testing.T, id uuid.UUID) string {
	t.Helper()
	token, err := jwthelper.GenerateToken([]byte(signingKey), id, userAgent, time.Hour)
	require.NoError(t, err)
	return token
}

func do(r http.Handler, target, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("User-Agent", userAgent)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyJWT(t *testing.T) {
	student := domain.Actor{ID: uuid.New(), Role: domain.RoleStudent}
	r := newRouter(actorMap{student.ID: student})

	tests := []struct {
		name          string
		target        string
		authorization string
		wantStatus    int
		wantBody      string
	}{
		{name: "header", target: "/me", authorization: "Bearer " + tokenFor(t, student.ID), wantStatus: http.StatusOK, wantBody: "student"},
		{name: "query parameter", target: "/me?access_token=" + tokenFor(t, student.ID), wantStatus: http.StatusOK, wantBody: "student"},
		{name: "missing", target: "/me", wantStatus: http.StatusUnauthorized},
		{name: "garbage", target: "/me", authorization: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "unknown profile", target: "/me", authorization: "Bearer " + tokenFor(t, uuid.New()), wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.target, tt.authorization)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	student := domain.Actor{ID: uuid.New(), Role: domain.RoleStudent}
	admin := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
	superAdmin := domain.Actor{ID: uuid.New(), Role: domain.RoleSuperAdmin}
	r := newRouter(actorMap{student.ID: student, admin.ID: admin, superAdmin.ID: superAdmin}, RequireAdmin())

	assert.Equal(t, http.StatusForbidden, do(r, "/me", "Bearer "+tokenFor(t, student.ID)).Code)
	assert.Equal(t, http.StatusOK, do(r, "/me", "Bearer "+tokenFor(t, admin.ID)).Code)
	assert.Equal(t, http.StatusOK, do(r, "/me", "Bearer "+tokenFor(t, superAdmin.ID)).Code)
}

func TestRequireRole_WithoutActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", RequireRole(domain.RoleSuperAdmin), func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
