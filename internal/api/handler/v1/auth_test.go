package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubicito/hubicito-api/internal/api/handler/v1/response"
	"github.com/hubicito/hubicito-api/internal/config"
	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/pkg/jwthelper"
	"github.com/hubicito/hubicito-api/internal/service"
)

const signingKey = "0123456789abcdef0123"

type stubAuth struct {
	profile domain.Profile
}

func (s *stubAuth) Signup(_ context.Context, p domain.Profile) (domain.Profile, error) {
	if p.Email == s.profile.Email {
		return domain.Profile{}, service.ErrProfileEmailExists
	}
	p.ID = uuid.New()
	p.Role = domain.RoleStudent
	return p, nil
}

func (s *stubAuth) Login(_ context.Context, email, password string) (domain.Profile, error) {
	if email != s.profile.Email {
		return domain.Profile{}, service.ErrProfileNotFound
	}
	if password != "secret123" {
		return domain.Profile{}, service.ErrWrongPassword
	}
	return s.profile, nil
}

func authRouter() *gin.Engine {
	h := NewAuthHandler(&config.APIConfig{JWTSigningKey: signingKey, JWTExpiration: time.Hour}, &stubAuth{
		profile: domain.Profile{ID: student.ID, Email: "stu@hubicito.dev", Role: domain.RoleStudent},
	})
	r := gin.New()
	r.POST("/auth/signup", h.HandleSignup)
	r.POST("/auth/login", h.HandleLogin)
	return r
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{
			name: "created",
			body: map[string]any{"email": "new@hubicito.dev", "password": "secret123", "confirm_password": "secret123", "full_name": "New"},
			want: http.StatusCreated,
		},
		{
			name: "weak password",
			body: map[string]any{"email": "new@hubicito.dev", "password": "password", "confirm_password": "password", "full_name": "New"},
			want: http.StatusBadRequest,
		},
		{
			name: "mismatched confirmation",
			body: map[string]any{"email": "new@hubicito.dev", "password": "secret123", "confirm_password": "secret124", "full_name": "New"},
			want: http.StatusBadRequest,
		},
		{
			name: "email taken",
			body: map[string]any{"email": "stu@hubicito.dev", "password": "secret123", "confirm_password": "secret123", "full_name": "Stu"},
			want: http.StatusConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, authRouter(), http.MethodPost, "/auth/signup", tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	r := authRouter()

	raw, err := json.Marshal(map[string]string{"email": "stu@hubicito.dev", "password": "secret123"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "hubicito-test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	res := decode[response.LoginResponse](t, w)
	claims, err := jwthelper.ParseToken([]byte(signingKey), res.Token, "hubicito-test")
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, student.ID, id)

	w = doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{"email": "stu@hubicito.dev", "password": "wrong1234"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{"email": "ghost@hubicito.dev", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleHealthcheck(t *testing.T) {
	r := gin.New()
	r.GET("/", HandleHealthcheck)

	w := doJSON(t, r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
