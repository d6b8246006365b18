package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubicito/hubicito-api/internal/domain"
)

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	s := NewAuthService(newProfileStore())

	created, err := s.Signup(ctx, domain.Profile{
		Email:    "stu@hub.io",
		FullName: "Stu Dent",
		Role:     domain.RoleSuperAdmin,
		Password: "Secret123!",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, created.Role)
	assert.NotEqual(t, "Secret123!", created.Password)

	_, err = s.Signup(ctx, domain.Profile{Email: "stu@hub.io", Password: "x"})
	assert.ErrorIs(t, err, ErrProfileEmailExists)

	logged, err := s.Login(ctx, "stu@hub.io", "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, created.ID, logged.ID)

	_, err = s.Login(ctx, "stu@hub.io", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = s.Login(ctx, "nobody@hub.io", "Secret123!")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	actor, err := s.ResolveActor(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Actor{ID: created.ID, Role: domain.RoleStudent, FullName: "Stu Dent"}, actor)
}

func TestAuthService_SignupLookupFailure(t *testing.T) {
	store := newProfileStore()
	store.lookupErr = assert.AnError
	s := NewAuthService(store)

	_, err := s.Signup(context.Background(), domain.Profile{Email: "stu@hub.io", FullName: "Stu", Password: "Secret123!"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrProfileEmailExists)
	assert.Empty(t, store.byID)
}
