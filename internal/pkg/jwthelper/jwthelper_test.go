package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("secret")
	id := uuid.New()

	token, err := GenerateToken(key, id, "curl/8", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(key, token, "curl/8")
	require.NoError(t, err)
	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, id, got)

	tests := []struct {
		name      string
		key       []byte
		token     string
		userAgent string
		wantErr   error
	}{
		{name: "wrong key", key: []byte("other"), token: token, userAgent: "curl/8", wantErr: ErrInvalidToken},
		{name: "other user agent", key: key, token: token, userAgent: "firefox", wantErr: ErrUserAgentMismatch},
		{name: "garbage", key: key, token: "abc.def.ghi", userAgent: "curl/8", wantErr: ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.key, tt.token, tt.userAgent)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseToken_Expired(t *testing.T) {
	key := []byte("secret")
	token, err := GenerateToken(key, uuid.New(), "ua", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(key, token, "ua")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := UserClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken([]byte("secret"), token, "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
