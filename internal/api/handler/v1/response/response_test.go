package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hubicito/hubicito-api/internal/domain"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: domain.ErrUnauthenticated, wantStatus: http.StatusUnauthorized},
		{err: domain.NewValidationError(errors.New("name: cannot be blank")), wantStatus: http.StatusBadRequest},
		{err: domain.NewValidationError(domain.ErrFeedbackRequired), wantStatus: http.StatusBadRequest},
		{err: fmt.Errorf("s.x -> %w", domain.ErrForbidden), wantStatus: http.StatusForbidden},
		{err: fmt.Errorf("%w: draft -> approved", domain.ErrInvalidTransition), wantStatus: http.StatusConflict},
		{err: domain.ErrLocked, wantStatus: http.StatusConflict},
		{err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got := FromDomain(tt.err)
			assert.Equal(t, tt.wantStatus, got.HTTPStatusCode)
			assert.Equal(t, http.StatusText(tt.wantStatus), got.StatusText)
		})
	}
}

func TestErrInternalServerError_HidesCause(t *testing.T) {
	got := ErrInternalServerError(errors.New("password=hunter2"))
	assert.Empty(t, got.ErrorMsg)
	assert.EqualError(t, got.Err, "password=hunter2")
}
