package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hubicito/hubicito-api/internal/domain"
)

type Err struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"status_code"`
	StatusText     string `json:"status_text"`
	ErrorMsg       string `json:"error_msg,omitempty"`
}

// RenderErr writes err as JSON and aborts the chain. Server side failures
// are logged with the request id.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error(err.StatusText,
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(err.Err),
		)
	}

	ctx.AbortWithStatusJSON(err.HTTPStatusCode, err)
}

func newErr(status int, err error, msg string) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		ErrorMsg:       msg,
	}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err, err.Error())
}

func ErrUnauthenticated(err error) *Err {
	return newErr(http.StatusUnauthorized, err, err.Error())
}

func ErrWrongCredentials(err error) *Err {
	return newErr(http.StatusUnauthorized, err, "wrong email or password")
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err, err.Error())
}

func ErrNotFound(resource, key string, value any) *Err {
	err := fmt.Errorf("%s with %s %v not found", resource, key, value)
	return newErr(http.StatusNotFound, err, err.Error())
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, err, err.Error())
}

func ErrEntityTooLarge(err error) *Err {
	return newErr(http.StatusRequestEntityTooLarge, err, err.Error())
}

// ErrInternalServerError hides err from the client.
func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, err, "")
}

// FromDomain maps the domain error taxonomy onto HTTP statuses. Errors it
// does not know are treated as server errors.
func FromDomain(err error) *Err {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return ErrUnauthenticated(domain.ErrUnauthenticated)
	case errors.Is(err, domain.ErrValidation):
		return ErrBadRequest(err)
	case errors.Is(err, domain.ErrForbidden):
		return ErrPermissionDenied(domain.ErrForbidden)
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrLocked):
		return ErrConflict(err)
	}
	return ErrInternalServerError(err)
}
