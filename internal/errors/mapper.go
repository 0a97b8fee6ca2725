package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Domain error taxonomy. Services return these (possibly wrapped); the HTTP
// layer maps them to status codes via JSON below.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSelfRating      = errors.New("you cannot rate yourself")
	ErrDuplicateRating = errors.New("you have already rated this user")
	ErrQuotaExceeded   = errors.New("daily rating limit exceeded")
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidInput    = errors.New("invalid input")
)

// Validation wraps ErrInvalidInput with a human-readable reason.
func Validation(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrInvalidInput }

// Status converts repo/service errors into an HTTP status and client-facing
// reason. Keeps handlers clean by centralizing error mapping.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, ErrUserNotFound.Error()

	case errors.Is(err, ErrSelfRating):
		return http.StatusBadRequest, ErrSelfRating.Error()

	case errors.Is(err, ErrDuplicateRating), errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusBadRequest, ErrDuplicateRating.Error()

	case errors.Is(err, ErrQuotaExceeded):
		return http.StatusTooManyRequests, ErrQuotaExceeded.Error()

	case errors.Is(err, ErrEmailTaken):
		return http.StatusUnprocessableEntity, ErrEmailTaken.Error()

	case errors.Is(err, ErrInvalidInput):
		return http.StatusUnprocessableEntity, err.Error()

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"

	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// JSON writes the mapped status and a {"detail": reason} body.
func JSON(c *gin.Context, err error) {
	status, reason := Status(err)
	c.JSON(status, gin.H{"detail": reason})
}
