// internal/pkg/response/response.go
package response

import (
	"errors"
	"net/http"
	"strings"
	"time"

	xerrors "insurance-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// APIError is the uniform error envelope returned by every endpoint.
type APIError struct {
	Timestamp   time.Time         `json:"timestamp"`
	Status      int               `json:"status"`
	ErrorCode   string            `json:"errorCode"`
	Message     string            `json:"message"`
	Path        string            `json:"path"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// JSON writes a successful response body as-is.
func JSON(c *gin.Context, status int, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, data)
}

// Error sends the error envelope and aborts the handler chain.
func Error(c *gin.Context, status int, errorCode, message string, fieldErrors map[string]string) {
	c.Abort()
	c.JSON(status, APIError{
		Timestamp:   time.Now().UTC(),
		Status:      status,
		ErrorCode:   errorCode,
		Message:     message,
		Path:        c.Request.URL.Path,
		FieldErrors: fieldErrors,
	})
}

// FromError translates a service-layer error into the envelope. Business
// failures keep their message; anything unclassified becomes a generic 500 so
// internal detail never reaches the caller.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, xerrors.ErrNotFound):
		Error(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, xerrors.ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, "UNAUTHORIZED", xerrors.ErrInvalidCredentials.Error(), nil)
	case errors.Is(err, xerrors.ErrInvalidToken), errors.Is(err, xerrors.ErrUnauthorized):
		Error(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), nil)
	case errors.Is(err, xerrors.ErrForbidden):
		Error(c, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
	case errors.Is(err, xerrors.ErrBadRequest), errors.Is(err, xerrors.ErrDuplicateEntry):
		Error(c, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, xerrors.ErrConflict):
		Error(c, http.StatusConflict, "DATA_INTEGRITY_VIOLATION",
			"database constraint violation, please check your input", nil)
	case errors.Is(err, xerrors.ErrRateLimited):
		Error(c, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", err.Error(), nil)
	default:
		Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR",
			"something went wrong, please try again later", nil)
	}
}

// ValidationError sends a 400 with per-field messages when request binding
// fails. Non-validator errors (malformed JSON) fall back to a bare BAD_REQUEST.
func ValidationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		Error(c, http.StatusBadRequest, "BAD_REQUEST", "malformed request body", nil)
		return
	}

	fieldErrors := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fieldErrors[fieldName(fe)] = fieldMessage(fe)
	}
	Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", fieldErrors)
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return fe.StructField()
	}
	// lowerCamel to match the JSON body field names
	return strings.ToLower(name[:1]) + name[1:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "is too short (minimum " + fe.Param() + ")"
	case "max":
		return "is too long (maximum " + fe.Param() + ")"
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
