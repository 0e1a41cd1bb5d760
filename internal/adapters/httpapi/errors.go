package httpapi

import (
	"net/http"

	"blogify/internal/core/apperror"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const serverErrorMessage = "Server error"

// statusFor maps the domain error taxonomy to HTTP status codes.
func statusFor(err error) int {
	switch {
	case apperror.IsValidation(err), apperror.IsMalformedID(err):
		return http.StatusBadRequest
	case apperror.IsUnauthenticated(err):
		return http.StatusUnauthorized
	case apperror.IsForbidden(err):
		return http.StatusForbidden
	case apperror.IsNotFound(err):
		return http.StatusNotFound
	case apperror.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"message": ...}. Unexpected errors are logged
// and reported but never shown to the client.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		sentry.CaptureException(err)
		c.JSON(status, gin.H{"message": serverErrorMessage})
		return
	}
	c.JSON(status, gin.H{"message": apperror.PublicMessage(err, http.StatusText(status))})
}

func userIDFrom(c *gin.Context) (string, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
