package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/logger"
)

// ErrorHandler returns a Gin middleware that renders the last error set on
// the context with WriteError.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		WriteError(c, c.Errors.Last().Err)
	}
}

// WriteError renders err as {"error":{code,message,retriable}}. Errors that
// are not AppErrors become INTERNAL_ERROR; their text is logged, never sent.
func WriteError(c *gin.Context, err error) {
	appErr := apperrors.As(err)
	if appErr.Internal != nil {
		logger.Get().Errorw("request failed",
			"code", appErr.Code,
			"retriable", appErr.Retriable,
			"internal", appErr.Internal.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}
	c.JSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":      appErr.Code,
			"message":   appErr.Message,
			"retriable": appErr.Retriable,
		},
	})
}
