package apiutil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorMiddleware translates errors recorded with c.Error into the JSON error body.
// Every store or validation failure is reported as 400.
func ErrorMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		logger.Info("request failed",
			zap.String("trace_id", GetTraceID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)

		if c.Writer.Written() {
			return
		}

		WriteErrorResponse(c, http.StatusBadRequest, err)
		c.Abort()
	}
}
