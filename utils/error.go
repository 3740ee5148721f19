package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorBody is the JSON shape every failed request returns. Detail is the
// human-readable explanation shown in the portal UI; internals never leak
// into it.
type ErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// ErrorHandler recovers handler panics into a 500 response, keeping the
// process alive and the panic in the log.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				GetLogger().Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.FullPath()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{
					Error:  "Internal error",
					Detail: "the request could not be completed",
				})
			}
		}()
		c.Next()
	}
}

// JSONError aborts the request with a structured error response and logs it
// at warn level.
func JSONError(c *gin.Context, status int, summary, detail string) {
	GetLogger().Warn(summary,
		zap.Int("status", status),
		zap.String("detail", detail))
	c.AbortWithStatusJSON(status, ErrorBody{Error: summary, Detail: detail})
}
