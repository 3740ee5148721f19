package handlers

import (
	"lexaid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the process logger annotated with the request route, so
// handler log lines are attributable without per-request logger plumbing.
func getLogger(c *gin.Context) *zap.Logger {
	return utils.GetLogger().With(
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)
}
