// Package handlers contains HTTP request handlers for the account service.
package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondError writes a structured error payload with the given status.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// LogAndRespondError logs the underlying error and writes a client-safe
// message. The internal error never reaches the response body.
func LogAndRespondError(c *gin.Context, logger *zap.Logger, status int, err error, message string) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
	)
	RespondError(c, status, message)
}
