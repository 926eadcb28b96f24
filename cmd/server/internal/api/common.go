package api

import (
	"github.com/gin-gonic/gin"

	"github.com/meetscribe/export-server/pkg/logger"
)

// errorResponse writes an error payload with the given status code.
func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"error": message,
	})
}

// successResponse writes a 200 payload.
func successResponse(c *gin.Context, data interface{}) {
	c.JSON(200, data)
}

// notFoundResponse writes a 404 payload for a missing resource.
func notFoundResponse(c *gin.Context, resource string) {
	c.JSON(404, gin.H{
		"error": resource + " not found",
	})
}

// badRequestResponse writes a 400 payload.
func badRequestResponse(c *gin.Context, message string) {
	c.JSON(400, gin.H{
		"error": message,
	})
}

// internalErrorResponse logs err and writes a generic 500 payload.
func internalErrorResponse(c *gin.Context, err error) {
	logger.L().Error("internal error",
		"rid", c.GetString("request_id"),
		"path", c.Request.URL.Path,
		"error", err,
	)
	c.JSON(500, gin.H{
		"error": "internal server error",
	})
}
