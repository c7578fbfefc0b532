package handler

import (
	"net/http"

	"cadvault/backend/common"

	"github.com/gin-gonic/gin"
)

// GetStatus is the unauthenticated health probe.
func GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"version":    common.Version,
		"start_time": common.StartTime,
	})
}
