package common

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Time format constants
const (
	RFC3339MilliZ = "2006-01-02T15:04:05.000Z07:00"
)

// RespMessage responds with a plain message body. Every client-visible error
// carries exactly this shape; no internal detail is ever included.
func RespMessage(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, gin.H{"message": msg})
}

// RespError logs the underlying error and responds with only the public
// message.
func RespError(c *gin.Context, statusCode int, msg string, err error) {
	if err != nil {
		SysError(msg + ": " + err.Error())
	}
	RespMessage(c, statusCode, msg)
}

// FormatTime formats time to RFC3339MilliZ format
func FormatTime(t time.Time) string {
	return t.UTC().Format(RFC3339MilliZ)
}
