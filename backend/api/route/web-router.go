package route

import (
	"os"
	"path/filepath"

	"cadvault/backend/common"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// setWebRouter serves the built frontend bundle when one is present, with an
// SPA index fallback for client-side routes.
func setWebRouter(router *gin.Engine, cfg *common.Config) {
	if _, err := os.Stat(cfg.FrontendDist); err != nil {
		common.SysLog("frontend bundle not found, serving API only")
		return
	}
	router.Use(static.Serve("/", static.LocalFile(cfg.FrontendDist, false)))
	indexPath := filepath.Join(cfg.FrontendDist, "index.html")
	router.NoRoute(func(c *gin.Context) {
		c.File(indexPath)
	})
}
