package route

import (
	"cadvault/backend/api/middleware"
	"cadvault/backend/common"
	"cadvault/backend/service"

	"github.com/gin-gonic/gin"
)

// SetRouter wires all middleware and routes onto the engine.
func SetRouter(router *gin.Engine, cfg *common.Config, tokens *service.TokenService) {
	router.Use(middleware.CORS(cfg))
	SetApiRouter(router, cfg, tokens)
	setWebRouter(router, cfg)
}
