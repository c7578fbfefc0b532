package route

import (
	"cadvault/backend/api/handler"
	"cadvault/backend/api/middleware"
	"cadvault/backend/common"
	"cadvault/backend/library/storage"
	"cadvault/backend/service"

	"github.com/gin-gonic/gin"
)

func SetApiRouter(router *gin.Engine, cfg *common.Config, tokens *service.TokenService) {
	authHandler := handler.NewAuthHandler(tokens, cfg)
	fileHandler := handler.NewFileHandler(storage.NewStore(cfg.UploadPath), cfg)
	authGate := middleware.JWTAuth(tokens)

	// Auth routes: register, login and logout stay outside the gate; /me is
	// the identity probe behind it.
	authRoutes := router.Group("/auth")
	authRoutes.Use(middleware.GlobalAPIRateLimit())
	{
		authRoutes.POST("/register", middleware.CriticalRateLimit(), authHandler.Register)
		authRoutes.POST("/login", middleware.CriticalRateLimit(), authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
		authRoutes.GET("/me", authGate, authHandler.Me)
	}

	apiRouter := router.Group("/api")
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		apiRouter.GET("/status", handler.GetStatus)

		protected := apiRouter.Group("/")
		protected.Use(authGate)
		{
			protected.POST("/upload", middleware.UploadRateLimit(), fileHandler.Upload)
			protected.GET("/files", fileHandler.List)
			protected.GET("/files/:id", middleware.DownloadRateLimit(), fileHandler.Download)
		}
	}
}
