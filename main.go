package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"cadvault/backend/api/route"
	"cadvault/backend/common"
	"cadvault/backend/model"
	"cadvault/backend/service"

	"github.com/gin-gonic/gin"
)

func main() {
	flag.Parse()

	cfg, err := common.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	common.SetupGinLog(cfg.LogDir)
	common.SysLog(common.SystemName + " " + common.Version + " started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := common.InitRedisClient(cfg.RedisConn); err != nil {
		common.FatalLog(err)
	}

	if err := model.InitDB(cfg); err != nil {
		common.FatalLog(err)
	}
	defer func() {
		if err := model.CloseDB(); err != nil {
			common.SysError("error closing database: " + err.Error())
		}
	}()

	tokens := service.NewTokenService(cfg)

	server := gin.Default()
	route.SetRouter(server, cfg, tokens)

	setupGracefulShutdown()

	port := strconv.Itoa(cfg.Port)
	common.SysLog("Server listening on port: " + port)
	if err := server.Run(":" + port); err != nil {
		log.Fatal("failed to start server: " + err.Error())
	}
}

// setupGracefulShutdown registers signal handlers to ensure clean shutdown
func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		common.SysLog("Shutting down...")
		if err := model.CloseDB(); err != nil {
			common.SysError("error closing database: " + err.Error())
		}
		os.Exit(0)
	}()
}
