package main

import (
	"os"

	"github.com/adilg123/huffman-compression-tool/internal/api"
	"github.com/adilg123/huffman-compression-tool/internal/config"
	"github.com/adilg123/huffman-compression-tool/internal/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log := logger.New()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = cfg.MaxFileSize
	api.SetupRoutes(router, api.NewHandler(cfg, log))

	log.Infof("listening on :%s (env=%s, default algorithm=%s)", cfg.Port, cfg.Environment, cfg.DefaultAlgorithm)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}
