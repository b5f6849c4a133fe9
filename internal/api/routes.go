package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, h *Handler) {
	// CORS middleware for public API access
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition, X-Algorithm, X-Original-Size, X-Processed-Size, X-Compression-Ratio")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/health", h.HandleHealth)
	router.GET("/algorithms", h.HandleAlgorithms)

	router.GET("/info", h.HandleInfo)
	router.GET("/", h.HandleInfo) // Root endpoint shows info

	// Both payload variants decompress through either algorithm name; the
	// container's delimiter line selects the decoder.
	v1 := router.Group("/api/v1")
	{
		v1.GET("/algorithms", h.HandleAlgorithms)
		v1.POST("/compress", h.HandleCompress)
		v1.POST("/decompress", h.HandleDecompress)
		v1.GET("/info", h.HandleInfo)
		v1.GET("/health", h.HandleHealth)
	}

	// Legacy routes for backward compatibility
	router.POST("/compress", h.HandleCompress)
	router.POST("/decompress", h.HandleDecompress)
}
