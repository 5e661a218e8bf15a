package api

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the generation API under /api.
func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.POST("/assets", assetsHandler)
		api.POST("/generate", generateHandler)
	}
}
