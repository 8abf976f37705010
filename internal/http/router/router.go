package router

import (
	"github.com/gin-gonic/gin"

	"testnetdir.app/pulse/internal/http/handler"
)

func SetupRoutes(router *gin.Engine, insightsHandler *handler.InsightsHandler, discoveryHandler *handler.DiscoveryHandler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		InsightsRouter(v1.Group("/insights"), insightsHandler)
		DiscoveryRouter(v1.Group("/discovery"), discoveryHandler)
	}
}
