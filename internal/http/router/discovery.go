package router

import (
	"github.com/gin-gonic/gin"

	"testnetdir.app/pulse/internal/http/handler"
)

func DiscoveryRouter(router *gin.RouterGroup, handler *handler.DiscoveryHandler) {
	router.POST("/run", handler.Run)
	router.GET("/latest", handler.Latest)
}
