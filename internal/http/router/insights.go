package router

import (
	"github.com/gin-gonic/gin"

	"testnetdir.app/pulse/internal/http/handler"
)

func InsightsRouter(router *gin.RouterGroup, handler *handler.InsightsHandler) {
	router.POST("/compute", handler.Compute)
	router.GET("/latest", handler.Latest)
}
