package v1

import (
	"github.com/gin-gonic/gin"

	"voxchat-server/internal/interfaces/httpserver/handlers"
)

func registerSessionRoutes(group *gin.RouterGroup, handler *handlers.SessionHandler) {
	sessions := group.Group("/sessions")
	sessions.GET("", handler.List)
	sessions.GET("/:session_id/history", handler.History)
	sessions.POST("/:session_id/name", handler.GenerateName)
	sessions.PATCH("/:session_id/name", handler.Rename)
	sessions.DELETE("/:session_id", handler.Delete)
}
