package v1

import (
	"github.com/gin-gonic/gin"

	"voxchat-server/internal/interfaces/httpserver/handlers"
)

func registerChatRoutes(group *gin.RouterGroup, handler *handlers.ChatHandler) {
	chat := group.Group("/chat")
	chat.POST("/text", handler.Text)
	chat.POST("/audio", handler.Audio)
}
