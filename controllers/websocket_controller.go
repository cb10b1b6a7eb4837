package controllers

import (
	"github.com/gin-gonic/gin"

	"SafeKidsMobile/websocket"
)

var wsHub *websocket.Hub

func SetWebSocketHub(hub *websocket.Hub) {
	wsHub = hub
}

// HandleWebSocket подключает устройство родителя к потоку событий профилей
func HandleWebSocket(c *gin.Context) {
	websocket.ServeWs(wsHub, c)
}
