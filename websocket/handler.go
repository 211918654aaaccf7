package websocket

import (
	"log"
	"net/http"
	"strings"

	"farmniti/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandler upgrades the connection and streams platform events to the
// authenticated client
func EventsHandler(c *gin.Context) {
	var tokenString string
	if authz := c.GetHeader("Authorization"); authz != "" {
		parts := strings.Split(authz, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	// Browsers cannot set headers on WebSocket connects
	if tokenString == "" {
		tokenString = c.Query("token")
	}
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization token required"})
		return
	}

	userID, _, err := utils.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &EventClient{
		Conn:   conn,
		UserID: userID.Hex(),
	}
	RegisterEventClient(client)
	defer UnregisterEventClient(client)

	client.SafeWriteJSON(map[string]interface{}{
		"type":   "connected",
		"userId": userID.Hex(),
	})

	// Drain incoming messages to keep the connection alive; ping control
	// frames are answered by the library inside ReadMessage
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Event WebSocket error: %v", err)
			}
			break
		}
	}
}
