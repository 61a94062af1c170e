package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/lam3a/rush-backend/feed"
	"github.com/lam3a/rush-backend/models"
	"github.com/lam3a/rush-backend/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type FeedController struct {
	Hub *feed.Hub
}

func NewFeedController(hub *feed.Hub) *FeedController {
	return &FeedController{Hub: hub}
}

// HandleWebSocket upgrades the connection and parks it on the hub under the
// caller's scope. The read loop exists only to detect disconnects; the feed
// is one-way server-to-client.
func (fc *FeedController) HandleWebSocket(c *gin.Context) {
	scope := models.Scope{Role: c.GetString("role"), UserID: c.GetUint("user_id")}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("feed upgrade for %s: %v", scope.Key(), err)
		return
	}

	fc.Hub.RegisterClient(conn, scope)
	utils.InfoLogger.Printf("Feed client connected: %s", scope.Key())

	go func() {
		defer func() {
			fc.Hub.UnregisterClient(conn)
			utils.InfoLogger.Printf("Feed client disconnected: %s", scope.Key())
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
