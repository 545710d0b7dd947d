package progress

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // same-host admin tooling; restrict in production
	},
}

// WSHandler upgrades the connection and keeps it registered until the
// client goes away. Incoming messages are ignored; the socket is a feed.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		hub.Add(ws)
		_ = ws.WriteMessage(
			websocket.TextMessage,
			[]byte(`{"type":"welcome","feed":"imports"}`+"\n"),
		)

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.Remove(ws)
	}
}
