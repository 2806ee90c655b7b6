package handlers

import (
	"net/http"

	gorilla "github.com/gorilla/websocket"

	"detectserver/internal/logger"
	"detectserver/internal/services/websocket"
)

var upgrader = gorilla.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ViewWebsocketHandler upgrades the connection and registers the client with
// the hub; new detection records are pushed to it until it disconnects.
func ViewWebsocketHandler(hub *websocket.HubService, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("Websocket upgrade error: %v", err)
			return
		}

		hub.Register(conn)

		// Drain client messages; unregister on any read error.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.Unregister(conn)
				break
			}
		}
	}
}
