package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/widescope/api/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect cross-origin from the SPA.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades the connection and relays every received message to the
// other connected users until the client disconnects.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userId")
		if userID == "" {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.L().Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		hub.Register(userID, conn)
		defer hub.Unregister(userID, conn)

		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			msg.From = userID
			hub.Broadcast(userID, msg)
		}
	}
}
