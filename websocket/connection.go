package websocket

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
	"github.com/thesrcielos/exambuddy/websocket/message"
	"github.com/thesrcielos/exambuddy/websocket/state"
)

const maxMessageSize = 4096

func (h *Handler) listen(client *state.Client) {
	defer func() {
		log.Printf("Dashboard disconnected: user=%s conn=%s", client.UserID, client.ID)
		h.registry.Unregister(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("Error reading message:", err)
			}
			return
		}

		var msg message.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Println("Error decoding message:", err)
			continue
		}

		h.router.RouteMessage(context.Background(), client, msg)
	}
}
