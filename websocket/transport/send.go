package transport

import (
	"log"

	"github.com/thesrcielos/exambuddy/internal/stats"
	"github.com/thesrcielos/exambuddy/websocket/message"
	"github.com/thesrcielos/exambuddy/websocket/state"
)

type OutgoingMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func Send(client *state.Client, msg OutgoingMessage) {
	if err := client.WriteJSON(msg); err != nil {
		log.Println("Error sending msg to", client.UserID, ":", err)
	}
}

func SendToUser(registry *state.Registry, userID string, msg OutgoingMessage) {
	for _, client := range registry.Clients(userID) {
		Send(client, msg)
	}
}

// StatsDeliverer pushes stats updates to the user's open dashboards on this
// instance.
func StatsDeliverer(registry *state.Registry) stats.DeliverFunc {
	return func(update stats.StatsUpdate) {
		SendToUser(registry, update.UserID, OutgoingMessage{
			Type:    message.TypeStatsUpdated,
			Payload: update.Stats,
		})
	}
}
