package actions

import (
	"context"
	"log"

	"github.com/thesrcielos/exambuddy/internal/stats"
	"github.com/thesrcielos/exambuddy/websocket/message"
	"github.com/thesrcielos/exambuddy/websocket/state"
	"github.com/thesrcielos/exambuddy/websocket/transport"
)

type StatsReader interface {
	GetStats(ctx context.Context, userID string) (stats.StatsMap, error)
}

// HandleRefresh sends the current mapping to the requesting connection only.
func HandleRefresh(reader StatsReader) func(ctx context.Context, client *state.Client, msg message.Message) {
	return func(ctx context.Context, client *state.Client, _ message.Message) {
		current, err := reader.GetStats(ctx, client.UserID)
		if err != nil {
			log.Printf("Error fetching stats for user %s: %v", client.UserID, err)
			transport.Send(client, transport.OutgoingMessage{
				Type:    message.TypeError,
				Payload: message.ErrorPayload{Message: "error fetching stats"},
			})
			return
		}
		transport.Send(client, transport.OutgoingMessage{
			Type:    message.TypeStatsUpdated,
			Payload: current,
		})
	}
}
