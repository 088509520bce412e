package actions

import (
	"context"

	"github.com/thesrcielos/exambuddy/websocket/message"
	"github.com/thesrcielos/exambuddy/websocket/state"
	"github.com/thesrcielos/exambuddy/websocket/transport"
)

func HandlePing(_ context.Context, client *state.Client, _ message.Message) {
	transport.Send(client, transport.OutgoingMessage{Type: message.TypePong})
}
