package router

import (
	"context"
	"log"

	"github.com/thesrcielos/exambuddy/websocket/actions"
	"github.com/thesrcielos/exambuddy/websocket/message"
	"github.com/thesrcielos/exambuddy/websocket/state"
)

type HandlerFunc func(ctx context.Context, client *state.Client, msg message.Message)

type Router struct {
	handlers map[string]HandlerFunc
}

func NewRouter(reader actions.StatsReader) *Router {
	return &Router{
		handlers: map[string]HandlerFunc{
			message.TypePing:         actions.HandlePing,
			message.TypeStatsRefresh: actions.HandleRefresh(reader),
		},
	}
}

func (r *Router) RouteMessage(ctx context.Context, client *state.Client, msg message.Message) {
	if handler, ok := r.handlers[msg.Type]; ok {
		handler(ctx, client, msg)
	} else {
		log.Println("Unknown message type:", msg.Type)
	}
}
