package websocket

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/exambuddy/internal/user"
	"github.com/thesrcielos/exambuddy/websocket/message"
	"github.com/thesrcielos/exambuddy/websocket/router"
	"github.com/thesrcielos/exambuddy/websocket/state"
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

// Handler serves the live stats stream. Browsers cannot set headers on a
// websocket handshake, so the token travels in the query string.
type Handler struct {
	tokens   *user.TokenIssuer
	registry *state.Registry
	router   *router.Router
}

func NewHandler(tokens *user.TokenIssuer, registry *state.Registry, router *router.Router) *Handler {
	return &Handler{tokens: tokens, registry: registry, router: router}
}

func (h *Handler) Handle(c echo.Context) error {
	userID, err := h.tokens.ValidateJWT(c.QueryParam("token"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written the error response.
		log.Println("WebSocket upgrade failed:", err)
		return nil
	}

	client := h.registry.Register(userID, ws)
	log.Printf("Dashboard connected: user=%s conn=%s", userID, client.ID)

	h.router.RouteMessage(context.Background(), client, message.Message{Type: message.TypeStatsRefresh})
	go h.listen(client)

	return nil
}
