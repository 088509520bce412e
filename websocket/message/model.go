package message

import (
	"encoding/json"
)

const (
	TypePing         = "PING"
	TypePong         = "PONG"
	TypeStatsRefresh = "STATS_REFRESH"
	TypeStatsUpdated = "STATS_UPDATED"
	TypeError        = "ERROR"
)

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
