package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/thesrcielos/exambuddy/internal/stats"
)

const typeStatsUpdated = "STATS_UPDATED"

type liveMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Watch opens the live stats stream and calls onUpdate for every mapping the
// server pushes, starting with the current one. It blocks until ctx is done
// or the connection drops.
func (c *Client) Watch(ctx context.Context, onUpdate func(stats.StatsMap)) error {
	wsURL, err := c.liveURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("error connecting to live stats: %w", err)
	}
	done := make(chan struct{})
	defer func() {
		close(done)
		conn.Close()
	}()

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var msg liveMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("live stats stream closed: %w", err)
		}
		if msg.Type != typeStatsUpdated {
			continue
		}

		var m stats.StatsMap
		if err := json.Unmarshal(msg.Payload, &m); err != nil {
			return fmt.Errorf("error decoding live stats: %w", err)
		}
		valid, err := validStats(m)
		if err != nil {
			return err
		}
		onUpdate(valid)
	}
}

func (c *Client) liveURL() (string, error) {
	u, err := url.Parse(c.baseURL + "/api/user-stats/live")
	if err != nil {
		return "", err
	}
	switch strings.ToLower(u.Scheme) {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	q := u.Query()
	q.Set("token", c.token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
