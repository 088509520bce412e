package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// Client is one open dashboard connection. A user may hold several.
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	ConnMu sync.Mutex
}

// WriteJSON serializes writes; gorilla connections allow one writer at a time.
func (c *Client) WriteJSON(v any) error {
	c.ConnMu.Lock()
	defer c.ConnMu.Unlock()

	if err := c.Conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.Conn.WriteJSON(v)
}

type Registry struct {
	mu      sync.RWMutex
	clients map[string]map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]map[string]*Client)}
}

func (r *Registry) Register(userID string, conn *websocket.Conn) *Client {
	client := &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Conn:   conn,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clients[userID] == nil {
		r.clients[userID] = make(map[string]*Client)
	}
	r.clients[userID][client.ID] = client
	return client
}

func (r *Registry) Unregister(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns := r.clients[client.UserID]
	delete(conns, client.ID)
	if len(conns) == 0 {
		delete(r.clients, client.UserID)
	}
}

func (r *Registry) Clients(userID string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Client, 0, len(r.clients[userID]))
	for _, c := range r.clients[userID] {
		all = append(all, c)
	}
	return all
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, conns := range r.clients {
		n += len(conns)
	}
	return n
}

// CloseAll closes every connection. Read loops then unregister themselves.
func (r *Registry) CloseAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, conns := range r.clients {
		for _, c := range conns {
			c.Conn.Close()
		}
	}
}
