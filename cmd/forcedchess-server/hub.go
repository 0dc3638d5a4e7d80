package main

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const wsIdlePingInterval = 30 * time.Second

// Hub fans search progress out to websocket clients. Slow clients drop
// messages rather than stall the search.
type Hub struct {
	mu                 sync.Mutex
	clients            map[*Client]struct{}
	broadcastIteration chan iterationPayload
	broadcastResult    chan searchResponse
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type iterationPayload struct {
	Depth     int     `json:"depth"`
	Score     int     `json:"score"`
	BestMove  string  `json:"best_move"`
	Nodes     int64   `json:"nodes"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

func NewHub() *Hub {
	return &Hub{
		clients:            make(map[*Client]struct{}),
		broadcastIteration: make(chan iterationPayload, 32),
		broadcastResult:    make(chan searchResponse, 8),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcastIteration:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "iteration", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		case payload := <-h.broadcastResult:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "result", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) PublishIteration(payload iterationPayload) {
	select {
	case h.broadcastIteration <- payload:
	default:
	}
}

func (h *Hub) PublishResult(payload searchResponse) {
	select {
	case h.broadcastResult <- payload:
	default:
	}
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
