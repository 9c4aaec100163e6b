package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans session events out to the WebSocket connections watching each
// session. A session can have several viewers, so connections are tracked
// as a set per session ID.
type Hub struct {
	conns map[string]map[*Connection]bool // sessionID -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *sessionMessage

	logger zerolog.Logger
}

// Connection represents one WebSocket viewer of a session
type Connection struct {
	SessionID string
	Username  string
	Send      chan []byte
}

type sessionMessage struct {
	SessionID string
	Message   *Message
}

// NewHub creates a new WebSocket hub
func NewHub(logger zerolog.Logger) *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *sessionMessage, 256),
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.SessionID] == nil {
				h.conns[conn.SessionID] = make(map[*Connection]bool)
			}
			h.conns[conn.SessionID][conn] = true
			h.mu.Unlock()
			h.logger.Debug().
				Str("sessionId", conn.SessionID).
				Str("username", conn.Username).
				Msg("websocket connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.conns[conn.SessionID]; ok && set[conn] {
				delete(set, conn)
				close(conn.Send)
				if len(set) == 0 {
					delete(h.conns, conn.SessionID)
				}
			}
			h.mu.Unlock()
			h.logger.Debug().
				Str("sessionId", conn.SessionID).
				Str("username", conn.Username).
				Msg("websocket disconnected")

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.SessionID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// SessionEvent pushes a session event to every viewer of the session
// (implements game.Notifier).
func (h *Hub) SessionEvent(sessionID string, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Warn().Err(err).Str("event", event).Msg("failed to marshal session event")
		return
	}
	h.broadcast <- &sessionMessage{
		SessionID: sessionID,
		Message: &Message{
			Type:    event,
			Payload: data,
		},
	}
}
