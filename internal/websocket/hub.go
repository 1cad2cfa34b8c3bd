package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 64 * 1024

	sendBufferSize = 256
)

// ErrBufferFull is returned by Broadcast when the hub cannot keep up.
var ErrBufferFull = errors.New("websocket: broadcast buffer full")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// HandlerFunc handles one message type sent by clients.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) error

// incomingMessage wraps a message from a client.
type incomingMessage struct {
	client  *Client
	message []byte
}

// Hub manages WebSocket connections and broadcasts.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	incoming   chan incomingMessage
	done       chan struct{}
	mu         sync.RWMutex
	logger     zerolog.Logger

	handlersMu sync.RWMutex
	handlers   map[string]HandlerFunc
}

// Client represents a WebSocket connection.
type Client struct {
	id    string
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	inbox chan queuedMessage
}

// queuedMessage is a decoded client message waiting for its handler.
type queuedMessage struct {
	msgType string
	payload json.RawMessage
	fn      HandlerFunc
}

// Message represents a WebSocket message sent to clients.
type Message struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

// inboundMessage is a message received from a client.
type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorPayload is sent back to a client whose message failed.
type ErrorPayload struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// NewHub creates a new WebSocket hub.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, sendBufferSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan incomingMessage, sendBufferSize),
		done:       make(chan struct{}),
		logger:     logger.With().Str("component", "websocket").Logger(),
		handlers:   make(map[string]HandlerFunc),
	}
}

// Handle registers fn for client messages of msgType.
func (h *Hub) Handle(msgType string, fn HandlerFunc) {
	h.handlersMu.Lock()
	defer h.handlersMu.Unlock()
	h.handlers[msgType] = fn
}

// Run starts the hub's main loop and returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				h.removeLocked(client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			go client.handlePump(ctx)
			h.logger.Debug().Str("client", client.id).Msg("Client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				h.removeLocked(client)
			}
			h.mu.Unlock()
			h.logger.Debug().Str("client", client.id).Msg("Client disconnected")

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.logger.Warn().Str("client", client.id).Msg("Dropping slow client")
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()

		case incoming := <-h.incoming:
			h.dispatch(incoming)
		}
	}
}

// removeLocked forgets client and closes its queues. Callers hold h.mu.
func (h *Hub) removeLocked(client *Client) {
	delete(h.clients, client)
	close(client.send)
	close(client.inbox)
}

// dispatch queues an incoming message on its client's inbox. Each client's
// messages are handled one at a time, in the order they were received, off
// the hub loop.
func (h *Hub) dispatch(incoming incomingMessage) {
	var msg inboundMessage
	if err := json.Unmarshal(incoming.message, &msg); err != nil {
		h.logger.Debug().Err(err).Str("client", incoming.client.id).Msg("Ignoring malformed message")
		return
	}

	h.handlersMu.RLock()
	fn, ok := h.handlers[msg.Type]
	h.handlersMu.RUnlock()
	if !ok {
		h.logger.Debug().Str("type", msg.Type).Msg("No handler for message type")
		return
	}

	// Removed clients have a closed inbox.
	h.mu.RLock()
	registered := h.clients[incoming.client]
	h.mu.RUnlock()
	if !registered {
		return
	}

	select {
	case incoming.client.inbox <- queuedMessage{msgType: msg.Type, payload: msg.Payload, fn: fn}:
	default:
		h.logger.Warn().Str("type", msg.Type).Str("client", incoming.client.id).Msg("Client inbox full, rejecting message")
		h.reply(incoming.client, msg.Type+":error", ErrorPayload{Type: msg.Type, Error: ErrBufferFull.Error()})
	}
}

// reply sends a message to a single client, dropping it if the client is gone
// or its buffer is full.
func (h *Hub) reply(client *Client, msgType string, payload any) {
	data, err := encode(msgType, payload)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.clients[client] {
		return
	}
	select {
	case client.send <- data:
	default:
	}
}

// Broadcast queues a message for all connected clients. It never blocks; when
// the queue is full the message is dropped and ErrBufferFull is returned.
func (h *Hub) Broadcast(msgType string, payload any) error {
	data, err := encode(msgType, payload)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

func encode(msgType string, payload any) ([]byte, error) {
	return json.Marshal(Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket handles WebSocket connection upgrade.
func (h *Hub) HandleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		id:    uuid.NewString(),
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, sendBufferSize),
		inbox: make(chan queuedMessage, sendBufferSize),
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return nil
	}

	go client.writePump()
	go client.readPump()

	return nil
}

// readPump pumps messages from the websocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug().Err(err).Str("client", c.id).Msg("Unexpected close")
			}
			break
		}

		select {
		case c.hub.incoming <- incomingMessage{client: c, message: message}:
		case <-c.hub.done:
			return
		}
	}
}

// handlePump runs the client's message handlers serially until its inbox is
// closed.
func (c *Client) handlePump(ctx context.Context) {
	for m := range c.inbox {
		if err := m.fn(ctx, m.payload); err != nil {
			c.hub.logger.Warn().Err(err).Str("type", m.msgType).Str("client", c.id).Msg("Message handler failed")
			c.hub.reply(c, m.msgType+":error", ErrorPayload{Type: m.msgType, Error: err.Error()})
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

			// Send any queued messages as separate frames
			n := len(c.send)
			for i := 0; i < n; i++ {
				if err := c.conn.WriteMessage(websocket.TextMessage, <-c.send); err != nil {
					return
				}
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
