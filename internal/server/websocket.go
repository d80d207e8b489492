// Package server is the websocket gateway: it maps JSON frames from
// connected clients to game intents and broadcasts fresh state snapshots
// to every client in a room after each accepted intent. It holds no game
// logic of its own.
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/coalitionfree/coalition-server-go/internal/game"
	"github.com/coalitionfree/coalition-server-go/internal/room"
	"github.com/coalitionfree/coalition-server-go/internal/session"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// The gateway sits behind the deployment's own origin controls.
		return true
	},
}

// Client is one websocket connection.
type Client struct {
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
	roomID    string
}

// Hub tracks connected clients and routes broadcasts by room.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	logger     *zap.Logger

	sessionMgr *session.Manager
	roomMgr    *room.Manager
	gameMgr    *game.Manager
}

// NewHub creates a hub over the given managers. The hub registers itself
// as the game manager's notification handler so every accepted intent
// broadcasts a fresh snapshot.
func NewHub(sessionMgr *session.Manager, roomMgr *room.Manager, gameMgr *game.Manager, logger *zap.Logger) *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
		sessionMgr: sessionMgr,
		roomMgr:    roomMgr,
		gameMgr:    gameMgr,
	}
	gameMgr.SetNotificationHandler(h.onNotification)
	return h
}

// Run processes client registration until the registration channels close.
// Intended as a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		}
	}
}

// onNotification fans a snapshot out to every client in the room.
func (h *Hub) onNotification(n game.Notification) {
	payload, err := json.Marshal(ServerMessage{
		Type:   MsgState,
		RoomID: n.RoomID,
		State:  &n.View,
	})
	if err != nil {
		h.logger.Warn("failed to encode state broadcast", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client.roomID != n.RoomID {
			continue
		}
		select {
		case client.send <- payload:
		default:
			// Slow consumer; the connection's write pump will catch up or
			// the read pump will tear the client down.
		}
	}
}

// ServeWS upgrades an HTTP request to a websocket client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 64),
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(ServerMessage{Type: MsgError, Error: "malformed message"})
			continue
		}
		h.handleMessage(c, msg)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

func (c *Client) reply(msg ServerMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}
