package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gridroute/gridroute/nav/animation"
	"github.com/gridroute/gridroute/nav/pathfind"
	"github.com/gridroute/gridroute/nav/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Pace of route playback frames.
	playbackFrameDuration = 150 * time.Millisecond
	playbackTick          = 25 * time.Millisecond
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Message represents a WebSocket message
type Message struct {
	Map   string               `json:"map"`
	Event string               `json:"event"`
	Route *service.RouteResult `json:"route,omitempty"`
	Frame *RouteFrame          `json:"frame,omitempty"`
	Data  interface{}          `json:"data,omitempty"`
}

// RouteFrame is one step of a route playback
type RouteFrame struct {
	Index    int            `json:"index"`
	Total    int            `json:"total"`
	Position pathfind.Point `json:"position"`
}

// Client represents a WebSocket client
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	mapName string
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients by map name
	topics map[string]map[*Client]bool

	// Inbound messages to broadcast
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		topics:     make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// ServeWS handles WebSocket requests from clients
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, mapName string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, 256),
		mapName: mapName,
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// EventForStatus maps a search status to its broadcast event name
func EventForStatus(status pathfind.Status) string {
	switch status {
	case pathfind.StatusFound:
		return "route_found"
	case pathfind.StatusDestinationBlocked:
		return "route_destination_blocked"
	case pathfind.StatusLimitExceeded:
		return "route_limit_exceeded"
	default:
		return "route_unreachable"
	}
}

// BroadcastRoute sends a route outcome to all clients subscribed to its map
func (h *Hub) BroadcastRoute(route *service.RouteResult) {
	h.broadcast <- &Message{
		Map:   route.MapName,
		Event: EventForStatus(route.Status),
		Route: route,
	}
}

// BroadcastEvent sends a custom event to all clients subscribed to a map
func (h *Hub) BroadcastEvent(mapName string, event string, data interface{}) {
	h.broadcast <- &Message{
		Map:   mapName,
		Event: event,
		Data:  data,
	}
}

// PlayRoute streams a found route step by step as route_frame events, paced
// by a frame animation. It returns immediately; frames are delivered from a
// background goroutine. Routes without a path produce no frames.
func (h *Hub) PlayRoute(route *service.RouteResult) {
	if route == nil || len(route.Path) == 0 {
		return
	}

	anim, err := animation.New(len(route.Path), playbackFrameDuration, false)
	if err != nil {
		log.Printf("Route playback setup failed: %v", err)
		return
	}

	path := make([]pathfind.Point, len(route.Path))
	copy(path, route.Path)
	mapName := route.MapName

	go func() {
		ticker := time.NewTicker(playbackTick)
		defer ticker.Stop()

		emit := func() {
			h.broadcast <- &Message{
				Map:   mapName,
				Event: "route_frame",
				Frame: &RouteFrame{
					Index:    anim.Frame(),
					Total:    len(path),
					Position: path[anim.Frame()],
				},
			}
		}

		emit()
		last := time.Now()
		for range ticker.C {
			now := time.Now()
			changed := anim.Advance(now.Sub(last))
			last = now
			if changed {
				emit()
			}
			if anim.Done() {
				return
			}
		}
	}()
}

// registerClient adds a client to a map topic
func (h *Hub) registerClient(client *Client) {
	if h.topics[client.mapName] == nil {
		h.topics[client.mapName] = make(map[*Client]bool)
	}
	h.topics[client.mapName][client] = true

	log.Printf("Client subscribed to map %s (total clients: %d)",
		client.mapName, len(h.topics[client.mapName]))
}

// unregisterClient removes a client from its map topic
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.topics[client.mapName]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			// Clean up empty topics
			if len(clients) == 0 {
				delete(h.topics, client.mapName)
			}

			log.Printf("Client unsubscribed from map %s (remaining clients: %d)",
				client.mapName, len(clients))
		}
	}
}

// broadcastMessage sends a message to all clients subscribed to its map
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	if clients, ok := h.topics[message.Map]; ok {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				// Client's send channel is full, close it
				h.unregisterClient(client)
			}
		}
	}
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// We don't process incoming messages from clients currently
		// Just keep the connection alive
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
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
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
