package httpserver

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboard clients connect from any origin
	},
}

// WSMessage is the envelope for every broadcast frame
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub fans request lifecycle events out to connected dashboard clients.
// Writes to one connection are serialized through a per-connection mutex.
type Hub struct {
	mu          sync.RWMutex
	clients     map[*websocket.Conn]bool
	clientMutex map[*websocket.Conn]*sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:     make(map[*websocket.Conn]bool),
		clientMutex: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// HandleWebSocket upgrades the connection and keeps it registered until
// the client goes away. Incoming frames are answered with acknowledgments.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.clientMutex[conn] = &sync.Mutex{}
	total := len(h.clients)
	h.mu.Unlock()

	log.Printf("websocket client connected total=%d", total)

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		delete(h.clientMutex, conn)
		remaining := len(h.clients)
		h.mu.Unlock()

		conn.Close()
		log.Printf("websocket client disconnected remaining=%d", remaining)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}
		h.acknowledge(conn, string(raw))
	}
}

// acknowledge echoes a received frame back to its sender.
func (h *Hub) acknowledge(conn *websocket.Conn, received string) {
	ack := struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}{Type: "acknowledgment", Message: "Received: " + received}

	data, err := json.Marshal(ack)
	if err != nil {
		return
	}

	h.mu.RLock()
	mutex := h.clientMutex[conn]
	h.mu.RUnlock()

	if mutex != nil {
		mutex.Lock()
		conn.WriteMessage(websocket.TextMessage, data)
		mutex.Unlock()
	}
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	msg := WSMessage{Type: eventType, Payload: payload}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("websocket marshal failed type=%s err=%v", eventType, err)
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	mutexes := make([]*sync.Mutex, 0, len(h.clients))
	for conn := range h.clients {
		clients = append(clients, conn)
		mutexes = append(mutexes, h.clientMutex[conn])
	}
	h.mu.RUnlock()

	for i, conn := range clients {
		mutex := mutexes[i]
		mutex.Lock()
		err := conn.WriteMessage(websocket.TextMessage, data)
		mutex.Unlock()

		if err != nil {
			log.Printf("websocket send failed type=%s err=%v", eventType, err)
		}
	}
}

// ClientCount reports connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
