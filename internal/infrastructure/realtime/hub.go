package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Envelope is the wire frame for every pushed event.
type Envelope struct {
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub fans events out to websocket clients by topic. Each client picks
// its topics with subscribe/unsubscribe frames; the hub additionally
// auto-subscribes every connection to its own unread topic.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	topics  map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan Envelope
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		topics:     make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Envelope, 256),
	}
}

// Run processes register/unregister/broadcast events until the channel
// loop is abandoned. Call it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.subscribeLocked(client, "user:"+strconv.Itoa(client.userID)+":unread")
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				for topic := range client.topics {
					h.unsubscribeLocked(client, topic)
				}
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case env := <-h.broadcast:
			data, err := json.Marshal(env)
			if err != nil {
				log.Printf("failed to marshal realtime event: %v", err)
				continue
			}
			h.mu.RLock()
			for client := range h.topics[env.Topic] {
				select {
				case client.send <- data:
				default:
					// Slow consumer, drop the frame rather than block the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish implements chat.EventPublisher. It never blocks the caller;
// if the hub's buffer is full the event is dropped and logged.
func (h *Hub) Publish(topic string, payload interface{}) {
	select {
	case h.broadcast <- Envelope{Topic: topic, Payload: payload}:
	default:
		log.Printf("realtime buffer full, dropping event for topic %s", topic)
	}
}

// ServeWS upgrades the request and attaches the client to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID int) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 64),
		topics: make(map[string]bool),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (h *Hub) subscribeLocked(client *Client, topic string) {
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]bool)
	}
	h.topics[topic][client] = true
	client.topics[topic] = true
}

func (h *Hub) unsubscribeLocked(client *Client, topic string) {
	if subs, ok := h.topics[topic]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
	delete(client.topics, topic)
}

func (h *Hub) subscribe(client *Client, topic string) {
	h.mu.Lock()
	h.subscribeLocked(client, topic)
	h.mu.Unlock()
}

func (h *Hub) unsubscribe(client *Client, topic string) {
	h.mu.Lock()
	h.unsubscribeLocked(client, topic)
	h.mu.Unlock()
}
