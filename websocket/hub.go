package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// ProgressEvent is pushed to a user's open connection when their progression
// changes.
type ProgressEvent struct {
	Type    string `json:"type"` // quest_completed | level_up | rank_up
	QuestID string `json:"quest_id,omitempty"`
	Points  int    `json:"points"`
	Level   int    `json:"level"`
	Rank    string `json:"rank"`
}

type userEvent struct {
	UserID uuid.UUID
	Event  ProgressEvent
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var events = make(chan userEvent, 64)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Progress client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Progress client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case event := <-events:
			clientsMu.RLock()
			conn, ok := clients[event.UserID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(event.Event); err != nil {
				log.Printf("Error pushing progress event to %s: %v", event.UserID, err)
				conn.Close()
				clientsMu.Lock()
				if current, ok := clients[event.UserID]; ok && current == conn {
					delete(clients, event.UserID)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// NotifyProgress queues an event for the user's connection. Never blocks;
// events are dropped if the hub is falling behind.
func NotifyProgress(userID uuid.UUID, event ProgressEvent) {
	select {
	case events <- userEvent{UserID: userID, Event: event}:
	default:
		log.Printf("Progress event dropped for %s (hub busy)", userID)
	}
}
