package websocket

import (
	"log"
	"sync"

	"farmniti/models"

	"github.com/gorilla/websocket"
)

// EventClient is one client connected for live platform updates
type EventClient struct {
	Conn    *websocket.Conn
	UserID  string
	writeMu sync.Mutex
}

// SafeWriteJSON serializes writes to the client's connection
func (ec *EventClient) SafeWriteJSON(v interface{}) error {
	ec.writeMu.Lock()
	defer ec.writeMu.Unlock()
	return ec.Conn.WriteJSON(v)
}

var (
	eventClients = make(map[*EventClient]bool)
	eventMutex   sync.RWMutex
)

// RegisterEventClient adds a client to the broadcast set
func RegisterEventClient(client *EventClient) {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	eventClients[client] = true
	log.Printf("Event client registered. Total clients: %d", len(eventClients))
}

// UnregisterEventClient removes a client and closes its connection
func UnregisterEventClient(client *EventClient) {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	delete(eventClients, client)
	client.Conn.Close()
	log.Printf("Event client unregistered. Total clients: %d", len(eventClients))
}

// BroadcastPlatformEvent pushes a gamification event to all connected clients
func BroadcastPlatformEvent(event models.PlatformEvent) {
	eventMutex.RLock()
	defer eventMutex.RUnlock()

	for client := range eventClients {
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Error broadcasting event to client: %v", err)
			go UnregisterEventClient(client)
		}
	}
}

// EventClientsCount returns the number of connected clients
func EventClientsCount() int {
	eventMutex.RLock()
	defer eventMutex.RUnlock()
	return len(eventClients)
}
