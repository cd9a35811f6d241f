package server

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/coder/websocket"
)

// Conn is the narrow capability a room needs from a client connection.
// GameRoom and GameManager depend only on this, never on the websocket
// library, so tests can substitute an in-memory fake.
type Conn interface {
	ID() string
	Send(event string, payload interface{}) error
	Close(reason string)
}

// wsConn adapts a coder/websocket connection to Conn. Writes are serialized
// because broadcasts, directed sends, and regen ticks can race on one socket.
type wsConn struct {
	id     string
	socket *websocket.Conn
	mu     sync.Mutex
}

func newWSConn(id string, socket *websocket.Conn) *wsConn {
	return &wsConn{id: id, socket: socket}
}

func (c *wsConn) ID() string {
	return c.id
}

func (c *wsConn) Send(event string, payload interface{}) error {
	data, err := json.Marshal(ServerMessage{Type: event, Payload: payload})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.socket.Write(context.Background(), websocket.MessageText, data)
}

func (c *wsConn) Close(reason string) {
	c.socket.Close(websocket.StatusNormalClosure, reason)
}

// ConnectionManager tracks every open connection by id.
type ConnectionManager struct {
	connections map[string]Conn
	mu          sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]Conn),
	}
}

func (cm *ConnectionManager) AddConnection(conn Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.connections[conn.ID()] = conn
}

func (cm *ConnectionManager) RemoveConnection(id string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.connections, id)
}

func (cm *ConnectionManager) GetConnection(id string) Conn {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.connections[id]
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
