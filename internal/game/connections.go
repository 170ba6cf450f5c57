package game

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Sender is the part of a websocket connection the game writes to.
type Sender interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type Connections struct {
	connections map[string]Sender // playerID -> connection
	mu          sync.RWMutex
}

func NewConnections() *Connections {
	return &Connections{
		connections: make(map[string]Sender),
	}
}

// RegisterConnection attaches conn for playerID and sends it the current
// state. Spectators without a seat may watch too. A second connection for the
// same player is closed.
func (g *Game) RegisterConnection(playerID string, conn Sender) error {
	connID := fmt.Sprintf("%p", conn)

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		log.Debugw("duplicate connection rejected", "game", g.ID, "player", playerID, "conn", connID)
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infow("connection registered", "game", g.ID, "player", playerID, "conn", connID)

	go g.broadcast(g.State())
	return nil
}

// UnregisterConnection drops playerID's connection if it is still conn.
func (g *Game) UnregisterConnection(playerID string, conn Sender) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Infow("connection unregistered", "game", g.ID, "player", playerID)
	}
}

func (g *Game) broadcast(state State) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorw("failed to marshal state", "game", g.ID, "error", err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)}

	g.connections.mu.RLock()
	active := make(map[string]Sender, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	var failed []string
	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnw("failed to send state", "game", g.ID, "player", playerID, "error", err)
			failed = append(failed, playerID)
		}
	}
	if len(failed) == 0 {
		return
	}
	g.connections.mu.Lock()
	for _, playerID := range failed {
		if g.connections.connections[playerID] == active[playerID] {
			delete(g.connections.connections, playerID)
		}
	}
	g.connections.mu.Unlock()
}
