package controller

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// lockedConn serializes writes; the game broadcasts from its own goroutines.
type lockedConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (l *lockedConn) WriteJSON(v interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Conn.WriteJSON(v)
}

func (l *lockedConn) WriteMessage(messageType int, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Conn.WriteMessage(messageType, data)
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(conn *websocket.Conn) {
	c := &lockedConn{Conn: conn}
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnw("failed to register connection", "game", gameID, "player", playerID, "error", err)
		wsc.sendError(c, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("connection closed", "game", gameID, "player", playerID, "error", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(c, fmt.Errorf("malformed message: %w", err))
			continue
		}

		if err := wsc.handleMessage(c, gameID, playerID, msg); err != nil {
			log.Debugw("message rejected", "game", gameID, "player", playerID, "type", msg.Type, "error", err)
			wsc.sendError(c, err)
		}
	}
}

// handleMessage dispatches one inbound message. Game state changes reach the
// client through the game's broadcast; only legalMoves is answered directly.
func (wsc *WebSocketController) handleMessage(c *lockedConn, gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, model.SimpleMove{From: move.From, To: move.To})
		return err

	case ws.MessageTypeLegalMoves:
		var req ws.LegalMovesPayload
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		moves, err := wsc.gameService.LegalMoves(gameID, req.From)
		if err != nil {
			return err
		}
		if moves == nil {
			moves = []model.Position{}
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, ws.LegalMovesPayload{From: req.From, Moves: moves})
		if err != nil {
			return err
		}
		return c.WriteJSON(reply)

	case ws.MessageTypeReset:
		var req ws.ResetPayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				return err
			}
		}
		return wsc.gameService.ResetGame(gameID, playerID, req.FEN)

	case ws.MessageTypeAnarchy:
		var req ws.AnarchyPayload
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		return wsc.gameService.SetAnarchy(gameID, playerID, req.Enabled)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *lockedConn, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		log.Errorw("failed to encode error", "error", merr)
		return
	}
	if werr := c.WriteJSON(msg); werr != nil {
		log.Debugw("failed to send error", "error", werr)
	}
}
