package ws

import (
	"encoding/json"

	"github.com/benbeisheim/chessrules/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeReset      MessageType = "reset"
	MessageTypeAnarchy    MessageType = "anarchy"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type MovePayload struct {
	From model.Position `json:"from"`
	To   model.Position `json:"to"`
}

type LegalMovesPayload struct {
	From  model.Position   `json:"from"`
	Moves []model.Position `json:"moves"`
}

type ResetPayload struct {
	FEN string `json:"fen,omitempty"`
}

type AnarchyPayload struct {
	Enabled bool `json:"enabled"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage wraps payload in a Message of type t.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
