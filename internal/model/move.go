package model

import "encoding/json"

// MaxMoves bounds a single piece's move set. No piece can reach more squares
// than the board has.
const MaxMoves = 64

// MoveSet is an ordered set of destination squares. Order carries no meaning.
type MoveSet struct {
	squares []Position
}

func NewMoveSet() *MoveSet {
	return &MoveSet{squares: make([]Position, 0, 8)}
}

// Add appends pos. Off-board squares, duplicates and anything past MaxMoves
// are dropped silently.
func (m *MoveSet) Add(pos Position) {
	if !pos.Valid() || len(m.squares) >= MaxMoves || m.Contains(pos) {
		return
	}
	m.squares = append(m.squares, pos)
}

// Remove drops pos, keeping the order of the remaining squares.
func (m *MoveSet) Remove(pos Position) {
	for i, sq := range m.squares {
		if sq == pos {
			m.squares = append(m.squares[:i], m.squares[i+1:]...)
			return
		}
	}
}

func (m *MoveSet) Contains(pos Position) bool {
	if m == nil {
		return false
	}
	for _, sq := range m.squares {
		if sq == pos {
			return true
		}
	}
	return false
}

func (m *MoveSet) Len() int {
	if m == nil {
		return 0
	}
	return len(m.squares)
}

// Squares returns a copy of the destinations.
func (m *MoveSet) Squares() []Position {
	if m == nil {
		return []Position{}
	}
	out := make([]Position, len(m.squares))
	copy(out, m.squares)
	return out
}

func (m *MoveSet) Clone() *MoveSet {
	return &MoveSet{squares: m.Squares()}
}

func (m *MoveSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Squares())
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Ply is one committed half-move.
type Ply struct {
	Piece          Piece           `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	EnPassant      bool            `json:"enPassant"`
	Anarchy        bool            `json:"anarchy"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}
