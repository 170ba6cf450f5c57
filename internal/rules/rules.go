// Package rules decides which moves a piece may make on a board, whether a
// king is in check, and how a committed move changes the board.
package rules

import (
	"fmt"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

// Board is what the rules need from the piece model.
type Board interface {
	Grid() model.Grid
	PieceAt(pos model.Position) *model.Piece
	LivingPieces() []*model.Piece
	IsValidCoordinate(x, y int) bool
	King(c model.Color) *model.Piece
	DoublePushPawn() *model.Piece
	SetDoublePushPawn(p *model.Piece)
	SetPosition(p *model.Piece, to model.Position)
	MoveInSnapshot(from, to model.Position, grid *model.Grid)
	Capture(p *model.Piece)
	Reset()
}

// CastlingPolicy selects how strictly king safety is enforced while castling.
type CastlingPolicy int

const (
	// CastlingStrict forbids castling out of check and through an attacked
	// square.
	CastlingStrict CastlingPolicy = iota
	// CastlingLenient only checks the square the king lands on.
	CastlingLenient
)

func (c CastlingPolicy) String() string {
	if c == CastlingLenient {
		return "lenient"
	}
	return "strict"
}

func ParseCastlingPolicy(s string) (CastlingPolicy, error) {
	switch s {
	case "strict", "":
		return CastlingStrict, nil
	case "lenient":
		return CastlingLenient, nil
	}
	return CastlingStrict, fmt.Errorf("unknown castling policy %q", s)
}

type Options struct {
	Castling CastlingPolicy
	Anarchy  bool
}

// Engine holds the mode switches of the rules. It keeps no board state of
// its own; every call works on the Board it is handed.
type Engine struct {
	castling CastlingPolicy
	anarchy  bool
}

func NewEngine(opts Options) *Engine {
	return &Engine{
		castling: opts.Castling,
		anarchy:  opts.Anarchy,
	}
}

// SetAnarchyMode toggles the bypass in which no legality rule is enforced.
func (e *Engine) SetAnarchyMode(enabled bool) {
	e.anarchy = enabled
}

func (e *Engine) Anarchy() bool {
	return e.anarchy
}

func (e *Engine) Castling() CastlingPolicy {
	return e.castling
}

// IsKingInCheck reports whether color's king is attacked on the live board.
// A board without that king is never in check.
func (e *Engine) IsKingInCheck(board Board, color model.Color) bool {
	king := board.King(color)
	if king == nil {
		log.Warnw("check detection without a king", "color", color)
		return false
	}
	grid := board.Grid()
	return e.IsSquareUnderAttack(king.Position, &grid, board.DoublePushPawn(), color, board)
}

// ResetToStandardPosition puts every piece back on its starting square and
// forgets all transient state.
func (e *Engine) ResetToStandardPosition(board Board) {
	board.Reset()
}
