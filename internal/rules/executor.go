package rules

import (
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

type Result int

const (
	Rejected Result = iota
	Moved
	Captured
)

func (r Result) String() string {
	switch r {
	case Moved:
		return "moved"
	case Captured:
		return "captured"
	}
	return "rejected"
}

// Outcome describes what AttemptMove did to the board.
type Outcome struct {
	Result         Result
	From           model.Position
	To             model.Position
	CapturedPiece  *model.Piece
	CastleRookMove *model.CastleRookMove
	EnPassant      bool
}

// AttemptMove moves p to dest if the rules allow it. legal may carry moves
// already computed for p on this board; when nil they are computed here.
// A rejected move changes nothing but reasserts p's position so observers
// redraw it. In anarchy mode every on-board destination is accepted.
func (e *Engine) AttemptMove(p *model.Piece, dest model.Position, board Board, legal *model.MoveSet) Outcome {
	if p == nil || !p.Alive {
		return Outcome{Result: Rejected, To: dest}
	}
	from := p.Position
	if !board.IsValidCoordinate(dest.X, dest.Y) {
		board.SetPosition(p, from)
		return Outcome{Result: Rejected, From: from, To: dest}
	}
	if e.anarchy {
		return e.anarchyMove(p, dest, board)
	}

	if legal == nil {
		legal = e.LegalMoves(p, board)
	}
	if !legal.Contains(dest) {
		log.Debugw("move rejected", "piece", p, "to", dest)
		board.SetPosition(p, from)
		return Outcome{Result: Rejected, From: from, To: dest}
	}

	// Validated; from here on every effect is applied without further checks.
	grid := board.Grid()
	kind := classifyMove(p, dest, &grid)
	out := Outcome{Result: Moved, From: from, To: dest}

	if occupant := board.PieceAt(dest); occupant != nil && occupant != p {
		board.Capture(occupant)
		out.Result = Captured
		out.CapturedPiece = occupant
	}

	switch kind {
	case enPassantMove:
		if victim := board.DoublePushPawn(); victim != nil {
			board.Capture(victim)
			out.Result = Captured
			out.CapturedPiece = victim
			out.EnPassant = true
		}
	case castleMove:
		rookFrom, rookTo := castleRookSquares(from, dest)
		if rook := board.PieceAt(rookFrom); rook != nil {
			rook.HasMoved = true
			board.SetPosition(rook, rookTo)
			out.CastleRookMove = &model.CastleRookMove{From: rookFrom, To: rookTo}
		}
	}

	if kind == doublePushMove {
		board.SetDoublePushPawn(p)
	} else {
		board.SetDoublePushPawn(nil)
	}

	p.HasMoved = true
	board.SetPosition(p, dest)
	return out
}

func (e *Engine) anarchyMove(p *model.Piece, dest model.Position, board Board) Outcome {
	out := Outcome{Result: Moved, From: p.Position, To: dest}
	if occupant := board.PieceAt(dest); occupant != nil && occupant != p {
		board.Capture(occupant)
		out.Result = Captured
		out.CapturedPiece = occupant
	}
	board.SetDoublePushPawn(nil)
	p.HasMoved = true
	board.SetPosition(p, dest)
	return out
}
