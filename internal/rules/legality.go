package rules

import (
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

// LegalMoves returns the pseudo-legal moves of p that do not leave its own
// king attacked. Each candidate is tried on a private copy of the grid; the
// live board is never touched. Without a king there is nothing to protect
// and every pseudo-legal move is returned.
func (e *Engine) LegalMoves(p *model.Piece, board Board) *model.MoveSet {
	if p == nil || !p.Alive || board.PieceAt(p.Position) != p {
		return model.NewMoveSet()
	}
	grid := board.Grid()
	moves := PseudoLegalMoves(p, &grid, board.DoublePushPawn(), board)

	king := board.King(p.Color)
	if king == nil {
		log.Warnw("no king to protect, legality filter skipped", "color", p.Color, "piece", p)
		return moves
	}

	for _, dest := range moves.Squares() {
		scratch := grid
		doublePush := e.simulate(p, dest, &scratch, board)

		target := king.Position
		if p == king {
			target = dest
		}
		if e.IsSquareUnderAttack(target, &scratch, doublePush, p.Color, board) {
			moves.Remove(dest)
			continue
		}
		if p == king && e.castling == CastlingStrict && classifyMove(p, dest, &grid) == castleMove &&
			!e.castlePathSafe(p, dest, &grid, board) {
			moves.Remove(dest)
		}
	}
	return moves
}

// simulate plays p to dest on scratch, including the en passant capture and
// the castling rook, and returns the double-push pawn that would follow.
func (e *Engine) simulate(p *model.Piece, dest model.Position, scratch *model.Grid, board Board) *model.Piece {
	from := p.Position
	var doublePush *model.Piece
	switch classifyMove(p, dest, scratch) {
	case enPassantMove:
		if victim := board.DoublePushPawn(); victim != nil && scratch.At(victim.Position) == victim {
			scratch.Set(victim.Position, nil)
		}
	case castleMove:
		rookFrom, rookTo := castleRookSquares(from, dest)
		board.MoveInSnapshot(rookFrom, rookTo, scratch)
	case doublePushMove:
		doublePush = p
	}
	board.MoveInSnapshot(from, dest, scratch)
	return doublePush
}

// castlePathSafe checks that the king is not attacked where it stands and
// would not be on the square it crosses. The landing square is left to the
// regular filter.
func (e *Engine) castlePathSafe(king *model.Piece, dest model.Position, grid *model.Grid, board Board) bool {
	step := sign(dest.X - king.Position.X)
	for sq := king.Position; sq != dest; sq = sq.Add(step, 0) {
		scratch := *grid
		board.MoveInSnapshot(king.Position, sq, &scratch)
		if e.IsSquareUnderAttack(sq, &scratch, board.DoublePushPawn(), king.Color, board) {
			return false
		}
	}
	return true
}
