package rules

import (
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

// IsSquareUnderAttack reports whether any living piece not of defending
// color can reach target on grid. Only pieces that grid still holds at their
// recorded square count, so pieces captured in a hypothetical grid are
// skipped. A nil grid is reported and treated as no attack.
func (e *Engine) IsSquareUnderAttack(target model.Position, grid *model.Grid, doublePush *model.Piece, defending model.Color, board Board) bool {
	if grid == nil {
		log.Warnw("attack detection without a grid", "square", target, "defending", defending)
		return false
	}
	for _, attacker := range board.LivingPieces() {
		if attacker.Color == defending || grid.At(attacker.Position) != attacker {
			continue
		}
		if !couldReach(attacker, target) {
			continue
		}
		if PseudoLegalMoves(attacker, grid, doublePush, board).Contains(target) {
			return true
		}
	}
	return false
}

// couldReach is a geometric filter run before full move generation. It only
// rules out squares the piece can never move to from where it stands.
func couldReach(p *model.Piece, target model.Position) bool {
	dx := abs(target.X - p.Position.X)
	dy := abs(target.Y - p.Position.Y)
	if dx == 0 && dy == 0 {
		return false
	}
	switch p.Type {
	case model.Rook:
		return dx == 0 || dy == 0
	case model.Bishop:
		return dx == dy
	case model.Queen:
		return dx == 0 || dy == 0 || dx == dy
	case model.King:
		return dx <= 1 && dy <= 1
	case model.Knight:
		return (dx == 1 && dy == 2) || (dx == 2 && dy == 1)
	case model.Pawn:
		return dx == 1 && target.Y-p.Position.Y == p.Color.Forward()
	}
	return false
}
