package rules

import "github.com/benbeisheim/chessrules/internal/model"

var (
	rookDirections   = []model.Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirections = []model.Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	queenDirections  = append(append([]model.Position{}, rookDirections...), bishopDirections...)
	kingOffsets      = queenDirections
	knightOffsets    = []model.Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}

	castlingRookFiles = []int{0, 7}
)

// PseudoLegalMoves lists the squares p can reach on grid by its movement
// rules alone. King safety is ignored.
func PseudoLegalMoves(p *model.Piece, grid *model.Grid, doublePush *model.Piece, board Board) *model.MoveSet {
	moves := model.NewMoveSet()
	if p == nil || grid == nil {
		return moves
	}
	switch p.Type {
	case model.Pawn:
		pawnMoves(p, grid, doublePush, board, moves)
	case model.Knight:
		stepMoves(p, grid, knightOffsets, board, moves)
	case model.Bishop:
		slideMoves(p, grid, bishopDirections, board, moves)
	case model.Rook:
		slideMoves(p, grid, rookDirections, board, moves)
	case model.Queen:
		slideMoves(p, grid, queenDirections, board, moves)
	case model.King:
		stepMoves(p, grid, kingOffsets, board, moves)
		castleMoves(p, grid, moves)
	}
	return moves
}

func pawnMoves(p *model.Piece, grid *model.Grid, doublePush *model.Piece, board Board, moves *model.MoveSet) {
	forward := p.Color.Forward()
	one := p.Position.Add(0, forward)
	if board.IsValidCoordinate(one.X, one.Y) && grid.At(one) == nil {
		moves.Add(one)
		two := p.Position.Add(0, 2*forward)
		startRank := p.Color.BackRank() + forward
		if !p.HasMoved && p.Position.Y == startRank && board.IsValidCoordinate(two.X, two.Y) && grid.At(two) == nil {
			moves.Add(two)
		}
	}

	for _, dx := range []int{-1, 1} {
		diagonal := p.Position.Add(dx, forward)
		if !board.IsValidCoordinate(diagonal.X, diagonal.Y) {
			continue
		}
		if target := grid.At(diagonal); target != nil {
			if target.Color != p.Color {
				moves.Add(diagonal)
			}
			continue
		}
		// en passant
		beside := p.Position.Add(dx, 0)
		if doublePush != nil && doublePush.Color != p.Color && grid.At(beside) == doublePush {
			moves.Add(diagonal)
		}
	}
}

func stepMoves(p *model.Piece, grid *model.Grid, offsets []model.Position, board Board, moves *model.MoveSet) {
	for _, off := range offsets {
		target := p.Position.Add(off.X, off.Y)
		if !board.IsValidCoordinate(target.X, target.Y) {
			continue
		}
		if occupant := grid.At(target); occupant == nil || occupant.Color != p.Color {
			moves.Add(target)
		}
	}
}

func slideMoves(p *model.Piece, grid *model.Grid, directions []model.Position, board Board, moves *model.MoveSet) {
	for _, dir := range directions {
		target := p.Position.Add(dir.X, dir.Y)
		for board.IsValidCoordinate(target.X, target.Y) {
			occupant := grid.At(target)
			if occupant == nil {
				moves.Add(target)
			} else {
				if occupant.Color != p.Color {
					moves.Add(target)
				}
				break
			}
			target = target.Add(dir.X, dir.Y)
		}
	}
}

// castleMoves adds the king's two-file destination toward each unmoved
// friendly corner rook with nothing in between. Attacks are not considered
// here.
func castleMoves(king *model.Piece, grid *model.Grid, moves *model.MoveSet) {
	if king.HasMoved {
		return
	}
	for _, file := range castlingRookFiles {
		rook := grid.At(model.Position{X: file, Y: king.Position.Y})
		if rook == nil || rook.Type != model.Rook || rook.Color != king.Color || rook.HasMoved {
			continue
		}
		step := sign(file - king.Position.X)
		dest := king.Position.Add(2*step, 0)
		// The landing square must lie strictly between king and rook.
		if step == 0 || (file-dest.X)*step <= 0 {
			continue
		}
		clear := true
		for x := king.Position.X + step; x != file; x += step {
			if grid.At(model.Position{X: x, Y: king.Position.Y}) != nil {
				clear = false
				break
			}
		}
		if clear {
			moves.Add(dest)
		}
	}
}

type moveKind int

const (
	quietMove moveKind = iota
	enPassantMove
	castleMove
	doublePushMove
)

// classifyMove works out what kind of move p going to dest is from the
// piece type and geometry alone. grid must be the board before the move.
func classifyMove(p *model.Piece, dest model.Position, grid *model.Grid) moveKind {
	dx := dest.X - p.Position.X
	dy := dest.Y - p.Position.Y
	switch p.Type {
	case model.Pawn:
		if dx != 0 && grid.At(dest) == nil {
			return enPassantMove
		}
		if abs(dy) == 2 {
			return doublePushMove
		}
	case model.King:
		if abs(dx) == 2 && dy == 0 {
			return castleMove
		}
	}
	return quietMove
}

// castleRookSquares returns where the rook starts and ends when a king on
// from castles to to.
func castleRookSquares(from, to model.Position) (model.Position, model.Position) {
	step := sign(to.X - from.X)
	rookFile := 0
	if step > 0 {
		rookFile = 7
	}
	return model.Position{X: rookFile, Y: from.Y}, model.Position{X: to.X - step, Y: from.Y}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
