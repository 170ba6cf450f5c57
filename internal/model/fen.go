package model

import (
	"fmt"
	"strings"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenPieces = map[rune]PieceType{
	'p': Pawn,
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
	'k': King,
}

// LoadFEN resets the board to the position described by fen and returns the
// side to move. Castling rights become hasMoved flags on kings and corner
// rooks; the en passant square becomes the double-push pawn. On error the
// board is left untouched.
func (b *Board) LoadFEN(fen string) (Color, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return White, fmt.Errorf("%w: need at least 4 fields, got %d", ErrInvalidFEN, len(fields))
	}

	next := &Board{observers: b.observers}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return White, fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for i, row := range ranks {
		y := 7 - i
		x := 0
		for _, r := range row {
			if r >= '1' && r <= '8' {
				x += int(r - '0')
				continue
			}
			lower := r | 0x20
			t, ok := fenPieces[lower]
			if !ok {
				return White, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, r)
			}
			if x > 7 {
				return White, fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, y+1)
			}
			c := White
			if r == lower {
				c = Black
			}
			if t == King && next.kings[c] != nil {
				return White, fmt.Errorf("%w: two %s kings", ErrInvalidFEN, c)
			}
			p := next.Place(t, c, Position{X: x, Y: y})
			if t == Pawn && y != c.BackRank()+c.Forward() {
				p.HasMoved = true
			}
			x++
		}
		if x != 8 {
			return White, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, y+1, x)
		}
	}

	toMove, ok := ParseColor(fields[1])
	if !ok {
		return White, fmt.Errorf("%w: bad side to move %q", ErrInvalidFEN, fields[1])
	}

	if err := next.applyCastlingRights(fields[2]); err != nil {
		return White, err
	}

	if fields[3] != "-" {
		target, ok := ParseSquare(fields[3])
		if !ok {
			return White, fmt.Errorf("%w: bad en passant square %q", ErrInvalidFEN, fields[3])
		}
		pusher := toMove.Opponent()
		pawn := next.grid.At(target.Add(0, pusher.Forward()))
		if pawn == nil || pawn.Type != Pawn || pawn.Color != pusher {
			return White, fmt.Errorf("%w: no %s pawn behind %s", ErrInvalidFEN, pusher, target)
		}
		next.doublePushPawn = pawn
	}

	b.grid = next.grid
	b.pieces = next.pieces
	b.kings = next.kings
	b.doublePushPawn = next.doublePushPawn
	return toMove, nil
}

func (b *Board) applyCastlingRights(rights string) error {
	type corner struct {
		color Color
		file  int
	}
	allowed := map[corner]bool{}
	if rights != "-" {
		for _, r := range rights {
			switch r {
			case 'K':
				allowed[corner{White, 7}] = true
			case 'Q':
				allowed[corner{White, 0}] = true
			case 'k':
				allowed[corner{Black, 7}] = true
			case 'q':
				allowed[corner{Black, 0}] = true
			default:
				return fmt.Errorf("%w: bad castling field %q", ErrInvalidFEN, rights)
			}
		}
	}

	for _, c := range []Color{White, Black} {
		king := b.kings[c]
		if king == nil {
			continue
		}
		home := Position{X: 4, Y: c.BackRank()}
		kingUnmoved := false
		for _, file := range []int{0, 7} {
			rook := b.grid.At(Position{X: file, Y: c.BackRank()})
			if rook == nil || rook.Type != Rook || rook.Color != c {
				continue
			}
			if allowed[corner{c, file}] && king.Position == home {
				kingUnmoved = true
				continue
			}
			rook.HasMoved = true
		}
		king.HasMoved = !kingUnmoved
	}
	return nil
}
