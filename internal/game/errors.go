package game

import "errors"

var (
	ErrGameFull    = errors.New("game is full")
	ErrNotInGame   = errors.New("player not in game")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNoPiece     = errors.New("no piece on square")
	ErrIllegalMove = errors.New("illegal move")
	ErrOutOfBounds = errors.New("square out of bounds")
)
