package game

import (
	"github.com/benbeisheim/chessrules/internal/model"
)

type ClientPlayer struct {
	ID    string      `json:"id"`
	Color model.Color `json:"color"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// seat returns the color playerID sits at.
func (p Players) seat(playerID string) (model.Color, bool) {
	if playerID == "" {
		return model.White, false
	}
	if p.White.ID == playerID {
		return model.White, true
	}
	if p.Black.ID == playerID {
		return model.Black, true
	}
	return model.White, false
}

type CapturedPieces struct {
	White []model.Piece `json:"white"`
	Black []model.Piece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]model.Piece, 0),
		Black: make([]model.Piece, 0),
	}
}

func (c *CapturedPieces) add(by model.Color, p model.Piece) {
	if by == model.White {
		c.White = append(c.White, p)
	} else {
		c.Black = append(c.Black, p)
	}
}

func (c CapturedPieces) clone() CapturedPieces {
	return CapturedPieces{
		White: append(make([]model.Piece, 0, len(c.White)), c.White...),
		Black: append(make([]model.Piece, 0, len(c.Black)), c.Black...),
	}
}
