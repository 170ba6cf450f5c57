package model

import "fmt"

type PieceType int

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return fmt.Sprintf("PieceType(%d)", int(p))
}

func (p PieceType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PieceType) UnmarshalText(text []byte) error {
	for t := Pawn; t <= King; t++ {
		if t.String() == string(text) {
			*p = t
			return nil
		}
	}
	return fmt.Errorf("unknown piece type %q", text)
}

type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("unknown color %q", text)
	}
	*c = parsed
	return nil
}

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Forward is the rank direction pawns of this color advance in.
func (c Color) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// BackRank is the rank the color's pieces start on.
func (c Color) BackRank() int {
	if c == White {
		return 0
	}
	return 7
}

func ParseColor(s string) (Color, bool) {
	switch s {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	}
	return White, false
}

// Position is a (file, rank) pair. Rank 0 is white's back rank.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Valid() bool {
	return IsValidCoordinate(p.X, p.Y)
}

func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return fmt.Sprintf("%c%d", 'a'+p.X, p.Y+1)
}

func IsValidCoordinate(x, y int) bool {
	return x >= 0 && x < 8 && y >= 0 && y < 8
}

// ParseSquare reads algebraic square names such as "e4".
func ParseSquare(s string) (Position, bool) {
	if len(s) != 2 {
		return Position{}, false
	}
	pos := Position{X: int(s[0] - 'a'), Y: int(s[1] - '1')}
	return pos, pos.Valid()
}

type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Position  `json:"position"`
	HasMoved bool      `json:"hasMoved"`
	Alive    bool      `json:"-"`
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s@%s", p.Color, p.Type, p.Position)
}

// Grid is indexed [rank][file]. It is a value type: assigning it copies the
// whole board, which is what scratch snapshots rely on.
type Grid [8][8]*Piece

func (g *Grid) At(pos Position) *Piece {
	if !pos.Valid() {
		return nil
	}
	return g[pos.Y][pos.X]
}

func (g *Grid) Set(pos Position, p *Piece) {
	if !pos.Valid() {
		return
	}
	g[pos.Y][pos.X] = p
}

// Detached copies the grid and every piece on it, so the result can be read
// while the board keeps moving.
func (g *Grid) Detached() Grid {
	var out Grid
	for y := range g {
		for x, p := range g[y] {
			if p != nil {
				c := *p
				out[y][x] = &c
			}
		}
	}
	return out
}

// PositionObserver is told whenever a piece is placed, including when a
// rejected move reasserts a piece's unchanged position.
type PositionObserver func(p *Piece)

type Board struct {
	grid           Grid
	pieces         []*Piece
	kings          [2]*Piece
	doublePushPawn *Piece
	observers      []PositionObserver
}

// NewBoard returns a board in the standard starting position.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// NewEmptyBoard returns a board with no pieces. Kings are absent until placed.
func NewEmptyBoard() *Board {
	return &Board{}
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Reset recreates the full standard piece set and clears transient state.
func (b *Board) Reset() {
	b.clear()
	for x, t := range backRank {
		b.Place(t, White, Position{X: x, Y: White.BackRank()})
		b.Place(Pawn, White, Position{X: x, Y: White.BackRank() + White.Forward()})
		b.Place(Pawn, Black, Position{X: x, Y: Black.BackRank() + Black.Forward()})
		b.Place(t, Black, Position{X: x, Y: Black.BackRank()})
	}
}

func (b *Board) clear() {
	b.grid = Grid{}
	b.pieces = nil
	b.kings = [2]*Piece{}
	b.doublePushPawn = nil
}

// Place creates a new unmoved piece at pos, replacing any occupant.
func (b *Board) Place(t PieceType, c Color, pos Position) *Piece {
	if !pos.Valid() {
		return nil
	}
	if occupant := b.grid.At(pos); occupant != nil {
		b.Capture(occupant)
	}
	p := &Piece{Type: t, Color: c, Position: pos, Alive: true}
	b.grid.Set(pos, p)
	b.pieces = append(b.pieces, p)
	if t == King {
		b.kings[c] = p
	}
	return p
}

// Grid returns a copy of the live grid.
func (b *Board) Grid() Grid {
	return b.grid
}

func (b *Board) PieceAt(pos Position) *Piece {
	return b.grid.At(pos)
}

func (b *Board) IsValidCoordinate(x, y int) bool {
	return IsValidCoordinate(x, y)
}

// LivingPieces lists every piece not yet captured.
func (b *Board) LivingPieces() []*Piece {
	living := make([]*Piece, 0, len(b.pieces))
	for _, p := range b.pieces {
		if p.Alive {
			living = append(living, p)
		}
	}
	return living
}

// King returns the color's king, or nil if it has not been placed or was
// captured.
func (b *Board) King(c Color) *Piece {
	k := b.kings[c]
	if k == nil || !k.Alive {
		return nil
	}
	return k
}

func (b *Board) DoublePushPawn() *Piece {
	return b.doublePushPawn
}

func (b *Board) SetDoublePushPawn(p *Piece) {
	b.doublePushPawn = p
}

// Observe registers fn to be called after every SetPosition.
func (b *Board) Observe(fn PositionObserver) {
	b.observers = append(b.observers, fn)
}

// SetPosition relocates p in the live grid. Setting a piece to its current
// square leaves the grid unchanged but still notifies observers.
func (b *Board) SetPosition(p *Piece, to Position) {
	if p == nil || !to.Valid() {
		return
	}
	if from := p.Position; from != to && b.grid.At(from) == p {
		b.grid.Set(from, nil)
	}
	b.grid.Set(to, p)
	p.Position = to
	for _, fn := range b.observers {
		fn(p)
	}
}

// MoveInSnapshot moves whatever occupies from onto to inside grid only.
func (b *Board) MoveInSnapshot(from, to Position, grid *Grid) {
	if from == to {
		return
	}
	p := grid.At(from)
	grid.Set(from, nil)
	grid.Set(to, p)
}

// Capture removes p from play.
func (b *Board) Capture(p *Piece) {
	if p == nil || !p.Alive {
		return
	}
	p.Alive = false
	if b.grid.At(p.Position) == p {
		b.grid.Set(p.Position, nil)
	}
	if b.doublePushPawn == p {
		b.doublePushPawn = nil
	}
}
