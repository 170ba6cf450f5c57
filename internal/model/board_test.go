package model

import (
	"errors"
	"testing"
)

func TestResetStandardPosition(t *testing.T) {
	b := NewBoard()
	if n := len(b.LivingPieces()); n != 32 {
		t.Fatalf("got %d pieces, want 32", n)
	}
	tests := []struct {
		square string
		typ    PieceType
		color  Color
	}{
		{"a1", Rook, White},
		{"b1", Knight, White},
		{"c1", Bishop, White},
		{"d1", Queen, White},
		{"e1", King, White},
		{"e2", Pawn, White},
		{"d8", Queen, Black},
		{"e8", King, Black},
		{"h7", Pawn, Black},
	}
	for _, tt := range tests {
		pos, _ := ParseSquare(tt.square)
		p := b.PieceAt(pos)
		if p == nil || p.Type != tt.typ || p.Color != tt.color {
			t.Errorf("%s holds %v, want %s %s", tt.square, p, tt.color, tt.typ)
			continue
		}
		if p.Position != pos || p.HasMoved || !p.Alive {
			t.Errorf("%s piece state %+v", tt.square, *p)
		}
	}
	if b.King(White).Position != (Position{X: 4, Y: 0}) || b.King(Black).Position != (Position{X: 4, Y: 7}) {
		t.Fatalf("kings not tracked")
	}
}

func TestResetClearsTransientState(t *testing.T) {
	b := NewBoard()
	pawn := b.PieceAt(Position{X: 4, Y: 1})
	pawn.HasMoved = true
	b.SetPosition(pawn, Position{X: 4, Y: 3})
	b.SetDoublePushPawn(pawn)
	b.Capture(b.PieceAt(Position{X: 0, Y: 6}))

	b.Reset()

	if b.DoublePushPawn() != nil {
		t.Fatalf("double push survived reset")
	}
	if b.PieceAt(Position{X: 4, Y: 3}) != nil {
		t.Fatalf("moved pawn survived reset")
	}
	for _, p := range b.LivingPieces() {
		if p.HasMoved {
			t.Fatalf("%s still marked moved", p)
		}
	}
	if n := len(b.LivingPieces()); n != 32 {
		t.Fatalf("got %d pieces after reset, want 32", n)
	}
}

func TestGridIsACopy(t *testing.T) {
	b := NewBoard()
	grid := b.Grid()
	grid.Set(Position{X: 0, Y: 0}, nil)
	if b.PieceAt(Position{X: 0, Y: 0}) == nil {
		t.Fatalf("editing a snapshot changed the board")
	}

	b.MoveInSnapshot(Position{X: 1, Y: 0}, Position{X: 2, Y: 2}, &grid)
	if grid.At(Position{X: 2, Y: 2}) == nil || grid.At(Position{X: 1, Y: 0}) != nil {
		t.Fatalf("snapshot move not applied")
	}
	if b.PieceAt(Position{X: 1, Y: 0}) == nil {
		t.Fatalf("snapshot move leaked into the board")
	}
}

func TestDetachedGridSharesNoPieces(t *testing.T) {
	b := NewBoard()
	grid := b.Grid()
	detached := grid.Detached()

	live := b.PieceAt(Position{X: 4, Y: 1})
	copied := detached.At(Position{X: 4, Y: 1})
	if copied == nil || copied == live || *copied != *live {
		t.Fatalf("detached e2 = %v, live = %v", copied, live)
	}

	live.HasMoved = true
	b.SetPosition(live, Position{X: 4, Y: 3})
	if copied.HasMoved || copied.Position != (Position{X: 4, Y: 1}) {
		t.Fatalf("detached piece followed the board: %+v", *copied)
	}
	if detached.At(Position{X: 4, Y: 3}) != nil {
		t.Fatalf("detached grid followed the board")
	}
}

func TestSetPositionNotifiesObservers(t *testing.T) {
	b := NewBoard()
	var seen []Position
	b.Observe(func(p *Piece) { seen = append(seen, p.Position) })

	knight := b.PieceAt(Position{X: 6, Y: 0})
	b.SetPosition(knight, Position{X: 5, Y: 2})
	b.SetPosition(knight, knight.Position)

	if len(seen) != 2 || seen[0] != (Position{X: 5, Y: 2}) || seen[1] != (Position{X: 5, Y: 2}) {
		t.Fatalf("observer saw %v", seen)
	}
	if b.PieceAt(Position{X: 6, Y: 0}) != nil || b.PieceAt(Position{X: 5, Y: 2}) != knight {
		t.Fatalf("grid not updated")
	}
}

func TestCapture(t *testing.T) {
	b := NewBoard()
	king := b.King(Black)
	b.Capture(king)
	if king.Alive || b.PieceAt(Position{X: 4, Y: 7}) != nil {
		t.Fatalf("captured king still on board")
	}
	if b.King(Black) != nil {
		t.Fatalf("captured king still reported")
	}
	if n := len(b.LivingPieces()); n != 31 {
		t.Fatalf("got %d living pieces, want 31", n)
	}

	pawn := b.PieceAt(Position{X: 0, Y: 1})
	b.SetDoublePushPawn(pawn)
	b.Capture(pawn)
	if b.DoublePushPawn() != nil {
		t.Fatalf("captured pawn still tracked as double push")
	}
}

func TestPlaceReplacesOccupant(t *testing.T) {
	b := NewEmptyBoard()
	first := b.Place(Knight, White, Position{X: 3, Y: 3})
	second := b.Place(Bishop, Black, Position{X: 3, Y: 3})
	if first.Alive || b.PieceAt(Position{X: 3, Y: 3}) != second {
		t.Fatalf("place did not replace the occupant")
	}
	if b.Place(Rook, White, Position{X: 8, Y: 0}) != nil {
		t.Fatalf("placed a piece off the board")
	}
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in   string
		want Position
		ok   bool
	}{
		{"a1", Position{X: 0, Y: 0}, true},
		{"h8", Position{X: 7, Y: 7}, true},
		{"e4", Position{X: 4, Y: 3}, true},
		{"i1", Position{}, false},
		{"a9", Position{}, false},
		{"e", Position{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseSquare(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseSquare(%q) = %v, %v", tt.in, got, ok)
		}
	}
	if s := (Position{X: 4, Y: 3}).String(); s != "e4" {
		t.Fatalf("String() = %q", s)
	}
}

func TestLoadFEN(t *testing.T) {
	b := NewEmptyBoard()
	toMove, err := b.LoadFEN("r3k2r/8/8/3pP3/8/8/8/R3K2R w Kq d6 0 1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if toMove != White {
		t.Fatalf("side to move %s", toMove)
	}

	at := func(s string) *Piece {
		pos, _ := ParseSquare(s)
		return b.PieceAt(pos)
	}
	if at("h1").HasMoved || !at("a1").HasMoved {
		t.Fatalf("white rook flags: h1=%v a1=%v", at("h1").HasMoved, at("a1").HasMoved)
	}
	if !at("h8").HasMoved || at("a8").HasMoved {
		t.Fatalf("black rook flags: h8=%v a8=%v", at("h8").HasMoved, at("a8").HasMoved)
	}
	if at("e1").HasMoved || at("e8").HasMoved {
		t.Fatalf("kings with castling rights marked moved")
	}
	if b.DoublePushPawn() != at("d5") {
		t.Fatalf("double push = %v, want d5 pawn", b.DoublePushPawn())
	}
	if !at("e5").HasMoved {
		t.Fatalf("advanced pawn not marked moved")
	}
}

func TestLoadFENStartMatchesReset(t *testing.T) {
	loaded := NewEmptyBoard()
	if _, err := loaded.LoadFEN(StartFEN); err != nil {
		t.Fatalf("load: %v", err)
	}
	reset := NewBoard()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			a, b := loaded.PieceAt(Position{X: x, Y: y}), reset.PieceAt(Position{X: x, Y: y})
			if (a == nil) != (b == nil) {
				t.Fatalf("occupancy differs at %v", Position{X: x, Y: y})
			}
			if a != nil && *a != *b {
				t.Fatalf("piece differs at %v: %+v vs %+v", Position{X: x, Y: y}, *a, *b)
			}
		}
	}
}

func TestLoadFENErrorsLeaveBoardAlone(t *testing.T) {
	bad := []string{
		"",
		"8/8/8 w - -",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1",
		"k6k/8/8/8/8/8/8/K7 w - - 0 1",
	}
	for _, fen := range bad {
		b := NewBoard()
		if _, err := b.LoadFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("LoadFEN(%q) err = %v, want ErrInvalidFEN", fen, err)
		}
		if n := len(b.LivingPieces()); n != 32 {
			t.Errorf("LoadFEN(%q) changed the board", fen)
		}
	}
}
