package rules

import (
	"testing"

	"github.com/benbeisheim/chessrules/internal/model"
)

func TestIsKingInCheck(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		color model.Color
		want  bool
	}{
		{"rook down open file", "4r3/8/8/8/8/8/8/4K3 w - - 0 1", model.White, true},
		{"rook file blocked", "4r3/8/8/8/4n3/8/8/4K3 w - - 0 1", model.White, false},
		{"bishop diagonal", "4k3/8/8/b7/8/8/8/4K3 w - - 0 1", model.White, true},
		{"knight", "4k3/8/8/8/8/3n4/8/4K3 w - - 0 1", model.White, true},
		{"pawn attacks diagonally", "4k3/8/8/8/8/8/3p4/4K3 w - - 0 1", model.White, true},
		{"pawn does not attack forward", "4k3/8/8/8/8/8/4p3/4K3 w - - 0 1", model.White, false},
		{"pawn does not attack backward", "4k3/8/8/8/8/8/8/3pK3 w - - 0 1", model.White, false},
		{"missing king", "8/8/8/8/8/8/8/4K3 w - - 0 1", model.Black, false},
		{"adjacent kings", "8/8/8/8/8/8/3k4/4K3 w - - 0 1", model.White, true},
		{"own pieces never attack", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", model.White, false},
		{"start position", model.StartFEN, model.White, false},
	}
	engine := NewEngine(Options{})
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b, _ := loadBoard(t, tt.fen)
			if got := engine.IsKingInCheck(b, tt.color); got != tt.want {
				t.Fatalf("IsKingInCheck(%s) = %v, want %v", tt.color, got, tt.want)
			}
		})
	}
}

func TestKingCheckedByRookOnOpenFile(t *testing.T) {
	b := model.NewEmptyBoard()
	b.Place(model.King, model.White, model.Position{X: 4, Y: 0})
	b.Place(model.Rook, model.Black, model.Position{X: 4, Y: 7})

	if !NewEngine(Options{}).IsKingInCheck(b, model.White) {
		t.Fatalf("expected white king on (4,0) to be in check from rook on (4,7)")
	}
}

func TestAttackDetectionUsesSnapshotOccupancy(t *testing.T) {
	b, _ := loadBoard(t, "4r3/8/8/8/8/8/8/4K3 w - - 0 1")
	engine := NewEngine(Options{})
	rook := pieceOn(t, b, "e8")
	king := pieceOn(t, b, "e1")

	scratch := b.Grid()
	scratch.Set(rook.Position, nil)
	if engine.IsSquareUnderAttack(king.Position, &scratch, nil, model.White, b) {
		t.Fatalf("rook removed from the snapshot still attacks")
	}

	scratch = b.Grid()
	blocker := &model.Piece{Type: model.Knight, Color: model.White, Position: square(t, "e4"), Alive: true}
	scratch.Set(blocker.Position, blocker)
	if engine.IsSquareUnderAttack(king.Position, &scratch, nil, model.White, b) {
		t.Fatalf("blocked file in the snapshot still attacks")
	}

	if !rook.Alive || b.PieceAt(rook.Position) != rook {
		t.Fatalf("snapshot edits leaked into the live board")
	}
}

func TestAttackDetectionWithoutGridOrKing(t *testing.T) {
	engine := NewEngine(Options{})
	b := model.NewEmptyBoard()
	if engine.IsSquareUnderAttack(model.Position{X: 0, Y: 0}, nil, nil, model.White, b) {
		t.Fatalf("nil grid reported an attack")
	}
	if engine.IsKingInCheck(b, model.White) {
		t.Fatalf("board without king reported check")
	}
	grid := b.Grid()
	if engine.IsSquareUnderAttack(model.Position{X: 3, Y: 3}, &grid, nil, model.White, b) {
		t.Fatalf("empty grid reported an attack")
	}
}

func TestCouldReach(t *testing.T) {
	tests := []struct {
		piece  model.PieceType
		color  model.Color
		from   model.Position
		target model.Position
		want   bool
	}{
		{model.Rook, model.White, model.Position{X: 0, Y: 0}, model.Position{X: 0, Y: 7}, true},
		{model.Rook, model.White, model.Position{X: 0, Y: 0}, model.Position{X: 1, Y: 1}, false},
		{model.Bishop, model.White, model.Position{X: 2, Y: 0}, model.Position{X: 7, Y: 5}, true},
		{model.Bishop, model.White, model.Position{X: 2, Y: 0}, model.Position{X: 2, Y: 5}, false},
		{model.Queen, model.Black, model.Position{X: 3, Y: 3}, model.Position{X: 6, Y: 6}, true},
		{model.Queen, model.Black, model.Position{X: 3, Y: 3}, model.Position{X: 4, Y: 5}, false},
		{model.King, model.White, model.Position{X: 4, Y: 0}, model.Position{X: 5, Y: 1}, true},
		{model.King, model.White, model.Position{X: 4, Y: 0}, model.Position{X: 6, Y: 0}, false},
		{model.Knight, model.White, model.Position{X: 1, Y: 0}, model.Position{X: 2, Y: 2}, true},
		{model.Knight, model.White, model.Position{X: 1, Y: 0}, model.Position{X: 3, Y: 2}, false},
		{model.Pawn, model.White, model.Position{X: 4, Y: 1}, model.Position{X: 5, Y: 2}, true},
		{model.Pawn, model.White, model.Position{X: 4, Y: 1}, model.Position{X: 5, Y: 0}, false},
		{model.Pawn, model.Black, model.Position{X: 4, Y: 6}, model.Position{X: 3, Y: 5}, true},
		{model.Pawn, model.Black, model.Position{X: 4, Y: 6}, model.Position{X: 4, Y: 5}, false},
	}
	for _, tt := range tests {
		p := &model.Piece{Type: tt.piece, Color: tt.color, Position: tt.from, Alive: true}
		if got := couldReach(p, tt.target); got != tt.want {
			t.Errorf("couldReach(%s, %v) = %v, want %v", p, tt.target, got, tt.want)
		}
	}
}
