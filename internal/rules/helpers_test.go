package rules

import (
	"sort"
	"testing"

	"github.com/benbeisheim/chessrules/internal/model"
)

func loadBoard(t *testing.T, fen string) (*model.Board, model.Color) {
	t.Helper()
	b := model.NewEmptyBoard()
	toMove, err := b.LoadFEN(fen)
	if err != nil {
		t.Fatalf("load %q: %v", fen, err)
	}
	return b, toMove
}

func square(t *testing.T, name string) model.Position {
	t.Helper()
	pos, ok := model.ParseSquare(name)
	if !ok {
		t.Fatalf("bad square %q", name)
	}
	return pos
}

func pieceOn(t *testing.T, b *model.Board, name string) *model.Piece {
	t.Helper()
	p := b.PieceAt(square(t, name))
	if p == nil {
		t.Fatalf("no piece on %s", name)
	}
	return p
}

func names(moves *model.MoveSet) []string {
	out := make([]string, 0, moves.Len())
	for _, pos := range moves.Squares() {
		out = append(out, pos.String())
	}
	sort.Strings(out)
	return out
}

func sameNames(got []string, want ...string) bool {
	sort.Strings(want)
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

var referencePositions = []struct {
	name string
	fen  string
}{
	{"start", model.StartFEN},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"},
	{"kiwipete black", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b KQkq - 0 1"},
	{"rook endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"},
	{"mirrored castling", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"},
	{"discovered checks", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"},
	{"white en passant", "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3"},
	{"black en passant", "rnbqkbnr/ppp1pppp/8/8/3Pp3/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 2"},
	{"castling through attack", "r3k2r/8/8/8/8/8/8/R3K1qR w KQkq - 0 1"},
	{"in check", "4k3/8/8/8/8/8/4q3/R3K2R w KQ - 0 1"},
}
