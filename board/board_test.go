package board

import (
	"testing"

	"github.com/notnil/chess"
)

func mustBoard(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return b
}

func findMove(t *testing.T, b *Board, from, to string) *chess.Move {
	t.Helper()
	for _, m := range b.Current().ValidMoves() {
		if m.S1().String() == from && m.S2().String() == to {
			return m
		}
	}
	t.Fatalf("move %s%s not legal in %s", from, to, b.Current().String())
	return nil
}

func TestLegalMovesStartPosition(t *testing.T) {
	b := New()
	moves := b.LegalMoves()
	if len(moves) != 20 {
		t.Fatalf("expected 20 opening moves, got %d", len(moves))
	}
}

func TestLegalMovesForcedCapture(t *testing.T) {
	// After 1.e4 d5 White can take on d5, so every legal move must capture.
	b := mustBoard(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	moves := b.LegalMoves()
	if len(moves) == 0 {
		t.Fatalf("expected at least one move")
	}
	for _, m := range moves {
		if !b.IsCapture(m) {
			t.Fatalf("capture available but non-capture %s offered", m)
		}
	}
}

func TestPushPopRestoresPosition(t *testing.T) {
	b := New()
	before := b.Current().String()
	m := findMove(t, b, "e2", "e4")
	b.Push(m)
	if b.Current().String() == before {
		t.Fatalf("push did not advance the position")
	}
	b.Pop()
	if got := b.Current().String(); got != before {
		t.Fatalf("pop did not restore position: got %s want %s", got, before)
	}
}

func TestGivesCheckDoesNotMutate(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	before := b.Current().String()
	m := findMove(t, b, "a1", "a8")
	if !b.GivesCheck(m) {
		t.Fatalf("Ra8 should give check")
	}
	quiet := findMove(t, b, "a1", "a2")
	if b.GivesCheck(quiet) {
		t.Fatalf("Ra2 should not give check")
	}
	if b.Current().String() != before {
		t.Fatalf("GivesCheck mutated the board")
	}
}

func TestInCheck(t *testing.T) {
	checked := mustBoard(t, "4k3/4R3/8/8/8/8/8/4K3 b - - 0 1")
	if !checked.InCheck() {
		t.Fatalf("black king on the rook's file must be in check")
	}
	if New().InCheck() {
		t.Fatalf("starting position is not check")
	}
}

func TestClaimableDrawFiftyMoveRule(t *testing.T) {
	b := mustBoard(t, "8/8/8/4k3/8/8/4K3/4R3 w - - 100 80")
	if !b.IsClaimableDraw() {
		t.Fatalf("halfmove clock at 100 must be claimable")
	}
}

func TestClaimableDrawByRepetition(t *testing.T) {
	b := New()
	shuffle := [][2]string{
		{"g1", "f3"}, {"g8", "f6"}, {"f3", "g1"}, {"f6", "g8"},
		{"g1", "f3"}, {"g8", "f6"}, {"f3", "g1"}, {"f6", "g8"},
	}
	for _, mv := range shuffle {
		b.Push(findMove(t, b, mv[0], mv[1]))
	}
	if !b.IsClaimableDraw() {
		t.Fatalf("third occurrence of the start position must be claimable")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	cases := []struct {
		fen  string
		want bool
	}{
		{"8/8/8/4k3/8/8/4K3/8 w - - 0 1", true},
		{"8/8/8/4k3/8/8/4KB2/8 w - - 0 1", true},
		{"8/8/8/4k3/8/8/4KN2/8 w - - 0 1", true},
		{"8/8/8/4k3/8/8/4KR2/8 w - - 0 1", false},
		{"8/8/8/4k3/8/8/3PK3/8 w - - 0 1", false},
	}
	for _, tc := range cases {
		b := mustBoard(t, tc.fen)
		if got := b.IsInsufficientMaterial(); got != tc.want {
			t.Fatalf("%s: insufficient=%v want %v", tc.fen, got, tc.want)
		}
	}
}

func TestAttacksSquareGeometry(t *testing.T) {
	b := mustBoard(t, "8/8/8/3r4/8/3B4/8/3QK2k w - - 0 1")
	brd := b.Current().Board()
	if !AttacksSquare(brd, chess.D5, chess.D3) {
		t.Fatalf("rook d5 attacks d3")
	}
	if AttacksSquare(brd, chess.D5, chess.D1) {
		t.Fatalf("rook ray d5-d1 is blocked by the bishop on d3")
	}
	if !AttacksSquare(brd, chess.D3, chess.F5) {
		t.Fatalf("bishop d3 attacks f5")
	}
}
