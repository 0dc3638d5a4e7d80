package evaluator

import (
	"testing"

	"github.com/notnil/chess"
)

func positionFromFEN(t *testing.T, fen string) *chess.Position {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("bad FEN %q: %v", fen, err)
	}
	return chess.NewGame(opt).Position()
}

func TestStartPositionIsBalanced(t *testing.T) {
	e := New()
	score := e.StaticScore(chess.NewGame().Position())
	if score != 0 {
		t.Fatalf("start position should score 0, got %d", score)
	}
}

func TestPawnAdvantageScoresPositive(t *testing.T) {
	e := New()
	pos := positionFromFEN(t, "rnbqkbnr/ppppppp1/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	score := e.StaticScore(pos)
	if score < 50 || score > 200 {
		t.Fatalf("up a pawn should score around +100, got %d", score)
	}
}

func TestQueenDownScoresStronglyNegative(t *testing.T) {
	e := New()
	pos := positionFromFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNB1KBNR w KQkq - 0 1")
	if score := e.StaticScore(pos); score > -700 {
		t.Fatalf("missing white queen should score strongly negative, got %d", score)
	}
}

func TestCheckmateScoresTerminal(t *testing.T) {
	e := New()
	pos := positionFromFEN(t, "r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 4")
	if score := e.StaticScore(pos); score != 30000 {
		t.Fatalf("black checkmated should score +30000, got %d", score)
	}
}

func TestUndefendedPieceIsPenalized(t *testing.T) {
	e := New()
	// White knight on e5 is attacked by the d6 pawn and undefended.
	hanging := positionFromFEN(t, "4k3/8/3p4/4N3/8/8/8/4K3 w - - 0 1")
	// Same material with the knight out of reach.
	safe := positionFromFEN(t, "4k3/8/3p4/8/8/8/1N6/4K3 w - - 0 1")
	if e.StaticScore(hanging) >= e.StaticScore(safe) {
		t.Fatalf("hanging knight must score worse than a safe one: %d vs %d",
			e.StaticScore(hanging), e.StaticScore(safe))
	}
}

func TestPieceValueOrdering(t *testing.T) {
	e := New()
	if e.PieceValue(chess.Queen) <= e.PieceValue(chess.Rook) ||
		e.PieceValue(chess.Rook) <= e.PieceValue(chess.Bishop) ||
		e.PieceValue(chess.Knight) <= e.PieceValue(chess.Pawn) {
		t.Fatalf("piece values out of order")
	}
	if e.PieceValue(chess.NoPieceType) != 0 {
		t.Fatalf("no piece type should be worthless")
	}
}
