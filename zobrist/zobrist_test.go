package zobrist

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

func applyUCIMoves(t *testing.T, moves ...string) *chess.Position {
	t.Helper()
	game := chess.NewGame(chess.UseNotation(chess.UCINotation{}))
	for _, m := range moves {
		if err := game.MoveStr(m); err != nil {
			t.Fatalf("move %s: %v", m, err)
		}
	}
	return game.Position()
}

func TestFingerprintDeterministic(t *testing.T) {
	a := positionFromFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	b := positionFromFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if Fingerprint(a) != Fingerprint(b) {
		t.Fatalf("identical positions must hash identically")
	}
}

func TestFingerprintDetectsTransposition(t *testing.T) {
	// 1.e3 e6 2.d3 d6 and 1.d3 d6 2.e3 e6 reach the same position.
	a := applyUCIMoves(t, "e2e3", "e7e6", "d2d3", "d7d6")
	b := applyUCIMoves(t, "d2d3", "d7d6", "e2e3", "e7e6")
	if Fingerprint(a) != Fingerprint(b) {
		t.Fatalf("transposed move orders must produce the same fingerprint")
	}
}

func TestFingerprintSideToMoveMatters(t *testing.T) {
	white := positionFromFEN(t, "8/8/8/4k3/8/8/4K3/4R3 w - - 0 1")
	black := positionFromFEN(t, "8/8/8/4k3/8/8/4K3/4R3 b - - 0 1")
	if Fingerprint(white) == Fingerprint(black) {
		t.Fatalf("side to move must change the fingerprint")
	}
}

func TestFingerprintCastlingRightsMatter(t *testing.T) {
	full := positionFromFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	none := positionFromFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1")
	if Fingerprint(full) == Fingerprint(none) {
		t.Fatalf("castling rights must change the fingerprint")
	}
}

func TestFingerprintEnPassantMatters(t *testing.T) {
	with := positionFromFEN(t, "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2")
	without := positionFromFEN(t, "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2")
	if Fingerprint(with) == Fingerprint(without) {
		t.Fatalf("en-passant availability must change the fingerprint")
	}
}
