package engine

import "github.com/notnil/chess"

// Position is the move-source contract the search drives. Implementations
// own the board state; the search mutates it strictly through Push/Pop in
// LIFO order and never copies it. All methods except Push/Pop must leave
// the position unchanged.
type Position interface {
	// Push applies a legal move; Pop undoes the most recent Push.
	Push(m *chess.Move)
	Pop()

	// LegalMoves returns the variant-legal move set, already filtered by
	// the compulsory-capture rule: if any capture is legal, only captures
	// are returned.
	LegalMoves() []*chess.Move
	IsCapture(m *chess.Move) bool
	// GivesCheck reports whether m checks the opponent, probed without
	// permanently altering the position.
	GivesCheck(m *chess.Move) bool

	InCheck() bool
	IsCheckmate() bool
	IsStalemate() bool
	IsInsufficientMaterial() bool
	IsClaimableDraw() bool

	// Current exposes the underlying position for fingerprinting and
	// static evaluation.
	Current() *chess.Position
}

// Evaluator scores positions statically. StaticScore is in the absolute
// frame (positive favors White); the search flips it into mover-relative
// terms. PieceValue feeds capture ordering only.
type Evaluator interface {
	StaticScore(pos *chess.Position) int
	PieceValue(t chess.PieceType) int
}
