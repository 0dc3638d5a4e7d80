// Package board supplies the move source for the forced-capture variant:
// legal move generation with the compulsory-capture filter, push/pop move
// application, and the terminal predicates the search core relies on.
package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"

	"forcedchess/zobrist"
)

// Board is a mutable position with strict LIFO push/pop move application.
// notnil positions are persistent values, so a push records the updated
// position on a stack and a pop truncates it; the position seen by the
// search is always the top frame. A Board is owned by a single search call
// stack at a time.
type Board struct {
	frames []frame
}

type frame struct {
	pos       *chess.Position
	key       uint64
	halfMoves int
}

// New returns a board at the standard starting position.
func New() *Board {
	return FromPosition(chess.NewGame().Position())
}

// FromFEN builds a board from a FEN record.
func FromFEN(fen string) (*Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen: %w", err)
	}
	return FromPosition(chess.NewGame(opt).Position()), nil
}

// FromPosition builds a board rooted at pos. Prior game history is not
// visible to repetition counting unless the caller replays it with Push.
func FromPosition(pos *chess.Position) *Board {
	return &Board{frames: []frame{{
		pos:       pos,
		key:       zobrist.Fingerprint(pos),
		halfMoves: halfMoveClock(pos),
	}}}
}

// Current returns the position at the top of the stack.
func (b *Board) Current() *chess.Position {
	return b.frames[len(b.frames)-1].pos
}

// Push applies a move. The move must be legal in the current position.
func (b *Board) Push(m *chess.Move) {
	top := b.frames[len(b.frames)-1]
	half := top.halfMoves + 1
	if b.IsCapture(m) || movedPiece(top.pos, m).Type() == chess.Pawn {
		half = 0
	}
	next := top.pos.Update(m)
	b.frames = append(b.frames, frame{
		pos:       next,
		key:       zobrist.Fingerprint(next),
		halfMoves: half,
	})
}

// Pop undoes the most recent Push. Popping the root frame is a no-op.
func (b *Board) Pop() {
	if len(b.frames) > 1 {
		b.frames = b.frames[:len(b.frames)-1]
	}
}

// LegalMoves returns the variant-legal move set: if any standard-legal move
// is a capture, only the captures are legal.
func (b *Board) LegalMoves() []*chess.Move {
	all := b.Current().ValidMoves()
	captures := make([]*chess.Move, 0, len(all))
	for _, m := range all {
		if b.IsCapture(m) {
			captures = append(captures, m)
		}
	}
	if len(captures) > 0 {
		return captures
	}
	return all
}

// IsCapture reports whether m takes a piece, counting en passant.
func (b *Board) IsCapture(m *chess.Move) bool {
	return m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant)
}

// GivesCheck reports whether m leaves the opponent in check. The probe is
// side-effect free: it inspects the updated position without disturbing the
// stack.
func (b *Board) GivesCheck(m *chess.Move) bool {
	return positionInCheck(b.Current().Update(m))
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool {
	return positionInCheck(b.Current())
}

func (b *Board) IsCheckmate() bool {
	return b.Current().Status() == chess.Checkmate
}

func (b *Board) IsStalemate() bool {
	return b.Current().Status() == chess.Stalemate
}

// IsInsufficientMaterial reports whether the position is dead per
// InsufficientMaterial.
func (b *Board) IsInsufficientMaterial() bool {
	return InsufficientMaterial(b.Current())
}

// InsufficientMaterial reports the dead positions no series of legal moves
// can win: K vs K, K+B vs K, K+N vs K, and opposing K+B vs K+B with both
// bishops on the same square color.
func InsufficientMaterial(pos *chess.Position) bool {
	squares := pos.Board().SquareMap()
	var minors []chess.Square
	for sq, piece := range squares {
		switch piece.Type() {
		case chess.King:
		case chess.Bishop, chess.Knight:
			minors = append(minors, sq)
		default:
			return false
		}
	}
	switch len(minors) {
	case 0, 1:
		return true
	case 2:
		if squares[minors[0]].Type() != chess.Bishop || squares[minors[1]].Type() != chess.Bishop {
			return false
		}
		if squares[minors[0]].Color() == squares[minors[1]].Color() {
			return false
		}
		return squareColor(minors[0]) == squareColor(minors[1])
	}
	return false
}

// IsClaimableDraw reports whether the side to move could claim a draw by
// the fifty-move rule or threefold repetition. Repetition is counted along
// this board's own stack.
func (b *Board) IsClaimableDraw() bool {
	top := b.frames[len(b.frames)-1]
	if top.halfMoves >= 100 {
		return true
	}
	seen := 0
	for i := range b.frames {
		if b.frames[i].key == top.key {
			seen++
		}
	}
	return seen >= 3
}

func positionInCheck(pos *chess.Position) bool {
	us := pos.Turn()
	kingSq := chess.NoSquare
	for sq, piece := range pos.Board().SquareMap() {
		if piece.Type() == chess.King && piece.Color() == us {
			kingSq = sq
			break
		}
	}
	if kingSq == chess.NoSquare {
		return false
	}
	return IsAttacked(pos.Board(), kingSq, us.Other())
}

func movedPiece(pos *chess.Position, m *chess.Move) chess.Piece {
	return pos.Board().Piece(m.S1())
}

func squareColor(sq chess.Square) int {
	return (int(sq.File()) + int(sq.Rank())) & 1
}

// halfMoveClock reads the fifty-move counter out of the position's FEN;
// the field is not exposed directly.
func halfMoveClock(pos *chess.Position) int {
	fields := strings.Fields(pos.String())
	if len(fields) < 5 {
		return 0
	}
	n, err := strconv.Atoi(fields[4])
	if err != nil {
		return 0
	}
	return n
}
