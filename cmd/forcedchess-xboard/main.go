// Command forcedchess-xboard speaks the xboard/CECP protocol on stdin and
// stdout, so the engine can sit behind xboard-compatible interfaces.
// Protocol chatter goes to stdout; logging goes to stderr so it never
// corrupts the stream.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"forcedchess/board"
	"forcedchess/engine"
	"forcedchess/evaluator"
)

const (
	minThink = 100 * time.Millisecond
	// Never burn more than this share of the clock on one move.
	maxClockShare = 0.3
)

type session struct {
	eng *engine.Engine
	pos *board.Board

	forceMode bool
	// remaining is our clock in centiseconds, as reported by "time".
	remaining int
	// movesPerControl and increment come from "level".
	movesPerControl int
	increment       time.Duration
	// ourMoves counts engine moves since the last control.
	ourMoves int

	// fixedDepth and fixedTime come from "sd" and "st"; zero means clock
	// driven.
	fixedDepth int
	fixedTime  time.Duration
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg := engine.DefaultConfig()
	s := &session{
		eng: engine.New(evaluator.New(), cfg),
		pos: board.New(),
	}

	out := bufio.NewWriter(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !s.handle(out, line) {
			break
		}
		out.Flush()
	}
}

// handle dispatches one protocol line; returning false ends the loop.
func (s *session) handle(out *bufio.Writer, line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "xboard":
		// Acknowledged by silence.
	case "protover":
		fmt.Fprintln(out, `feature myname="ForcedChess" setboard=1 usermove=1 time=1 ping=1 sigint=0 sigterm=0 colors=0 san=0 variants="giveaway" done=1`)
	case "new":
		s.pos = board.New()
		s.forceMode = false
		s.ourMoves = 0
		s.fixedDepth = 0
	case "force":
		s.forceMode = true
	case "go":
		s.forceMode = false
		s.playMove(out)
	case "setboard":
		fen := strings.Join(args, " ")
		b, err := board.FromFEN(fen)
		if err != nil {
			fmt.Fprintf(out, "tellusererror Illegal position: %s\n", fen)
			return true
		}
		s.pos = b
	case "usermove":
		if len(args) == 0 {
			return true
		}
		move := s.findMove(args[0])
		if move == nil {
			fmt.Fprintf(out, "Illegal move: %s\n", args[0])
			return true
		}
		s.pos.Push(move)
		if s.reportResult(out) {
			return true
		}
		if !s.forceMode {
			s.playMove(out)
		}
	case "time":
		if len(args) > 0 {
			if cs, err := strconv.Atoi(args[0]); err == nil {
				s.remaining = cs
			}
		}
	case "otim":
		// Opponent clock; not used.
	case "level":
		s.parseLevel(args)
	case "sd":
		if len(args) > 0 {
			if d, err := strconv.Atoi(args[0]); err == nil {
				s.fixedDepth = d
			}
		}
	case "st":
		if len(args) > 0 {
			if sec, err := strconv.Atoi(args[0]); err == nil {
				s.fixedTime = time.Duration(sec) * time.Second
			}
		}
	case "ping":
		if len(args) > 0 {
			fmt.Fprintf(out, "pong %s\n", args[0])
		}
	case "result":
		s.forceMode = true
	case "quit":
		return false
	default:
		// Unknown commands are ignored per protocol.
		log.Debug().Str("command", cmd).Msg("ignoring")
	}
	return true
}

// playMove searches the current position and emits the move.
func (s *session) playMove(out *bufio.Writer) {
	legal := s.pos.LegalMoves()
	if len(legal) == 0 {
		s.reportResult(out)
		return
	}

	var move *chess.Move
	if len(legal) == 1 {
		// Only one legal reply, common under compulsory capture: play it
		// without burning clock.
		move = legal[0]
	} else {
		budget := s.thinkTime()
		res := s.eng.Search(s.pos, s.fixedDepth, budget)
		move = res.BestMove
		log.Info().
			Str("move", moveUCI(move)).
			Int("score", res.Score).
			Int("depth", res.Depth).
			Int64("nodes", res.Nodes).
			Dur("elapsed", res.Elapsed).
			Msg("move chosen")
	}
	if move == nil {
		s.reportResult(out)
		return
	}

	s.pos.Push(move)
	s.ourMoves++
	fmt.Fprintf(out, "move %s\n", moveUCI(move))
	s.reportResult(out)
}

// thinkTime allocates clock for one move.
func (s *session) thinkTime() time.Duration {
	if s.fixedTime > 0 {
		return s.fixedTime
	}
	if s.remaining <= 0 {
		return 0
	}
	remaining := time.Duration(s.remaining) * 10 * time.Millisecond
	var budget time.Duration
	if s.movesPerControl > 0 {
		toGo := s.movesPerControl - s.ourMoves%s.movesPerControl
		budget = remaining / time.Duration(toGo+5)
	} else {
		budget = remaining / 40
	}
	budget += s.increment / 2
	if ceiling := time.Duration(float64(remaining) * maxClockShare); budget > ceiling {
		budget = ceiling
	}
	if budget < minThink {
		budget = minThink
	}
	return budget
}

// parseLevel reads "level MPS BASE INC". BASE is minutes or minutes:seconds
// and INC is seconds.
func (s *session) parseLevel(args []string) {
	if len(args) < 3 {
		return
	}
	if mps, err := strconv.Atoi(args[0]); err == nil {
		s.movesPerControl = mps
	}
	if inc, err := strconv.ParseFloat(args[2], 64); err == nil {
		s.increment = time.Duration(inc * float64(time.Second))
	}
}

func (s *session) findMove(raw string) *chess.Move {
	raw = strings.ToLower(raw)
	for _, m := range s.pos.LegalMoves() {
		if moveUCI(m) == raw {
			return m
		}
	}
	return nil
}

// reportResult prints the game result line when the game is over,
// returning true in that case.
func (s *session) reportResult(out *bufio.Writer) bool {
	switch {
	case s.pos.IsCheckmate():
		if s.pos.Current().Turn() == chess.White {
			fmt.Fprintln(out, "0-1 {Black mates}")
		} else {
			fmt.Fprintln(out, "1-0 {White mates}")
		}
	case s.pos.IsStalemate():
		fmt.Fprintln(out, "1/2-1/2 {Stalemate}")
	case s.pos.IsInsufficientMaterial():
		fmt.Fprintln(out, "1/2-1/2 {Insufficient material}")
	case s.pos.IsClaimableDraw():
		fmt.Fprintln(out, "1/2-1/2 {Draw claimed}")
	default:
		return false
	}
	s.forceMode = true
	return true
}

func moveUCI(m *chess.Move) string {
	if m == nil {
		return ""
	}
	return chess.UCINotation{}.Encode(nil, m)
}
