package main

import (
	"errors"
	"sync"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"forcedchess/board"
	"forcedchess/engine"
	"forcedchess/evaluator"
)

var errSearchBusy = errors.New("a search is already running")

type searchRequest struct {
	FEN      string `json:"fen"`
	Depth    int    `json:"depth"`
	BudgetMs int    `json:"budget_ms"`
}

type searchResponse struct {
	BestMove  string   `json:"best_move"`
	Score     int      `json:"score"`
	Depth     int      `json:"depth"`
	Nodes     int64    `json:"nodes"`
	ElapsedMs float64  `json:"elapsed_ms"`
	PV        []string `json:"pv"`
	Mate      bool     `json:"mate"`
}

// SearchService owns the engine. One search runs at a time; concurrent
// requests are turned away rather than queued, because a second search
// would fight the first over the position stack.
type SearchService struct {
	mu  sync.Mutex
	eng *engine.Engine
}

func NewSearchService(cfg engine.Config, hub *Hub) *SearchService {
	eng := engine.New(evaluator.New(), cfg)
	eng.OnIteration = func(it engine.Iteration) {
		hub.PublishIteration(iterationPayload{
			Depth:     it.Depth,
			Score:     it.Score,
			BestMove:  moveUCI(it.BestMove),
			Nodes:     it.Nodes,
			ElapsedMs: float64(it.Elapsed.Microseconds()) / 1000.0,
		})
	}
	return &SearchService{eng: eng}
}

func (s *SearchService) Search(req searchRequest) (searchResponse, error) {
	pos, err := positionFromRequest(req)
	if err != nil {
		return searchResponse{}, err
	}
	if !s.mu.TryLock() {
		return searchResponse{}, errSearchBusy
	}
	defer s.mu.Unlock()

	budget := time.Duration(req.BudgetMs) * time.Millisecond
	log.Info().Str("fen", pos.Current().String()).Int("depth", req.Depth).Dur("budget", budget).Msg("search start")
	res := s.eng.Search(pos, req.Depth, budget)
	return resultToResponse(res), nil
}

// Stop interrupts the running search, if any.
func (s *SearchService) Stop() {
	s.eng.Stop()
}

func (s *SearchService) TTStats() engine.TTStats {
	return s.eng.TT().Stats()
}

func (s *SearchService) ClearTT() {
	s.eng.TT().Clear()
}

func (s *SearchService) Config() engine.Config {
	return s.eng.Config()
}

func positionFromRequest(req searchRequest) (*board.Board, error) {
	if req.FEN == "" {
		return board.New(), nil
	}
	return board.FromFEN(req.FEN)
}

func resultToResponse(res engine.Result) searchResponse {
	pv := make([]string, 0, len(res.PV))
	for _, m := range res.PV {
		pv = append(pv, moveUCI(m))
	}
	return searchResponse{
		BestMove:  moveUCI(res.BestMove),
		Score:     res.Score,
		Depth:     res.Depth,
		Nodes:     res.Nodes,
		ElapsedMs: float64(res.Elapsed.Microseconds()) / 1000.0,
		PV:        pv,
		Mate:      res.Mate(),
	}
}

func moveUCI(m *chess.Move) string {
	if m == nil {
		return ""
	}
	return chess.UCINotation{}.Encode(nil, m)
}
