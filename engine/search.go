package engine

// maxPly bounds the search tree depth (iterative deepening stops before
// this regardless of remaining time) and sizes the killer-move table.
const maxPly = 64

// checkmateScore is returned (offset by ply) for a mated side; comfortably
// outside any realistic evaluation so it always dominates move ordering
// and window comparisons.
const checkmateScore = 100000

// mvvLvaValue gives the fixed (non-tunable) piece weights used only for
// move-ordering arithmetic, independent of the evaluation's EvalParams.
var mvvLvaValue = [FigureArraySize]int{0, 100, 320, 330, 500, 900, 20000}

// SearchInfo is reported once per completed iterative-deepening depth.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	PV    []Move
}

// Searcher owns the tables and counters exclusive to one `go` command: TT,
// pawn hash, killer slots and the node counter. It is not safe to reuse
// concurrently across two searches.
type Searcher struct {
	TT        *TranspositionTable
	PawnTable *PawnTable
	Params    *EvalParams

	killers   [maxPly][2]Move
	nodes     uint64
	tc        *TimeControl
	stopped   bool
	rootDepth int

	// Info, if non-nil, is called after every completed depth during
	// IterativeDeepening.
	Info func(SearchInfo)
}

// NewSearcher builds a Searcher around the given transposition and pawn
// tables, using params as the evaluation weights.
func NewSearcher(tt *TranspositionTable, pt *PawnTable, params *EvalParams) *Searcher {
	return &Searcher{TT: tt, PawnTable: pt, Params: params}
}

// ResetForNewGame clears the killer table and the node counter; the caller
// is responsible for clearing TT/pawn tables on ucinewgame.
func (s *Searcher) ResetForNewGame() {
	s.killers = [maxPly][2]Move{}
	s.nodes = 0
}

const aspirationWindow = 33

// IterativeDeepening searches pos from depth 1 until tc expires or depth
// 64 is reached, returning the best move found at the last fully completed
// depth.
func (s *Searcher) IterativeDeepening(pos *Position, tc *TimeControl) Move {
	s.tc = tc
	s.stopped = false
	s.nodes = 0
	s.TT.NextAge()

	var best Move
	prevScore := 0

	for depth := 1; depth <= maxPly; depth++ {
		s.rootDepth = depth
		alpha, beta := -checkmateScore*2, checkmateScore*2
		if depth >= 3 {
			alpha, beta = prevScore-aspirationWindow, prevScore+aspirationWindow
		}

		var score int
		for {
			score = s.negamax(pos, depth, 0, alpha, beta)
			if s.stopped {
				break
			}
			if score <= alpha || score >= beta {
				alpha, beta = -checkmateScore*2, checkmateScore*2
				continue
			}
			break
		}
		if s.stopped {
			break
		}

		prevScore = score
		pv := s.collectPV(pos, depth)
		if len(pv) > 0 {
			best = pv[0]
		}
		if s.Info != nil {
			s.Info(SearchInfo{Depth: depth, Score: score, Nodes: s.nodes, PV: pv})
		}

		if score >= checkmateScore-maxPly || score <= -checkmateScore+maxPly {
			break
		}
	}
	return best
}

// collectPV walks the TT's recorded best moves from pos, playing them on
// pos itself and undoing them all before returning; the walk is bounded at
// depth plies and never revisits a position already on the line (guards
// against TT cycles).
func (s *Searcher) collectPV(pos *Position, depth int) []Move {
	var pv []Move
	seen := map[uint64]bool{}
	played := 0
	for played < depth {
		e, ok := s.TT.Probe(pos.Zobrist)
		if !ok || e.Move == NullMove {
			break
		}
		if seen[pos.Zobrist] {
			break
		}
		seen[pos.Zobrist] = true

		var ml MoveList
		pos.GenerateLegal(&ml)
		found := false
		for i := 0; i < ml.Len(); i++ {
			if ml.At(i) == e.Move {
				found = true
				break
			}
		}
		if !found {
			break
		}
		pv = append(pv, e.Move)
		pos.MakeMove(e.Move)
		played++
	}
	for i := 0; i < played; i++ {
		pos.UndoMove()
	}
	return pv
}

func (s *Searcher) timeUp() bool {
	if s.nodes&1023 != 0 {
		return false
	}
	return s.tc != nil && s.tc.Expired()
}

// negamax implements the search described by the engine's design: TT
// probe/store, null-move pruning, late-move reduction, killer/MVV-LVA move
// ordering and a fall-through to quiescence at depth 0.
func (s *Searcher) negamax(pos *Position, depth, ply, alpha, beta int) int {
	s.nodes++
	if s.timeUp() {
		s.stopped = true
		return alpha
	}

	if ply > 0 && pos.IsDraw() {
		return 0
	}

	var ttMove Move
	if e, ok := s.TT.Probe(pos.Zobrist); ok {
		ttMove = e.Move
		if int(e.Depth) >= depth {
			score := int(e.Score)
			switch e.Bound {
			case BoundExact:
				return score
			case BoundLower:
				if score >= beta {
					return score
				}
			case BoundUpper:
				if score <= alpha {
					return score
				}
			}
		}
	}

	if depth <= 0 {
		return s.quiescence(pos, ply, 0, 2*s.rootDepth, alpha, beta)
	}

	inCheck := pos.InCheck()

	const nullMoveR = 3
	if !inCheck && depth >= nullMoveR && !pos.IsPawnEndgame() && ply > 0 {
		pos.MakeNullMove()
		score := -s.negamax(pos, depth-nullMoveR, ply+1, -beta, -beta+1)
		pos.UndoNullMove()
		if s.stopped {
			return alpha
		}
		if score >= beta {
			s.TT.Store(pos.Zobrist, NullMove, depth, BoundLower, int32(beta))
			return beta
		}
	}

	var ml MoveList
	pos.GeneratePseudoLegal(&ml)
	s.orderMoves(pos, &ml, ttMove, ply)

	us := pos.ToMove
	legalMoves := 0
	best := -checkmateScore * 2
	var bestMove Move
	raisedAlpha := false

	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		pos.MakeMove(m)
		if pos.KingIsAttacked(us) {
			pos.UndoMove()
			continue
		}
		legalMoves++

		var score int
		reduced := depth >= 3 && legalMoves >= 4 && m.IsQuiet() && !inCheck
		if reduced {
			score = -s.negamax(pos, depth-2, ply+1, -alpha-1, -alpha)
			if score > alpha {
				score = -s.negamax(pos, depth-1, ply+1, -beta, -alpha)
			}
		} else {
			score = -s.negamax(pos, depth-1, ply+1, -beta, -alpha)
		}
		pos.UndoMove()

		if s.stopped {
			return alpha
		}

		if score > best {
			best = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			raisedAlpha = true
		}
		if alpha >= beta {
			if m.IsQuiet() {
				s.storeKiller(ply, m)
			}
			s.TT.Store(pos.Zobrist, m, depth, BoundLower, int32(beta))
			return beta
		}
	}

	if legalMoves == 0 {
		if inCheck {
			return ply - checkmateScore
		}
		return 0
	}

	bound := BoundUpper
	if raisedAlpha {
		bound = BoundExact
	}
	s.TT.Store(pos.Zobrist, bestMove, depth, bound, int32(best))
	return best
}

func (s *Searcher) storeKiller(ply int, m Move) {
	if s.killers[ply][0] == m {
		return
	}
	s.killers[ply][1] = s.killers[ply][0]
	s.killers[ply][0] = m
}

// orderMoves scores and sorts ml in place per spec §4.8 step 7: TT move
// first, then MVV-LVA captures (with a good-capture bonus), then
// promotions, then this ply's two killer slots.
func (s *Searcher) orderMoves(pos *Position, ml *MoveList, ttMove Move, ply int) {
	k0, k1 := s.killers[ply][0], s.killers[ply][1]
	ml.SortByScore(func(m Move) int32 {
		switch {
		case m == ttMove:
			return 1000000
		case m.IsCapture():
			return mvvLvaScore(pos, m)
		case m.IsPromotion():
			return 8000
		case m == k0:
			return 7000
		case m == k1:
			return 6000
		default:
			return 0
		}
	})
}

// quiescence extends the search over captures with a stand-pat cutoff, or
// over every legal move when the side to move is in check, bounded by a
// depth cap relative to the root depth so the horizon effect is tamed
// without an unbounded recursion.
func (s *Searcher) quiescence(pos *Position, ply, qDepth, qDepthCap, alpha, beta int) int {
	s.nodes++
	if s.timeUp() {
		s.stopped = true
		return alpha
	}

	// A side in check has no safe stand-pat: it may be mated, and captures
	// alone cannot be trusted to find every evasion, so every legal reply
	// is searched instead of only the violent ones.
	inCheck := pos.InCheck()

	var standPat int
	if !inCheck {
		standPat = Evaluate(pos, s.Params, s.PawnTable)
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
		if qDepth >= qDepthCap {
			return alpha
		}
	}

	var ml MoveList
	pos.GeneratePseudoLegal(&ml)
	if !inCheck {
		ml.Retain(func(m Move) bool { return m.IsCapture() })
	}
	ml.SortByScore(func(m Move) int32 { return mvvLvaScore(pos, m) })

	us := pos.ToMove
	legalMoves := 0
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		pos.MakeMove(m)
		if pos.KingIsAttacked(us) {
			pos.UndoMove()
			continue
		}
		legalMoves++
		score := -s.quiescence(pos, ply+1, qDepth+1, qDepthCap, -beta, -alpha)
		pos.UndoMove()

		if s.stopped {
			return alpha
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	if inCheck && legalMoves == 0 {
		return ply - checkmateScore
	}
	return alpha
}

// mvvLvaScore scores captures by most-valuable-victim-least-valuable-attacker
// (with a good-capture bonus), adds 8000 for promotions and returns 0 for
// other quiet moves; the TT move and killers are ranked by orderMoves.
func mvvLvaScore(pos *Position, m Move) int32 {
	if !m.IsCapture() {
		if pf := m.PromotionFigure(); pf != NoFigure {
			return 8000
		}
		return 0
	}
	attackerFig := pos.Get(m.From()).Figure()
	var victimFig Figure
	if m.Flag() == MoveEnPassant {
		victimFig = Pawn
	} else {
		victimFig = pos.Get(m.To()).Figure()
	}
	victim, attacker := mvvLvaValue[victimFig], mvvLvaValue[attackerFig]
	score := int32(10000 + 10*victim - attacker)
	if victim >= attacker {
		score += 5000
	}
	if m.IsPromotion() {
		score += 8000
	}
	return score
}
