package engine

// Move is a 16-bit packed move: bits 0-5 = to, bits 6-11 = from,
// bits 12-15 = flag.
type Move uint16

// Move flags.
const (
	MoveQuiet        = 0
	MoveDoublePush   = 1
	MoveCastleKing   = 2
	MoveCastleQueen  = 3
	MoveCapture      = 4
	MoveEnPassant    = 5
	MovePromoKnight  = 8
	MovePromoBishop  = 9
	MovePromoRook    = 10
	MovePromoQueen   = 11
	MoveCapPromoKN   = 12
	MoveCapPromoBI   = 13
	MoveCapPromoRO   = 14
	MoveCapPromoQU   = 15
)

// NullMove is the zero move, used as a sentinel for "no move".
const NullMove Move = 0

// NewMove packs from, to and flag into a Move.
func NewMove(from, to Square, flag uint16) Move {
	return Move(uint16(to) | uint16(from)<<6 | flag<<12)
}

// To returns the destination square.
func (m Move) To() Square { return Square(m & 0x3f) }

// From returns the origin square.
func (m Move) From() Square { return Square((m >> 6) & 0x3f) }

// Flag returns the 4-bit move flag.
func (m Move) Flag() uint16 { return uint16(m>>12) & 0xf }

// IsCapture reports whether the move captures a piece (including en
// passant and capture-promotions).
func (m Move) IsCapture() bool {
	f := m.Flag()
	return f == MoveCapture || f == MoveEnPassant || f >= MoveCapPromoKN
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	f := m.Flag()
	return f >= MovePromoKnight && f != MoveCapture && f != MoveEnPassant
}

// PromotionFigure returns the figure a pawn promotes to, or NoFigure.
func (m Move) PromotionFigure() Figure {
	switch m.Flag() {
	case MovePromoKnight, MoveCapPromoKN:
		return Knight
	case MovePromoBishop, MoveCapPromoBI:
		return Bishop
	case MovePromoRook, MoveCapPromoRO:
		return Rook
	case MovePromoQueen, MoveCapPromoQU:
		return Queen
	}
	return NoFigure
}

// IsCastle reports whether the move is a castling move.
func (m Move) IsCastle() bool {
	f := m.Flag()
	return f == MoveCastleKing || f == MoveCastleQueen
}

// IsQuiet reports whether the move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// String renders the move in UCI notation, e.g. "e2e4", "a7a8q".
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if pf := m.PromotionFigure(); pf != NoFigure {
		s += string(pieceToSymbol[ColorFigure(Black, pf)])
	}
	return s
}

// MaxMoves bounds the size of a MoveList: no legal chess position has more
// than 218 legal moves.
const MaxMoves = 256

// MoveList is a fixed-capacity move buffer used on the search hot path to
// avoid heap traffic.
type MoveList struct {
	moves [MaxMoves]Move
	n     int
}

// Len returns the number of moves currently stored.
func (ml *MoveList) Len() int { return ml.n }

// Clear empties the list.
func (ml *MoveList) Clear() { ml.n = 0 }

// Push appends a move. Silently drops the move if the list is full (cannot
// happen for a legal chess position, see MaxMoves).
func (ml *MoveList) Push(m Move) {
	if ml.n < MaxMoves {
		ml.moves[ml.n] = m
		ml.n++
	}
}

// At returns the move at index i.
func (ml *MoveList) At(i int) Move { return ml.moves[i] }

// Set overwrites the move at index i.
func (ml *MoveList) Set(i int, m Move) { ml.moves[i] = m }

// RemoveAt removes the move at index i by swapping in the last element.
func (ml *MoveList) RemoveAt(i int) {
	ml.n--
	ml.moves[i] = ml.moves[ml.n]
}

// InsertFront inserts m at index 0, shifting the rest back.
func (ml *MoveList) InsertFront(m Move) {
	if ml.n >= MaxMoves {
		return
	}
	copy(ml.moves[1:ml.n+1], ml.moves[0:ml.n])
	ml.moves[0] = m
	ml.n++
}

// Retain keeps only the moves for which keep returns true, compacting the
// list in place.
func (ml *MoveList) Retain(keep func(Move) bool) {
	w := 0
	for r := 0; r < ml.n; r++ {
		if keep(ml.moves[r]) {
			ml.moves[w] = ml.moves[r]
			w++
		}
	}
	ml.n = w
}

// SortByScore reorders moves in place, descending by score, using a stable
// insertion sort (move lists are short, so this beats sort.Slice's overhead).
func (ml *MoveList) SortByScore(score func(Move) int32) {
	scores := make([]int32, ml.n)
	for i := 0; i < ml.n; i++ {
		scores[i] = score(ml.moves[i])
	}
	for i := 1; i < ml.n; i++ {
		m, s := ml.moves[i], scores[i]
		j := i - 1
		for j >= 0 && scores[j] < s {
			ml.moves[j+1] = ml.moves[j]
			scores[j+1] = scores[j]
			j--
		}
		ml.moves[j+1] = m
		scores[j+1] = s
	}
}
