package engine

import "fmt"

// Position encodes the chess board: the eight bitboards (two color
// occupancies in ByColor, six piece-type occupancies in ByFigure[1:7]),
// side to move, castling rights, en-passant square, clocks and the
// incrementally maintained Zobrist/pawn hashes, phase and material score.
type Position struct {
	ByFigure [FigureArraySize]Bitboard
	ByColor  [ColorArraySize]Bitboard

	ToMove         Color
	Castle         Castle
	Enpassant      Square // SquareA1 when not set, mirroring the teacher's sentinel
	HalfmoveClock  int
	FullmoveNumber int

	Zobrist  uint64
	PawnHash uint64
	Phase    int // 0 = opening .. totalPhase = endgame, rescaled to 0..255 by TaperedPhase
	Material Score

	// pieceAt is a per-square cache redundant with ByFigure/ByColor,
	// maintained alongside them in Put/Remove so make/unmake never has to
	// scan all bitboards to identify the mover or captured piece.
	pieceAt [SquareArraySize]Piece

	stateStack   []undoState
	moveStack    []Move
	captureStack []Piece
	history      []uint64 // zobrist hash before each move played, for repetition detection
}

type undoState struct {
	castle   Castle
	ep       Square
	halfmove int
	zobrist  uint64
	pawnHash uint64
	phase    int
	material Score
}

// Phase weights: how much of totalPhase each piece removes when captured.
const (
	totalPhase   = 24
	knightPhase  = 1
	bishopPhase  = 1
	rookPhase    = 2
	queenPhase   = 4
)

var figurePhase = [FigureArraySize]int{0, 0, knightPhase, bishopPhase, rookPhase, queenPhase, 0}

// NewPosition returns an empty position with White to move and Enpassant
// unset (SquareA1, the teacher's convention: a1 can never be a legal
// en-passant target so it doubles as "none").
func NewPosition() *Position {
	pos := &Position{
		ToMove:    White,
		Enpassant: SquareA1,
		Phase:     totalPhase,
	}
	// setCastle/setSideToMove XOR a key's old value out before XORing the
	// new one in, so the zero state itself must be folded into Zobrist up
	// front: without this, every position's hash would be missing the
	// contribution of "White to move, no castling rights".
	pos.Zobrist ^= zobristColor[White]
	pos.Zobrist ^= zobristCastle[NoCastle]
	return pos
}

// StartPosition returns the standard chess starting position.
func StartPosition() *Position {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		panic(err)
	}
	return pos
}

// ByPiece is a shortcut for ByColor[col]&ByFigure[fig].
func (pos *Position) ByPiece(col Color, fig Figure) Bitboard {
	return pos.ByColor[col] & pos.ByFigure[fig]
}

// Occupied returns the union of all pieces on the board.
func (pos *Position) Occupied() Bitboard {
	return pos.ByColor[White] | pos.ByColor[Black]
}

// IsEmpty reports whether sq has no piece.
func (pos *Position) IsEmpty(sq Square) bool {
	return pos.pieceAt[sq] == NoPiece
}

// Get returns the piece at sq, or NoPiece.
func (pos *Position) Get(sq Square) Piece {
	return pos.pieceAt[sq]
}

// KingSquare returns the square of co's king.
func (pos *Position) KingSquare(co Color) Square {
	return pos.ByPiece(co, King).AsSquare()
}

// Put places piece pi on sq. Does not validate input or check for an
// existing occupant; callers must Remove first if sq is occupied.
func (pos *Position) Put(sq Square, pi Piece) {
	pos.Zobrist ^= zobristPiece[pi][sq]
	bb := sq.Bitboard()
	pos.ByColor[pi.Color()] |= bb
	pos.ByFigure[pi.Figure()] |= bb
	pos.pieceAt[sq] = pi
	pos.Material.Add(ColorWeight[pi.Color()], figureValue[pi.Figure()])
	pos.Phase -= figurePhase[pi.Figure()]
	if pi.Figure() == Pawn {
		pos.PawnHash ^= zobristPiece[pi][sq]
	}
}

// Remove takes piece pi off sq. pi must match pos.Get(sq).
func (pos *Position) Remove(sq Square, pi Piece) {
	pos.Zobrist ^= zobristPiece[pi][sq]
	bb := ^sq.Bitboard()
	pos.ByColor[pi.Color()] &= bb
	pos.ByFigure[pi.Figure()] &= bb
	pos.pieceAt[sq] = NoPiece
	pos.Material.Add(-ColorWeight[pi.Color()], figureValue[pi.Figure()])
	pos.Phase += figurePhase[pi.Figure()]
	if pi.Figure() == Pawn {
		pos.PawnHash ^= zobristPiece[pi][sq]
	}
}

func (pos *Position) setCastle(ca Castle) {
	pos.Zobrist ^= zobristCastle[pos.Castle]
	pos.Castle = ca
	pos.Zobrist ^= zobristCastle[pos.Castle]
}

func (pos *Position) setSideToMove(co Color) {
	pos.Zobrist ^= zobristColor[pos.ToMove]
	pos.ToMove = co
	pos.Zobrist ^= zobristColor[pos.ToMove]
}

func (pos *Position) setEnpassant(sq Square) {
	if pos.Enpassant != SquareA1 {
		pos.Zobrist ^= zobristEnpassant[pos.Enpassant.File()]
	}
	pos.Enpassant = sq
	if pos.Enpassant != SquareA1 {
		pos.Zobrist ^= zobristEnpassant[pos.Enpassant.File()]
	}
}

// TaperedPhase rescales Phase (0..totalPhase) into the 0..255 scale used by
// Score.Taper (0 = opening, 255 = endgame).
func (pos *Position) TaperedPhase() int {
	p := pos.Phase
	if p < 0 {
		p = 0
	}
	if p > totalPhase {
		p = totalPhase
	}
	return (p*255 + totalPhase/2) / totalPhase
}

// rookCastleSquares returns the rook's piece, origin and destination for a
// castling move whose king lands on kingTo.
func rookCastleSquares(kingTo Square) (Piece, Square, Square) {
	switch kingTo {
	case SquareG1:
		return WhiteRook, SquareH1, SquareF1
	case SquareC1:
		return WhiteRook, SquareA1, SquareD1
	case SquareG8:
		return BlackRook, SquareH8, SquareF8
	case SquareC8:
		return BlackRook, SquareA8, SquareD8
	}
	panic(fmt.Errorf("invalid castling king destination %v", kingTo))
}

// MakeMove applies move m, assumed pseudo-legal, in this order: save undo
// state and push the pre-move hash onto the repetition history, update
// castling rights, resolve capture, move the piece, handle
// promotion/en-passant/castling, update en-passant, update the halfmove
// clock and fullmove number, flip side to move, then push the move onto
// the move stack.
func (pos *Position) MakeMove(m Move) {
	pos.stateStack = append(pos.stateStack, undoState{
		castle:   pos.Castle,
		ep:       pos.Enpassant,
		halfmove: pos.HalfmoveClock,
		zobrist:  pos.Zobrist,
		pawnHash: pos.PawnHash,
		phase:    pos.Phase,
		material: pos.Material,
	})
	pos.history = append(pos.history, pos.Zobrist)

	from, to, flag := m.From(), m.To(), m.Flag()
	mover := pos.pieceAt[from]

	pos.setCastle(pos.Castle &^ lostCastleRights[from] &^ lostCastleRights[to])

	captureSq := to
	if flag == MoveEnPassant {
		captureSq = RankFile(from.Rank(), to.File())
	}
	if m.IsCapture() {
		captured := pos.pieceAt[captureSq]
		pos.Remove(captureSq, captured)
		pos.captureStack = append(pos.captureStack, captured)
	}

	pos.Remove(from, mover)
	if pf := m.PromotionFigure(); pf != NoFigure {
		pos.Put(to, ColorFigure(pos.ToMove, pf))
	} else {
		pos.Put(to, mover)
	}

	if flag == MoveCastleKing || flag == MoveCastleQueen {
		rook, rFrom, rTo := rookCastleSquares(to)
		pos.Remove(rFrom, rook)
		pos.Put(rTo, rook)
	}

	if flag == MoveDoublePush {
		pos.setEnpassant((from + to) / 2)
	} else {
		pos.setEnpassant(SquareA1)
	}

	if m.IsCapture() || mover.Figure() == Pawn {
		pos.HalfmoveClock = 0
	} else {
		pos.HalfmoveClock++
	}

	if pos.ToMove == Black {
		pos.FullmoveNumber++
	}
	pos.setSideToMove(pos.ToMove.Other())

	pos.moveStack = append(pos.moveStack, m)
}

// UndoMove reverses the last move made by MakeMove.
func (pos *Position) UndoMove() {
	n := len(pos.moveStack) - 1
	m := pos.moveStack[n]
	pos.moveStack = pos.moveStack[:n]
	pos.history = pos.history[:len(pos.history)-1]

	st := pos.stateStack[len(pos.stateStack)-1]
	pos.stateStack = pos.stateStack[:len(pos.stateStack)-1]

	pos.setSideToMove(pos.ToMove.Other())
	if pos.ToMove == Black {
		pos.FullmoveNumber--
	}

	from, to, flag := m.From(), m.To(), m.Flag()
	moved := pos.pieceAt[to]

	if flag == MoveCastleKing || flag == MoveCastleQueen {
		rook, rFrom, rTo := rookCastleSquares(to)
		pos.Remove(rTo, rook)
		pos.Put(rFrom, rook)
	}

	pos.Remove(to, moved)
	if pf := m.PromotionFigure(); pf != NoFigure {
		pos.Put(from, ColorFigure(pos.ToMove, Pawn))
	} else {
		pos.Put(from, moved)
	}

	if len(pos.captureStack) > 0 && m.IsCapture() {
		capt := pos.captureStack[len(pos.captureStack)-1]
		pos.captureStack = pos.captureStack[:len(pos.captureStack)-1]
		captureSq := to
		if flag == MoveEnPassant {
			captureSq = RankFile(from.Rank(), to.File())
		}
		pos.Put(captureSq, capt)
	}

	pos.Castle = st.castle
	pos.Enpassant = st.ep
	pos.HalfmoveClock = st.halfmove
	pos.Zobrist = st.zobrist
	pos.PawnHash = st.pawnHash
	pos.Phase = st.phase
	pos.Material = st.material
}

// MakeNullMove flips the side to move without playing a move; legal only
// when the side to move is not in check (the caller must enforce this).
func (pos *Position) MakeNullMove() {
	pos.stateStack = append(pos.stateStack, undoState{
		castle:   pos.Castle,
		ep:       pos.Enpassant,
		halfmove: pos.HalfmoveClock,
		zobrist:  pos.Zobrist,
		pawnHash: pos.PawnHash,
		phase:    pos.Phase,
		material: pos.Material,
	})
	pos.history = append(pos.history, pos.Zobrist)
	pos.setEnpassant(SquareA1)
	pos.setSideToMove(pos.ToMove.Other())
	pos.moveStack = append(pos.moveStack, NullMove)
}

// UndoNullMove reverses MakeNullMove.
func (pos *Position) UndoNullMove() {
	n := len(pos.moveStack) - 1
	pos.moveStack = pos.moveStack[:n]
	pos.history = pos.history[:len(pos.history)-1]
	st := pos.stateStack[len(pos.stateStack)-1]
	pos.stateStack = pos.stateStack[:len(pos.stateStack)-1]
	pos.setSideToMove(pos.ToMove.Other())
	pos.Castle = st.castle
	pos.Enpassant = st.ep
	pos.HalfmoveClock = st.halfmove
	pos.Zobrist = st.zobrist
	pos.PawnHash = st.pawnHash
	pos.Phase = st.phase
	pos.Material = st.material
}

// LastMove returns the most recently played move, or NullMove if none.
func (pos *Position) LastMove() Move {
	if len(pos.moveStack) == 0 {
		return NullMove
	}
	return pos.moveStack[len(pos.moveStack)-1]
}

// IsPawnEndgame reports whether the side to move has only pawns and a king
// left, the definition this engine uses for null-move pruning's
// is_pawn_endgame guard (spec's Open Question (a), resolved here).
func (pos *Position) IsPawnEndgame() bool {
	co := pos.ToMove
	return pos.ByPiece(co, Knight)|pos.ByPiece(co, Bishop)|
		pos.ByPiece(co, Rook)|pos.ByPiece(co, Queen) == 0
}

// IsRepetition reports whether the current Zobrist hash has occurred at
// least twice before in the game's history (so this occurrence is the
// third), i.e. a 3-fold repetition draw.
func (pos *Position) IsRepetition() bool {
	count := 0
	for _, h := range pos.history {
		if h == pos.Zobrist {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// IsDraw reports whether the position is drawn by the 50-move rule or
// 3-fold repetition.
func (pos *Position) IsDraw() bool {
	return pos.HalfmoveClock >= 100 || pos.IsRepetition()
}

// ResetHistory clears the undo/repetition stacks, e.g. on ucinewgame.
func (pos *Position) ResetHistory() {
	pos.stateStack = pos.stateStack[:0]
	pos.moveStack = pos.moveStack[:0]
	pos.captureStack = pos.captureStack[:0]
	pos.history = pos.history[:0]
}
