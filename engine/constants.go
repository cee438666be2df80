package engine

// Square constants, named a1..h8.
const (
	SquareA1 Square = iota
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
	SquareA2
	SquareB2
	SquareC2
	SquareD2
	SquareE2
	SquareF2
	SquareG2
	SquareH2
	SquareA3
	SquareB3
	SquareC3
	SquareD3
	SquareE3
	SquareF3
	SquareG3
	SquareH3
	SquareA4
	SquareB4
	SquareC4
	SquareD4
	SquareE4
	SquareF4
	SquareG4
	SquareH4
	SquareA5
	SquareB5
	SquareC5
	SquareD5
	SquareE5
	SquareF5
	SquareG5
	SquareH5
	SquareA6
	SquareB6
	SquareC6
	SquareD6
	SquareE6
	SquareF6
	SquareG6
	SquareH6
	SquareA7
	SquareB7
	SquareC7
	SquareD7
	SquareE7
	SquareF7
	SquareG7
	SquareH7
	SquareA8
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8

	SquareArraySize = int(iota)
	SquareMinValue  = SquareA1
	SquareMaxValue  = SquareH8
)

// Piece constants, must stay in sync with ColorFigure.
const (
	NoPiece        = Piece(0)
	PieceArraySize = Piece(FigureArraySize << 2)
)

const (
	WhitePawn Piece = Piece(iota+Pawn)<<2 + Piece(White)
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
)

const (
	BlackPawn Piece = Piece(iota+Pawn)<<2 + Piece(Black)
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
)

const (
	BbEmpty          Bitboard = 0
	BbFull           Bitboard = 0xffffffffffffffff
	BbFileA          Bitboard = 0x0101010101010101
	BbFileH          Bitboard = BbFileA << 7
	BbRank1          Bitboard = 0xff
	BbRank2          Bitboard = BbRank1 << 8
	BbRank3          Bitboard = BbRank1 << 16
	BbRank4          Bitboard = BbRank1 << 24
	BbRank5          Bitboard = BbRank1 << 32
	BbRank6          Bitboard = BbRank1 << 40
	BbRank7          Bitboard = BbRank1 << 48
	BbRank8          Bitboard = BbRank1 << 56
	BbPawnStartRank  Bitboard = BbRank2 | BbRank7
	BbPawnDoubleRank Bitboard = BbRank4 | BbRank5
)

// pieceToSymbol maps a Piece to its FEN letter; index 0 (NoPiece) is '.'.
// Piece packs as fig<<2+color, White=1 and Black=2, so each figure occupies
// two consecutive slots, uppercase (White) first.
var pieceToSymbol = ".????Pp??Nn??Bb??Rr??Qq??Kk?"

// symbolToFigure maps a FEN piece/promotion letter to a Figure.
var symbolToFigure = map[byte]Figure{
	'p': Pawn, 'P': Pawn,
	'n': Knight, 'N': Knight,
	'b': Bishop, 'B': Bishop,
	'r': Rook, 'R': Rook,
	'q': Queen, 'Q': Queen,
	'k': King, 'K': King,
}

// FENStartPos is the standard chess starting position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// lostCastleRights[sq] is the set of castling rights lost whenever a piece
// moves from or to sq (rook/king leaving home, or a rook captured at home).
var lostCastleRights [SquareArraySize]Castle

func init() {
	lostCastleRights[SquareA1] = WhiteOOO
	lostCastleRights[SquareE1] = WhiteOOO | WhiteOO
	lostCastleRights[SquareH1] = WhiteOO
	lostCastleRights[SquareA8] = BlackOOO
	lostCastleRights[SquareE8] = BlackOOO | BlackOO
	lostCastleRights[SquareH8] = BlackOO
}
