// Package engine implements the bitboard position representation, magic
// move generator, evaluation and search that make up the corvid core.
package engine

import "fmt"

var errInvalidSquare = fmt.Errorf("invalid square")

// Square identifies one of the 64 squares on the board: square = rank*8+file,
// file 0=a..7=h, rank 0=rank-1..7=rank-8.
type Square uint8

// RankFile builds a Square from a 0..7 rank and file.
func RankFile(r, f int) Square {
	return Square(r*8 + f)
}

// SquareFromString parses an algebraic square such as "e4".
func SquareFromString(s string) (Square, error) {
	if len(s) != 2 {
		return SquareA1, errInvalidSquare
	}
	f, r := -1, -1
	if 'a' <= s[0] && s[0] <= 'h' {
		f = int(s[0] - 'a')
	}
	if '1' <= s[1] && s[1] <= '8' {
		r = int(s[1] - '1')
	}
	if f == -1 || r == -1 {
		return SquareA1, errInvalidSquare
	}
	return RankFile(r, f), nil
}

// Bitboard returns a bitboard with only this square set.
func (sq Square) Bitboard() Bitboard {
	return Bitboard(1) << uint(sq)
}

// Relative returns the square shifted by dr ranks and df files, without
// bounds checking.
func (sq Square) Relative(dr, df int) Square {
	return sq + Square(dr*8+df)
}

// Rank returns 0..7, the rank of the square (0 = rank 1).
func (sq Square) Rank() int { return int(sq / 8) }

// File returns 0..7, the file of the square (0 = file a).
func (sq Square) File() int { return int(sq % 8) }

func (sq Square) String() string {
	return string([]byte{byte(sq.File() + 'a'), byte(sq.Rank() + '1')})
}

// Figure is a colorless piece kind.
type Figure uint8

const (
	NoFigure Figure = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	FigureArraySize = int(iota)
	FigureMinValue  = Pawn
	FigureMaxValue  = King
)

// Color is White or Black.
type Color uint8

const (
	NoColor Color = iota
	White
	Black

	ColorArraySize = int(iota)
	ColorMinValue  = White
	ColorMaxValue  = Black
)

// ColorWeight gives the sign to apply to a side's score: +1 for White,
// -1 for Black.
var ColorWeight = [ColorArraySize]int{0, 1, -1}

// Other returns the opposing color.
func (c Color) Other() Color { return White + Black - c }

// Piece packs a Figure and a Color into one byte.
type Piece uint8

// ColorFigure builds a Piece from a color and figure.
func ColorFigure(co Color, fig Figure) Piece {
	return Piece(fig)<<2 + Piece(co)
}

// Color returns the piece's color.
func (pi Piece) Color() Color { return Color(pi & 3) }

// Figure returns the piece's figure.
func (pi Piece) Figure() Figure { return Figure(pi >> 2) }

// Bitboard is a 64-bit set of squares, bit i corresponding to Square(i).
type Bitboard uint64

// RankBb returns the bitboard of an entire rank (0..7).
func RankBb(rank int) Bitboard { return BbRank1 << uint(8*rank) }

// FileBb returns the bitboard of an entire file (0..7).
func FileBb(file int) Bitboard { return BbFileA << uint(file) }

// Popcnt returns the number of set bits.
func (bb Bitboard) Popcnt() int {
	return popcount64(uint64(bb))
}

// LSB returns a bitboard containing only the least significant set bit.
func (bb Bitboard) LSB() Bitboard { return bb & -bb }

// debrujin64 maps the index bit produced by the De Bruijn multiplier to a
// square number, used to turn a single-bit bitboard into its square in O(1).
var debrujin64 = [64]uint8{
	0, 1, 2, 7, 3, 13, 8, 19, 4, 25, 14, 28, 9, 34, 20, 40,
	5, 17, 26, 38, 15, 46, 29, 48, 10, 31, 35, 54, 21, 50, 41, 57,
	63, 6, 12, 18, 24, 27, 33, 39, 16, 37, 45, 47, 30, 53, 49, 56,
	62, 11, 23, 32, 36, 44, 52, 55, 61, 22, 43, 51, 60, 42, 59, 58,
}

const debrujinMul = 0x218A392CD3D5DBF

// AsSquare returns the square of a single-bit bitboard.
func (bb Bitboard) AsSquare() Square {
	return Square(debrujin64[(uint64(bb)*debrujinMul)>>58&0x3F])
}

// Pop clears and returns the least significant set square.
func (bb *Bitboard) Pop() Square {
	sq := bb.LSB()
	*bb -= sq
	return sq.AsSquare()
}

func popcount64(x uint64) int {
	c := 0
	for ; x > 0; c++ {
		x &= x - 1
	}
	return c
}

// Castle is a bitmask of the four castling rights.
type Castle uint8

const (
	WhiteOO Castle = 1 << iota
	WhiteOOO
	BlackOO
	BlackOOO

	NoCastle  Castle = 0
	AnyCastle Castle = WhiteOO | WhiteOOO | BlackOO | BlackOOO

	CastleArraySize = int(AnyCastle) + 1
)

func (ca Castle) String() string {
	if ca == 0 {
		return "-"
	}
	var r []byte
	if ca&WhiteOO != 0 {
		r = append(r, 'K')
	}
	if ca&WhiteOOO != 0 {
		r = append(r, 'Q')
	}
	if ca&BlackOO != 0 {
		r = append(r, 'k')
	}
	if ca&BlackOOO != 0 {
		r = append(r, 'q')
	}
	return string(r)
}
