package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// PositionFromFEN builds a Position from Forsyth-Edwards Notation: piece
// placement, side to move, castling rights, en-passant target, halfmove
// clock and fullmove number, space separated.
func PositionFromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen: need at least 4 fields, got %d: %q", len(fields), fen)
	}

	pos := NewPosition()
	pos.Phase = totalPhase

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen: need 8 ranks, got %d: %q", len(ranks), fields[0])
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range rankStr {
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			default:
				fig, ok := symbolToFigure[byte(toLowerByte(c))]
				if !ok {
					return nil, fmt.Errorf("fen: invalid piece symbol %q", c)
				}
				co := Black
				if c >= 'A' && c <= 'Z' {
					co = White
				}
				if file > 7 {
					return nil, fmt.Errorf("fen: rank %q overflows 8 files", rankStr)
				}
				pos.Put(RankFile(rank, file), ColorFigure(co, fig))
				file++
			}
		}
		if file != 8 {
			return nil, fmt.Errorf("fen: rank %q does not sum to 8 files", rankStr)
		}
	}

	switch fields[1] {
	case "w":
		pos.setSideToMove(White)
	case "b":
		pos.setSideToMove(Black)
	default:
		return nil, fmt.Errorf("fen: invalid side to move %q", fields[1])
	}

	var castle Castle
	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				castle |= WhiteOO
			case 'Q':
				castle |= WhiteOOO
			case 'k':
				castle |= BlackOO
			case 'q':
				castle |= BlackOOO
			default:
				return nil, fmt.Errorf("fen: invalid castling rights %q", fields[2])
			}
		}
	}
	pos.setCastle(castle)

	if fields[3] != "-" {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return nil, fmt.Errorf("fen: invalid en-passant square %q: %w", fields[3], err)
		}
		pos.setEnpassant(sq)
	}

	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("fen: invalid halfmove clock %q: %w", fields[4], err)
		}
		pos.HalfmoveClock = n
	}
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("fen: invalid fullmove number %q: %w", fields[5], err)
		}
		pos.FullmoveNumber = n
	} else {
		pos.FullmoveNumber = 1
	}

	return pos, nil
}

func toLowerByte(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// FEN renders pos back to Forsyth-Edwards Notation.
func (pos *Position) FEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pi := pos.pieceAt[RankFile(r, f)]
			if pi == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceSymbol(pi))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if pos.ToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(pos.Castle.String())

	sb.WriteByte(' ')
	if pos.Enpassant == SquareA1 {
		sb.WriteByte('-')
	} else {
		sb.WriteString(pos.Enpassant.String())
	}

	fmt.Fprintf(&sb, " %d %d", pos.HalfmoveClock, pos.FullmoveNumber)
	return sb.String()
}

func pieceSymbol(pi Piece) byte {
	return pieceToSymbol[pi]
}
