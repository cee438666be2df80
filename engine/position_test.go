package engine

import "testing"

func recomputeZobrist(pos *Position) uint64 {
	var h uint64
	for sq := SquareMinValue; sq <= SquareMaxValue; sq++ {
		if pi := pos.Get(sq); pi != NoPiece {
			h ^= zobristPiece[pi][sq]
		}
	}
	h ^= zobristColor[pos.ToMove]
	h ^= zobristCastle[pos.Castle]
	if pos.Enpassant != SquareA1 {
		h ^= zobristEnpassant[pos.Enpassant.File()]
	}
	return h
}

func recomputePawnHash(pos *Position) uint64 {
	var h uint64
	for sq := SquareMinValue; sq <= SquareMaxValue; sq++ {
		if pi := pos.Get(sq); pi != NoPiece && pi.Figure() == Pawn {
			h ^= zobristPiece[pi][sq]
		}
	}
	return h
}

func TestStartPositionZobristMatchesFromScratch(t *testing.T) {
	pos := StartPosition()
	if got, want := pos.Zobrist, recomputeZobrist(pos); got != want {
		t.Errorf("Zobrist = %x, want %x", got, want)
	}
	if got, want := pos.PawnHash, recomputePawnHash(pos); got != want {
		t.Errorf("PawnHash = %x, want %x", got, want)
	}
}

// TestMakeUnmakeRoundTrip plays every legal move from a handful of
// positions and checks that UndoMove restores the board, side to move,
// castling rights, en-passant square and Zobrist hash exactly.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		pos, err := PositionFromFEN(fen)
		if err != nil {
			t.Fatalf("PositionFromFEN(%q): %v", fen, err)
		}
		before := *pos
		var ml MoveList
		pos.GenerateLegal(&ml)
		for i := 0; i < ml.Len(); i++ {
			m := ml.At(i)
			pos.MakeMove(m)
			pos.UndoMove()
			if pos.Zobrist != before.Zobrist {
				t.Errorf("%s: move %s left Zobrist %x, want %x", fen, m, pos.Zobrist, before.Zobrist)
			}
			if pos.ToMove != before.ToMove || pos.Castle != before.Castle || pos.Enpassant != before.Enpassant {
				t.Errorf("%s: move %s did not restore side/castle/ep state", fen, m)
			}
			for sq := SquareMinValue; sq <= SquareMaxValue; sq++ {
				if pos.Get(sq) != before.Get(sq) {
					t.Fatalf("%s: move %s left square %s as %v, want %v", fen, m, sq, pos.Get(sq), before.Get(sq))
				}
			}
		}
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/8/8/8/8/8/8/4K2k w - - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
	}
	for _, fen := range fens {
		pos, err := PositionFromFEN(fen)
		if err != nil {
			t.Fatalf("PositionFromFEN(%q): %v", fen, err)
		}
		if got := pos.FEN(); got != fen {
			t.Errorf("FEN round trip: got %q, want %q", got, fen)
		}
	}
}

func TestNewPositionZobristIncludesNullState(t *testing.T) {
	pos := NewPosition()
	want := zobristColor[White] ^ zobristCastle[NoCastle]
	if pos.Zobrist != want {
		t.Errorf("NewPosition Zobrist = %x, want %x (White-to-move, no-castle baseline)", pos.Zobrist, want)
	}
}

// TestThreefoldRepetitionIsDraw shuffles knights back and forth until the
// starting position has recurred three times and checks IsDraw catches it.
func TestThreefoldRepetitionIsDraw(t *testing.T) {
	pos := StartPosition()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	for _, token := range shuffle {
		m, ok := pos.ParseMove(token)
		if !ok {
			t.Fatalf("move %s should be legal", token)
		}
		pos.MakeMove(m)
	}
	if !pos.IsRepetition() {
		t.Errorf("expected threefold repetition after shuffling knights back and forth twice")
	}
	if !pos.IsDraw() {
		t.Errorf("expected IsDraw to report true under threefold repetition")
	}
}
