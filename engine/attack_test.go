package engine

import "testing"

// TestRookAttacksSymmetric checks attack-set symmetry: if a rook on sq1
// attacks sq2 through a given occupancy, a rook on sq2 attacks sq1 through
// the same occupancy (sliding attacks are symmetric relations).
func TestRookAttacksSymmetric(t *testing.T) {
	occ := SquareD4.Bitboard() | SquareD6.Bitboard() | SquareA4.Bitboard() | SquareG4.Bitboard()
	for sq1 := SquareMinValue; sq1 <= SquareMaxValue; sq1++ {
		attacks := RookAttacks(sq1, occ)
		for bb := attacks; bb != 0; {
			sq2 := bb.Pop()
			if RookAttacks(sq2, occ)&sq1.Bitboard() == 0 {
				t.Errorf("rook on %s attacks %s but not vice versa", sq1, sq2)
			}
		}
	}
}

func TestBishopAttacksSymmetric(t *testing.T) {
	occ := SquareD4.Bitboard() | SquareF6.Bitboard() | SquareB2.Bitboard()
	for sq1 := SquareMinValue; sq1 <= SquareMaxValue; sq1++ {
		attacks := BishopAttacks(sq1, occ)
		for bb := attacks; bb != 0; {
			sq2 := bb.Pop()
			if BishopAttacks(sq2, occ)&sq1.Bitboard() == 0 {
				t.Errorf("bishop on %s attacks %s but not vice versa", sq1, sq2)
			}
		}
	}
}

// TestRookAttacksBlockedBySingleOccupant checks that a slider's attack set
// stops at (and includes) the first occupied square in each direction.
func TestRookAttacksBlockedBySingleOccupant(t *testing.T) {
	occ := SquareD1.Bitboard() | SquareD6.Bitboard()
	attacks := RookAttacks(SquareD4, occ)
	want := []Square{SquareD5, SquareD6, SquareD3, SquareD2, SquareD1, SquareA4, SquareB4, SquareC4, SquareE4, SquareF4, SquareG4, SquareH4}
	for _, sq := range want {
		if attacks&sq.Bitboard() == 0 {
			t.Errorf("expected rook on d4 to attack %s", sq)
		}
	}
	if attacks&SquareD7.Bitboard() != 0 {
		t.Errorf("rook on d4 should not see past the blocker on d6")
	}
}

func TestKnightAttacksCornerHasTwoTargets(t *testing.T) {
	attacks := KnightAttacks(SquareA1)
	if attacks.Popcnt() != 2 {
		t.Errorf("knight on a1 should attack exactly 2 squares, got %d", attacks.Popcnt())
	}
}

func TestKingIsAttackedMatchesSquareIsAttackedBy(t *testing.T) {
	pos, err := PositionFromFEN("4k3/8/8/8/8/4r3/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	if !pos.KingIsAttacked(White) {
		t.Errorf("white king on e1 should be in check from the rook on e3")
	}
	if pos.KingIsAttacked(Black) {
		t.Errorf("black king on e8 should not be in check")
	}
}
