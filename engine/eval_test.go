package engine

import "testing"

// TestEvaluateStartPositionIsBalanced checks that the evaluation of the
// symmetric starting position is exactly zero.
func TestEvaluateStartPositionIsBalanced(t *testing.T) {
	pos := StartPosition()
	pt := NewPawnTable()
	if got := Evaluate(pos, &DefaultParams, pt); got != 0 {
		t.Errorf("Evaluate(start) = %d, want 0", got)
	}
}

// TestEvaluateIsSideToMoveRelative checks that flipping the side to move in
// an otherwise-unchanged position negates the score, since Evaluate always
// reports the score from the mover's perspective.
func TestEvaluateIsSideToMoveRelative(t *testing.T) {
	white, err := PositionFromFEN("4k3/8/8/8/8/3QK3/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	black, err := PositionFromFEN("4k3/8/8/8/8/3QK3/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	pt := NewPawnTable()
	ws := Evaluate(white, &DefaultParams, pt)
	bs := Evaluate(black, &DefaultParams, pt)
	if ws != -bs {
		t.Errorf("Evaluate(white-to-move) = %d, Evaluate(black-to-move) = %d; want negatives of each other", ws, bs)
	}
}

// TestEvaluateMirrorSymmetry checks that mirroring a position's ranks and
// swapping the colors of all pieces and the side to move leaves the
// side-to-move score unchanged, since the evaluation has no inherent color
// bias.
func TestEvaluateMirrorSymmetry(t *testing.T) {
	fen := "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"
	mirrored := "rnbqkb1r/pppp1ppp/5n2/4p3/4P3/2N5/PPPP1PPP/R1BQKBNR b KQkq - 2 3"
	pos, err := PositionFromFEN(fen)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	mir, err := PositionFromFEN(mirrored)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	pt := NewPawnTable()
	a := Evaluate(pos, &DefaultParams, pt)
	b := Evaluate(mir, &DefaultParams, pt)
	if a != b {
		t.Errorf("color-mirrored positions scored %d and %d, want equal", a, b)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	pos, err := PositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	pt := NewPawnTable()
	a := Evaluate(pos, &DefaultParams, pt)
	b := Evaluate(pos, &DefaultParams, pt)
	if a != b {
		t.Errorf("Evaluate is not stationary: got %d then %d for the same position", a, b)
	}
}
