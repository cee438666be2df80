package tuner

import (
	"strings"
	"testing"

	"github.com/corvidchess/corvid/engine"
)

const toyCorpus = `rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 [0.5]
8/8/8/8/8/8/6k1/R5K1 w - - 0 1 [1.0]
8/6K1/8/8/8/8/8/r5k1 w - - 0 1 [0.0]
# a comment line should be skipped
not a fen at all [0.5]
rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1 [0.5]
`

func TestLoadPositionsSkipsBadLines(t *testing.T) {
	positions, err := loadPositions(strings.NewReader(toyCorpus), 100)
	if err != nil {
		t.Fatalf("loadPositions: %v", err)
	}
	// 6 lines, one comment and one unparseable FEN, leaving 4.
	if len(positions) != 4 {
		t.Fatalf("loadPositions returned %d positions, want 4", len(positions))
	}
	if positions[0].Result != 0.5 {
		t.Errorf("first position result = %v, want 0.5", positions[0].Result)
	}
}

func TestLoadPositionsRespectsMax(t *testing.T) {
	positions, err := loadPositions(strings.NewReader(toyCorpus), 2)
	if err != nil {
		t.Fatalf("loadPositions: %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("loadPositions returned %d positions, want 2 (bounded by max)", len(positions))
	}
}

func TestComputeErrorIsNonNegative(t *testing.T) {
	positions, err := loadPositions(strings.NewReader(toyCorpus), 100)
	if err != nil {
		t.Fatalf("loadPositions: %v", err)
	}
	tu := NewTuner(positions)
	if got := tu.computeError(); got < 0 {
		t.Errorf("computeError = %v, want >= 0", got)
	}
}

// TestTuneNeverIncreasesFinalError checks that running a handful of epochs
// never leaves the error worse than where it started, since Tune only
// keeps coefficient steps that improve on the base error.
func TestTuneNeverIncreasesFinalError(t *testing.T) {
	positions, err := loadPositions(strings.NewReader(toyCorpus), 100)
	if err != nil {
		t.Fatalf("loadPositions: %v", err)
	}
	tu := NewTuner(positions)
	before := tu.computeError()
	tu.Tune(20, nil)
	after := tu.computeError()
	if after > before {
		t.Errorf("error increased after tuning: %v -> %v", before, after)
	}
}

func TestSlotsCoverDefaultParams(t *testing.T) {
	tu := NewTuner(nil)
	slots := tu.slots()
	if len(slots) == 0 {
		t.Fatalf("expected a non-empty tunable parameter vector")
	}
	for _, sl := range slots {
		if sl.value == nil {
			t.Errorf("slot %q has a nil value pointer", sl.name)
		}
	}
}

func TestSigmoidIsBoundedAndMonotonic(t *testing.T) {
	if s := sigmoid(0); s != 0.5 {
		t.Errorf("sigmoid(0) = %v, want 0.5", s)
	}
	if sigmoid(1000) <= sigmoid(0) {
		t.Errorf("sigmoid should be increasing")
	}
	if sigmoid(-1000) >= sigmoid(0) {
		t.Errorf("sigmoid should be increasing")
	}
}

var _ = engine.DefaultParams // sanity: engine package is reachable from tuner tests
