package tuner

import (
	"fmt"
	"io"
	"math"
	"runtime"
	"sync"

	"github.com/corvidchess/corvid/engine"
)

// Tuner runs Texel-style coordinate descent: at each epoch, every tunable
// coefficient is perturbed by ±delta, the resulting MSE against the
// labeled corpus is measured, and the step is kept only if it reduces
// error beyond the current learning rate.
type Tuner struct {
	Positions    []TrainingPosition
	Params       engine.EvalParams
	LearningRate float64
	K            float64
}

// NewTuner builds a Tuner seeded with the engine's default parameters, the
// sigmoid scale K (default 1.4, matching the reference tuner's baseline)
// and a starting learning rate of 0.1.
func NewTuner(positions []TrainingPosition) *Tuner {
	return &Tuner{
		Positions:    positions,
		Params:       engine.DefaultParams,
		LearningRate: 0.1,
		K:            1.4,
	}
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x/200.0))
}

// computeError returns the mean squared error of sigmoid(K*eval) against
// the labeled result, evaluated with the tuner's current parameters and
// split across runtime.NumCPU() goroutines — the direct equivalent of the
// reference tuner's rayon par_iter sample reduction.
func (t *Tuner) computeError() float64 {
	positions := t.Positions
	n := len(positions)
	if n == 0 {
		return 0
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers

	partial := make([]float64, workers)
	var wg sync.WaitGroup
	params := t.Params // immutable snapshot read by every worker
	k := t.K

	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			pt := engine.NewPawnTable()
			var sum float64
			for i := lo; i < hi; i++ {
				p := positions[i]
				// Evaluate is side-to-move relative; Result is from White's side.
				eval := engine.Evaluate(p.Pos, &params, pt) * engine.ColorWeight[p.Pos.ToMove]
				predicted := sigmoid(k * float64(eval))
				diff := predicted - p.Result
				sum += diff * diff
			}
			partial[w] = sum
		}(w, lo, hi)
	}
	wg.Wait()

	var total float64
	for _, s := range partial {
		total += s
	}
	return total / float64(n)
}

// slot names one tunable coefficient by a direct pointer into Params, so
// perturbation and restoration never need a string-keyed field lookup.
type slot struct {
	name  string
	value *int32
	delta int32
}

func (t *Tuner) slots() []slot {
	p := &t.Params
	s := []slot{
		{"pawn.mg", &p.PieceValue[engine.Pawn].MG, 1},
		{"pawn.eg", &p.PieceValue[engine.Pawn].EG, 1},
		{"knight.mg", &p.PieceValue[engine.Knight].MG, 3},
		{"knight.eg", &p.PieceValue[engine.Knight].EG, 3},
		{"bishop.mg", &p.PieceValue[engine.Bishop].MG, 3},
		{"bishop.eg", &p.PieceValue[engine.Bishop].EG, 3},
		{"rook.mg", &p.PieceValue[engine.Rook].MG, 5},
		{"rook.eg", &p.PieceValue[engine.Rook].EG, 5},
		{"queen.mg", &p.PieceValue[engine.Queen].MG, 9},
		{"queen.eg", &p.PieceValue[engine.Queen].EG, 9},
	}
	for _, fig := range []engine.Figure{engine.Knight, engine.Bishop, engine.Rook, engine.Queen, engine.King} {
		s = append(s,
			slot{"mobility.mg", &p.MobilityWeight[fig].MG, 1},
			slot{"mobility.eg", &p.MobilityWeight[fig].EG, 1},
		)
	}
	s = append(s,
		slot{"king_center.mg", &p.KingCenterBonus.MG, 1},
		slot{"king_center.eg", &p.KingCenterBonus.EG, 1},
		slot{"doubled_pawn.mg", &p.DoubledPawnPenalty.MG, 1},
		slot{"doubled_pawn.eg", &p.DoubledPawnPenalty.EG, 1},
		slot{"isolated_pawn.mg", &p.IsolatedPawnPenalty.MG, 1},
		slot{"isolated_pawn.eg", &p.IsolatedPawnPenalty.EG, 1},
		slot{"pawn_advance.mg", &p.PawnAdvanceBonus.MG, 1},
		slot{"pawn_advance.eg", &p.PawnAdvanceBonus.EG, 1},
		slot{"passed_pawn.mg", &p.PassedPawnBase.MG, 1},
		slot{"passed_pawn.eg", &p.PassedPawnBase.EG, 1},
	)
	for rank := 1; rank <= 6; rank++ {
		s = append(s,
			slot{fmt.Sprintf("pp_rank_%d.mg", rank+1), &p.PassedPawnRankBonus[rank].MG, 1},
			slot{fmt.Sprintf("pp_rank_%d.eg", rank+1), &p.PassedPawnRankBonus[rank].EG, 1},
		)
	}
	s = append(s,
		slot{"protected_passed.mg", &p.ProtectedPassedPawnBonus.MG, 1},
		slot{"protected_passed.eg", &p.ProtectedPassedPawnBonus.EG, 1},
		slot{"two_attacker.mg", &p.TwoAttackerBonus.MG, 1},
		slot{"two_attacker.eg", &p.TwoAttackerBonus.EG, 1},
		slot{"multiple_attacker.mg", &p.MultipleAttackerBonus.MG, 1},
		slot{"multiple_attacker.eg", &p.MultipleAttackerBonus.EG, 1},
	)
	for _, fig := range []engine.Figure{engine.Knight, engine.Bishop, engine.Rook, engine.Queen} {
		s = append(s,
			slot{"attack_weight.mg", &p.AttackWeight[fig].MG, 1},
			slot{"attack_weight.eg", &p.AttackWeight[fig].EG, 1},
		)
	}
	s = append(s,
		slot{"no_pawn_shield.mg", &p.NoPawnShieldPenalty.MG, 1},
		slot{"no_pawn_shield.eg", &p.NoPawnShieldPenalty.EG, 1},
		slot{"far_pawn.mg", &p.FarPawnPenalty.MG, 1},
		slot{"far_pawn.eg", &p.FarPawnPenalty.EG, 1},
	)
	return s
}

// gradientDescentStep evaluates the numerical gradient of each coefficient
// and applies a ±1 step when the improving direction beats the current
// learning rate and also improves on the base error, matching the
// reference tuner's update rule.
func (t *Tuner) gradientDescentStep() {
	baseError := t.computeError()

	for _, sl := range t.slots() {
		original := *sl.value

		*sl.value = original + sl.delta
		posError := t.computeError()

		*sl.value = original - sl.delta
		negError := t.computeError()

		gradient := (posError - negError) / (2 * float64(sl.delta))

		newValue := original
		switch {
		case gradient > t.LearningRate && negError < baseError:
			newValue = original - 1
		case gradient < -t.LearningRate && posError < baseError:
			newValue = original + 1
		}
		*sl.value = newValue
	}
}

// Tune runs up to epochs rounds of gradient descent, stopping early when
// an epoch yields exactly zero improvement and decaying the learning rate
// by 0.9 whenever an epoch makes things worse.
func (t *Tuner) Tune(epochs int, progress func(epoch int, before, after float64)) {
	for epoch := 0; epoch < epochs; epoch++ {
		before := t.computeError()
		t.gradientDescentStep()
		after := t.computeError()

		if progress != nil {
			progress(epoch, before, after)
		}

		if before-after == 0 {
			return
		}
		if after > before {
			t.LearningRate *= 0.9
		}
	}
}

// PrintParams writes the current value of every tunable coefficient, one
// per line, for pasting back into a DefaultParams literal.
func (t *Tuner) PrintParams(w io.Writer) {
	for _, sl := range t.slots() {
		fmt.Fprintf(w, "%s = %d\n", sl.name, *sl.value)
	}
}
