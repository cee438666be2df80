package engine

// EvalParams is the full set of tunable evaluation coefficients, threaded
// explicitly through Evaluate instead of the module-level mutable globals
// the distilled source favoured — the tuner mutates a private copy and the
// search never touches it concurrently.
type EvalParams struct {
	PieceValue [FigureArraySize]Score // material value per figure

	MobilityWeight [FigureArraySize]Score // per attacked square, knight/bishop/rook/queen/king

	KingCenterBonus Score // per unit of Chebyshev distance-to-corner difference

	DoubledPawnPenalty  Score
	IsolatedPawnPenalty Score
	PawnAdvanceBonus    Score
	PassedPawnBase      Score
	// PassedPawnRankBonus is indexed by rank-from-own-side, 0..7 (0 and 7
	// unused: a pawn can't be passed on its own back rank or already
	// promoted).
	PassedPawnRankBonus    [8]Score
	ProtectedPassedPawnBonus Score

	TwoAttackerBonus       Score
	MultipleAttackerBonus  Score
	AttackWeight           [FigureArraySize]Score // knight/bishop/rook/queen contribution per king-zone hit
	NoPawnShieldPenalty    Score
	FarPawnPenalty         Score
}

// DefaultParams are the baseline evaluation coefficients, carried over
// from the reference tuner's TunableParams::baseline() and used both as
// the engine's out-of-the-box weights and the tuner's starting point.
var DefaultParams = EvalParams{
	PieceValue: [FigureArraySize]Score{
		{0, 0},
		{65, 95},
		{322, 317},
		{365, 338},
		{461, 650},
		{1100, 1009},
		{100000, 100000},
	},
	MobilityWeight: [FigureArraySize]Score{
		{0, 0}, {0, 0},
		{9, 10},
		{7, 11},
		{5, 5},
		{0, 11},
		{-10, 12},
	},
	KingCenterBonus:     Score{0, 20},
	DoubledPawnPenalty:  Score{1, 1},
	IsolatedPawnPenalty: Score{6, 8},
	PawnAdvanceBonus:    Score{1, 3},
	PassedPawnBase:      Score{20, 20},
	PassedPawnRankBonus: [8]Score{
		{0, 0},
		{5, 5},
		{10, 10},
		{20, 20},
		{35, 35},
		{60, 60},
		{100, 100},
		{0, 0},
	},
	ProtectedPassedPawnBonus: Score{10, 10},
	TwoAttackerBonus:         Score{3, 1},
	MultipleAttackerBonus:    Score{5, 1},
	AttackWeight: [FigureArraySize]Score{
		{0, 0}, {0, 0},
		{2, 1},
		{1, 1},
		{2, 1},
		{5, 1},
		{0, 0},
	},
	NoPawnShieldPenalty: Score{9, 0},
	FarPawnPenalty:      Score{3, 1},
}

// kingSafetyTable converts accumulated king-attack units to a saturating
// centipawn penalty, carried over verbatim from the reference tuner's
// KING_SAFETY_TABLE (reaches its 500 cap at index 61 and stays there).
var kingSafetyTable = [100]int32{
	0, 0, 1, 2, 3, 5, 7, 9, 12, 15,
	18, 22, 26, 30, 35, 39, 44, 50, 56, 62,
	68, 75, 82, 85, 89, 97, 105, 113, 122, 131,
	140, 150, 169, 180, 191, 202, 213, 225, 237, 248,
	260, 272, 283, 295, 307, 319, 330, 342, 354, 366,
	377, 389, 401, 412, 424, 436, 448, 459, 471, 483,
	494, 500, 500, 500, 500, 500, 500, 500, 500, 500,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500,
}
