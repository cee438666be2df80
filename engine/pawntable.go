package engine

// pawnTableSize is fixed at 2^20 entries (spec's resource bound), unlike
// the main transposition table which is sized from the UCI Hash option.
const pawnTableSize = 1 << 20

type pawnEntry struct {
	key   uint64
	valid bool
	score Score
}

// PawnTable caches the pawn-structure subscore of Evaluate, keyed by
// Position.PawnHash, so repeated positions with identical pawn skeletons
// (common across a search tree) skip the O(pawns) recomputation.
type PawnTable struct {
	entries [pawnTableSize]pawnEntry
}

// NewPawnTable returns an empty pawn hash table.
func NewPawnTable() *PawnTable {
	return &PawnTable{}
}

func (pt *PawnTable) index(key uint64) uint64 {
	return key & (pawnTableSize - 1)
}

// Get returns the cached pawn-structure score for key, if present.
func (pt *PawnTable) Get(key uint64) (Score, bool) {
	e := &pt.entries[pt.index(key)]
	if e.valid && e.key == key {
		return e.score, true
	}
	return Score{}, false
}

// Put stores the pawn-structure score for key.
func (pt *PawnTable) Put(key uint64, score Score) {
	e := &pt.entries[pt.index(key)]
	e.key = key
	e.valid = true
	e.score = score
}

// Clear empties the table.
func (pt *PawnTable) Clear() {
	for i := range pt.entries {
		pt.entries[i] = pawnEntry{}
	}
}
