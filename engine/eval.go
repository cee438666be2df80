package engine

// Evaluate returns a centipawn score from the side-to-move's perspective:
// (material + mobility + king safety + king-to-corner + pawn structure),
// tapered by phase and then sign-flipped for the side to move.
func Evaluate(pos *Position, params *EvalParams, pt *PawnTable) int {
	total := materialScore(pos, params).
		Plus(mobilityScore(pos, params)).
		Plus(kingSafetyScore(pos, params)).
		Plus(kingEdgeScore(pos, params)).
		Plus(pawnStructureScore(pos, params, pt))

	phase := pos.TaperedPhase()
	score := total.Taper(phase)
	return score * ColorWeight[pos.ToMove]
}

func materialScore(pos *Position, params *EvalParams) Score {
	var s Score
	for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
		white := pos.ByPiece(White, fig).Popcnt()
		black := pos.ByPiece(Black, fig).Popcnt()
		s.Add(white-black, params.PieceValue[fig])
	}
	return s
}

func mobilityScore(pos *Position, params *EvalParams) Score {
	var s Score
	occ := pos.Occupied()
	for _, co := range [2]Color{White, Black} {
		own := pos.ByColor[co]
		weight := ColorWeight[co]

		for bb := pos.ByPiece(co, Knight); bb != 0; {
			sq := bb.Pop()
			cnt := (KnightAttacks(sq) &^ own).Popcnt()
			s.Add(weight*cnt, params.MobilityWeight[Knight])
		}
		for bb := pos.ByPiece(co, Bishop); bb != 0; {
			sq := bb.Pop()
			cnt := (BishopAttacks(sq, occ) &^ own).Popcnt()
			s.Add(weight*cnt, params.MobilityWeight[Bishop])
		}
		for bb := pos.ByPiece(co, Rook); bb != 0; {
			sq := bb.Pop()
			cnt := (RookAttacks(sq, occ) &^ own).Popcnt()
			s.Add(weight*cnt, params.MobilityWeight[Rook])
		}
		for bb := pos.ByPiece(co, Queen); bb != 0; {
			sq := bb.Pop()
			cnt := (QueenAttacks(sq, occ) &^ own).Popcnt()
			s.Add(weight*cnt, params.MobilityWeight[Queen])
		}
		for bb := pos.ByPiece(co, King); bb != 0; {
			sq := bb.Pop()
			cnt := (KingAttacks(sq) &^ own).Popcnt()
			s.Add(weight*cnt, params.MobilityWeight[King])
		}
	}
	return s
}

// kingSafetyScore accumulates, for each side, the attack units contributed
// by enemy minor/major pieces hitting the king zone plus a pawn-shelter
// penalty, converts the total through the saturating kingSafetyTable, and
// returns it as a penalty (negative for the side whose king is exposed).
func kingSafetyScore(pos *Position, params *EvalParams) Score {
	var s Score
	occ := pos.Occupied()
	for _, co := range [2]Color{White, Black} {
		enemy := co.Other()
		weight := ColorWeight[co]

		kingSq := pos.KingSquare(co)
		zone := KingAttacks(kingSq) | kingSq.Bitboard()

		units := Score{}
		attackers := 0
		for _, fig := range [4]Figure{Knight, Bishop, Rook, Queen} {
			for bb := pos.ByPiece(enemy, fig); bb != 0; {
				sq := bb.Pop()
				var atk Bitboard
				switch fig {
				case Knight:
					atk = KnightAttacks(sq)
				case Bishop:
					atk = BishopAttacks(sq, occ)
				case Rook:
					atk = RookAttacks(sq, occ)
				case Queen:
					atk = QueenAttacks(sq, occ)
				}
				if hits := atk & zone; hits != 0 {
					n := hits.Popcnt()
					units.MG += params.AttackWeight[fig].MG * int32(n)
					units.EG += params.AttackWeight[fig].EG * int32(n)
					attackers++
				}
			}
		}
		if attackers >= 2 {
			units = units.Plus(params.TwoAttackerBonus)
		}
		if attackers >= 3 {
			units = units.Plus(params.MultipleAttackerBonus.Times(attackers - 1))
		}

		units = units.Plus(pawnShelterPenalty(pos, co, kingSq, params))

		penaltyMG := saturate(units.MG)
		penaltyEG := saturate(units.EG)
		s.Add(-weight, Score{penaltyMG, penaltyEG})
	}
	return s
}

func saturate(units int32) int32 {
	idx := units
	if idx < 0 {
		idx = 0
	}
	if idx >= int32(len(kingSafetyTable)) {
		idx = int32(len(kingSafetyTable) - 1)
	}
	return kingSafetyTable[idx]
}

// pawnShelterPenalty penalizes a missing or distant pawn shield on the
// king's file and its two adjacent files.
func pawnShelterPenalty(pos *Position, co Color, kingSq Square, params *EvalParams) Score {
	var total Score
	pawns := pos.ByPiece(co, Pawn)
	kingFile := kingSq.File()
	kingRank := kingSq.Rank()

	for f := kingFile - 1; f <= kingFile+1; f++ {
		if f < 0 || f > 7 {
			continue
		}
		fileBB := FileBb(f) & pawns
		if fileBB == 0 {
			total = total.Plus(params.NoPawnShieldPenalty)
			continue
		}
		closest := -1
		for bb := fileBB; bb != 0; {
			sq := bb.Pop()
			dist := sq.Rank() - kingRank
			if dist < 0 {
				dist = -dist
			}
			if closest == -1 || dist < closest {
				closest = dist
			}
		}
		if closest > 2 {
			total = total.Plus(params.FarPawnPenalty.Times(closest - 2))
		}
	}
	return total
}

func kingEdgeScore(pos *Position, params *EvalParams) Score {
	white := distanceToCorner(pos.KingSquare(White))
	black := distanceToCorner(pos.KingSquare(Black))
	return params.KingCenterBonus.Times(white - black)
}

func distanceToCorner(sq Square) int {
	f, r := sq.File(), sq.Rank()
	best := 7
	corners := [4][2]int{{0, 0}, {0, 7}, {7, 0}, {7, 7}}
	for _, c := range corners {
		df, dr := f-c[0], r-c[1]
		if df < 0 {
			df = -df
		}
		if dr < 0 {
			dr = -dr
		}
		d := df
		if dr > d {
			d = dr
		}
		if d < best {
			best = d
		}
	}
	return best
}

func pawnStructureScore(pos *Position, params *EvalParams, pt *PawnTable) Score {
	if pt != nil {
		if cached, ok := pt.Get(pos.PawnHash); ok {
			return cached
		}
	}
	s := pawnEvalSide(pos, White, params).Minus(pawnEvalSide(pos, Black, params))
	if pt != nil {
		pt.Put(pos.PawnHash, s)
	}
	return s
}

func pawnEvalSide(pos *Position, co Color, params *EvalParams) Score {
	pawns := pos.ByPiece(co, Pawn)
	if pawns == 0 {
		return Score{}
	}
	enemyPawns := pos.ByPiece(co.Other(), Pawn)

	var s Score
	var perFile [8]int
	type pawnPos struct {
		sq        Square
		rank, file int
	}
	var positions []pawnPos

	for bb := pawns; bb != 0; {
		sq := bb.Pop()
		rank, file := sq.Rank(), sq.File()
		perFile[file]++
		positions = append(positions, pawnPos{sq, rank, file})

		rankFromOwn := rank
		if co == Black {
			rankFromOwn = 7 - rank
		}
		advance := int32(1)
		if rankFromOwn > 1 {
			advance = int32(1) << uint(rankFromOwn-1)
		}
		s.MG += params.PawnAdvanceBonus.MG * advance
		s.EG += params.PawnAdvanceBonus.EG * advance
	}

	for _, p := range positions {
		if isPassedPawn(p.sq, co, enemyPawns) {
			rankFromOwn := p.rank
			if co == Black {
				rankFromOwn = 7 - p.rank
			}
			bonus := params.PassedPawnBase.Plus(params.PassedPawnRankBonus[rankFromOwn])
			if isProtectedPassedPawn(p.sq, co, pawns) {
				bonus = bonus.Plus(params.ProtectedPassedPawnBonus)
			}
			s = s.Plus(bonus)
		}
	}

	for file := 0; file < 8; file++ {
		cnt := perFile[file]
		if cnt == 0 {
			continue
		}
		if cnt >= 2 {
			s = s.Minus(params.DoubledPawnPenalty.Times((cnt - 1) * (cnt - 1)))
		}
		hasNeighbor := (file > 0 && perFile[file-1] > 0) || (file < 7 && perFile[file+1] > 0)
		if !hasNeighbor {
			s = s.Minus(params.IsolatedPawnPenalty)
		}
	}
	return s
}

// isPassedPawn reports whether no enemy pawn occupies sq's file or the two
// adjacent files on any rank ahead of sq (from co's perspective).
func isPassedPawn(sq Square, co Color, enemyPawns Bitboard) bool {
	file, rank := sq.File(), sq.Rank()
	var ahead Bitboard
	if co == White {
		for r := rank + 1; r < 8; r++ {
			ahead |= RankBb(r)
		}
	} else {
		for r := rank - 1; r >= 0; r-- {
			ahead |= RankBb(r)
		}
	}
	var files Bitboard
	for f := file - 1; f <= file+1; f++ {
		if f >= 0 && f <= 7 {
			files |= FileBb(f)
		}
	}
	return enemyPawns&ahead&files == 0
}

// isProtectedPassedPawn reports whether a friendly pawn defends sq
// diagonally from behind.
func isProtectedPassedPawn(sq Square, co Color, ownPawns Bitboard) bool {
	file, rank := sq.File(), sq.Rank()
	behindRank := rank - 1
	if co == Black {
		behindRank = rank + 1
	}
	if behindRank < 0 || behindRank > 7 {
		return false
	}
	var mask Bitboard
	if file > 0 {
		mask |= RankFile(behindRank, file-1).Bitboard()
	}
	if file < 7 {
		mask |= RankFile(behindRank, file+1).Bitboard()
	}
	return ownPawns&mask != 0
}
