package scoring

// Pure scoring rules. No state, no side effects: the same play result
// always produces the same score, and every path clamps so a malformed or
// replayed client payload cannot mint an unbounded score.

// HardCap bounds any single game's score when the content payload does
// not declare its own cap.
const HardCap = 500

// Quiz counts answers matching the correct index for the content version
// the player was actually served. Out-of-range answer slots score zero.
func Quiz(answers []int, correct []int, pointsPerAnswer int) int {
	hits := 0
	for i, answer := range answers {
		if i >= len(correct) {
			break
		}
		if answer == correct[i] {
			hits++
		}
	}
	return hits * pointsPerAnswer
}

// UnitRule scores games measured in completed units (words found, pieces
// placed, clues solved).
type UnitRule struct {
	PointsPerUnit int
	UnitsMax      int // total units in the puzzle; 0 if unknown
	Cap           int // explicit payload cap; 0 means derive
	Bonus         int // flat bonus applied on top, also clamped
	Hard          int // operator ceiling; 0 means HardCap
}

// EffectiveCap is the explicit payload cap, else units × points, bounded
// in every case by the operator's hard ceiling.
func (r UnitRule) EffectiveCap() int {
	hard := r.Hard
	if hard <= 0 {
		hard = HardCap
	}
	capValue := hard
	if r.Cap > 0 {
		capValue = r.Cap
	} else if r.UnitsMax > 0 && r.PointsPerUnit > 0 {
		capValue = r.UnitsMax * r.PointsPerUnit
	}
	if capValue > hard {
		capValue = hard
	}
	return capValue
}

// Units computes clamp(0, cap, completed × pointsPerUnit + bonus).
func Units(completed int, rule UnitRule) int {
	score := completed*rule.PointsPerUnit + rule.Bonus
	return clamp(score, 0, rule.EffectiveCap())
}

// LegacyPoints maps a raw points value from the legacy submit endpoint to
// a bounded integer score. hardCap of 0 means HardCap.
func LegacyPoints(points float64, hardCap int) int {
	if points < 0 {
		return 0
	}
	if hardCap <= 0 {
		hardCap = HardCap
	}
	score := int(points) // floor for non-negative input
	return clamp(score, 0, hardCap)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
