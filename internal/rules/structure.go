package rules

import (
	"patterncore/internal/mathutil"
	"patterncore/internal/model"
)

// Structure checks that pivots alternate in the exact kind sequence a
// family requires (e.g. P-V-P-V-P-V-P for an inverse head & shoulders).
func Structure(pivots []model.Pivot, expected []model.PivotKind) Result {
	if len(pivots) != len(expected) {
		return fail("pivot count does not match expected structure length")
	}
	for i, p := range pivots {
		if p.Kind != expected[i] {
			return fail("pivot kind mismatch at position in structure")
		}
	}
	for i := 1; i < len(pivots); i++ {
		if pivots[i].Idx <= pivots[i-1].Idx {
			return fail("pivot indices not strictly increasing")
		}
	}
	return pass()
}

// BaseTrend checks the head & shoulders base pivot p0 lies strictly
// beyond both neckline anchors, with no tolerance: below them for a
// standard (topping) pattern, above them for an inverse (bottoming) one.
func BaseTrend(p0, necklineLeft, necklineRight model.Pivot, inverse bool) Result {
	if inverse {
		if p0.Price > necklineLeft.Price && p0.Price > necklineRight.Price {
			return pass()
		}
		return fail("base pivot is not strictly above both neckline anchors")
	}
	if p0.Price < necklineLeft.Price && p0.Price < necklineRight.Price {
		return pass()
	}
	return fail("base pivot is not strictly below both neckline anchors")
}

// HeadExtremity checks the head pivot is the most extreme of the three
// peaks (or troughs) that make up a head & shoulders.
func HeadExtremity(leftShoulder, head, rightShoulder model.Pivot, inverse bool) Result {
	if inverse {
		if head.Price < leftShoulder.Price && head.Price < rightShoulder.Price {
			return pass()
		}
		return fail("head is not the lowest of the three troughs")
	}
	if head.Price > leftShoulder.Price && head.Price > rightShoulder.Price {
		return pass()
	}
	return fail("head is not the highest of the three peaks")
}

// ShoulderSymmetry checks the two shoulders sit within tolerance of each
// other, relative to the mean shoulder height off the neckline.
func ShoulderSymmetry(shoulderLeft, shoulderRight model.Pivot, meanShoulderHeight, tolerance float64) Result {
	if mathutil.Within(shoulderLeft.Price, shoulderRight.Price, meanShoulderHeight, tolerance) {
		return pass()
	}
	return fail("shoulders differ by more than the symmetry tolerance")
}
