// Package zigzag reduces a noisy close series into an alternating
// sequence of valley/peak pivots, the percentage-deviation reduction
// SPEC_FULL §4.3 builds every pattern family's structure on top of.
package zigzag

import "patterncore/internal/model"

// direction tracks which extreme the running candidate is chasing.
type direction int

const (
	dirUnknown direction = iota
	dirUp
	dirDown
)

// Extract runs the ZigZag reduction over close with deviation d expressed
// as a fraction (0.03 == 3%). extendToLastBar and extensionFactor control
// the trailing provisional pivot described in §4.3.
func Extract(close []float64, d float64, extendToLastBar bool, extensionFactor float64) []model.Pivot {
	n := len(close)
	if n == 0 || d <= 0 {
		return nil
	}

	var pivots []model.Pivot

	dir := dirUnknown
	candidateIdx := 0
	candidatePrice := close[0]
	highIdx, highPrice := 0, close[0]

	for i := 1; i < n; i++ {
		price := close[i]

		switch dir {
		case dirUnknown:
			// still searching for the first confirmed direction: the
			// candidate holds the lowest close so far, highIdx/highPrice the
			// highest, and whichever reversal reaches d first wins.
			upMove := (price - candidatePrice) / candidatePrice
			downMove := (highPrice - price) / highPrice
			switch {
			case upMove >= d:
				pivots = append(pivots, model.Pivot{Idx: candidateIdx, Price: candidatePrice, Kind: model.Valley})
				dir = dirUp
				candidateIdx, candidatePrice = i, price
			case downMove >= d:
				pivots = append(pivots, model.Pivot{Idx: highIdx, Price: highPrice, Kind: model.Peak})
				dir = dirDown
				candidateIdx, candidatePrice = i, price
			case price > highPrice:
				highIdx, highPrice = i, price
			case price < candidatePrice:
				candidateIdx, candidatePrice = i, price
			}

		case dirUp:
			if price > candidatePrice {
				candidateIdx, candidatePrice = i, price
				continue
			}
			reversal := (candidatePrice - price) / candidatePrice
			if reversal >= d {
				pivots = appendPivot(pivots, model.Pivot{Idx: candidateIdx, Price: candidatePrice, Kind: model.Peak})
				dir = dirDown
				candidateIdx, candidatePrice = i, price
			}

		case dirDown:
			if price < candidatePrice {
				candidateIdx, candidatePrice = i, price
				continue
			}
			reversal := (price - candidatePrice) / candidatePrice
			if reversal >= d {
				pivots = appendPivot(pivots, model.Pivot{Idx: candidateIdx, Price: candidatePrice, Kind: model.Valley})
				dir = dirUp
				candidateIdx, candidatePrice = i, price
			}
		}
	}

	if extendToLastBar && dir != dirUnknown && len(pivots) > 0 {
		last := close[n-1]
		lastPivot := pivots[len(pivots)-1]
		dev := abs(last-lastPivot.Price) / lastPivot.Price
		if dev >= extensionFactor*d {
			kind := model.Peak
			if dir == dirDown {
				kind = model.Valley
			}
			if n-1 != lastPivot.Idx {
				pivots = append(pivots, model.Pivot{Idx: n - 1, Price: last, Kind: kind})
			}
		}
	}

	return pivots
}

// appendPivot enforces the tie-breaking rule of §4.3: a new pivot sharing
// the index of the last emitted one replaces it only if its kind
// alternates with the pivot before that (or, failing that, if its price
// is more extreme).
func appendPivot(pivots []model.Pivot, p model.Pivot) []model.Pivot {
	if len(pivots) == 0 {
		return append(pivots, p)
	}
	last := pivots[len(pivots)-1]
	if last.Idx != p.Idx {
		return append(pivots, p)
	}

	// Same bar produced two candidate pivots. Prefer whichever kind
	// alternates against the pivot preceding `last`; if that doesn't
	// settle it, keep the more extreme price.
	alternatesWithPrior := true
	if len(pivots) >= 2 {
		prior := pivots[len(pivots)-2]
		alternatesWithPrior = p.Kind != prior.Kind
	}
	if alternatesWithPrior {
		pivots[len(pivots)-1] = p
		return pivots
	}

	if p.Kind == model.Peak && p.Price > last.Price {
		pivots[len(pivots)-1] = p
	} else if p.Kind == model.Valley && p.Price < last.Price {
		pivots[len(pivots)-1] = p
	}
	return pivots
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
