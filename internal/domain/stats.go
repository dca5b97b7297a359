package domain

import "math"

// NaN-aware reductions over a day's rows. Missing values never contribute;
// a column with no data at all yields NaN (or 0 for sums, matching the
// "no rain measured" reading of an empty sum).

func nanSum(rows []Reading, m Measure) float64 {
	var sum float64
	for _, r := range rows {
		if v := r.Value(m); !math.IsNaN(v) {
			sum += v
		}
	}
	return sum
}

func nanMean(rows []Reading, m Measure) float64 {
	var sum float64
	var n int
	for _, r := range rows {
		if v := r.Value(m); !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

func nanMin(rows []Reading, m Measure) float64 {
	best := math.NaN()
	for _, r := range rows {
		v := r.Value(m)
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(best) || v < best {
			best = v
		}
	}
	return best
}

func nanMax(rows []Reading, m Measure) float64 {
	best := math.NaN()
	for _, r := range rows {
		v := r.Value(m)
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(best) || v > best {
			best = v
		}
	}
	return best
}
