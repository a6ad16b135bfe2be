package ratings

import "math"

type DimensionAggregate struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type AggregateResult struct {
	Overall    float64                       `json:"overall"`
	Dimensions map[string]DimensionAggregate `json:"dimensions"`
}

// Aggregate computes the overall mean and the per-dimension means for a
// set of rating records, each rounded half-up to one decimal. An empty
// input yields overall 0 and an empty dimension map. Partial dimension
// sets are fine; ratings arrive one dimension at a time.
//
// No access control happens here: callers must have already restricted
// the input to ratings the viewer is allowed to see.
func Aggregate(rs []Rating) AggregateResult {
	result := AggregateResult{Dimensions: make(map[string]DimensionAggregate)}
	if len(rs) == 0 {
		return result
	}

	var total int
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range rs {
		total += r.Score
		sums[r.Dimension] += r.Score
		counts[r.Dimension]++
	}

	result.Overall = roundOneDecimal(float64(total) / float64(len(rs)))
	for dim, sum := range sums {
		result.Dimensions[dim] = DimensionAggregate{
			Average: roundOneDecimal(float64(sum) / float64(counts[dim])),
			Count:   counts[dim],
		}
	}
	return result
}

// roundOneDecimal rounds half-up at one decimal place: multiply by 10,
// round to nearest, divide by 10.
func roundOneDecimal(x float64) float64 {
	return math.Round(x*10) / 10
}
