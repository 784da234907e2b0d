package mockdata

import "math"

// Pick returns items[floor(r*len)] for one draw r. items must be non-empty.
func Pick[T any](items []T, src Source) T {
	return items[index(src.Float64(), len(items))]
}

// PickWeighted walks the cumulative weights in order and returns the first
// item whose running total reaches the draw. When float drift leaves the
// total short of the draw the last item is returned. Missing weights count as zero.
func PickWeighted[T any](items []T, weights []float64, src Source) T {
	r := src.Float64()
	var zero T
	if len(items) == 0 {
		return zero
	}

	cumulative := 0.0
	for i, item := range items {
		if i < len(weights) {
			cumulative += weights[i]
		}
		if r <= cumulative {
			return item
		}
	}
	return items[len(items)-1]
}

// index maps a draw in [0, 1) to [0, n), guarding against r rounding to 1.
func index(r float64, n int) int {
	i := int(math.Floor(float64(r * float64(n))))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// scaled returns floor(r*span + base). The explicit conversion keeps the
// compiler from fusing the multiply-add, which would change the rounding.
func scaled(r, span, base float64) int {
	return int(math.Floor(float64(r*span) + base))
}
