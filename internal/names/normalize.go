package names

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange is returned when the target range is inverted
var ErrInvalidRange = errors.New("invalid weight range")

// Weights maps a name to its display weight
type Weights map[string]int

// Normalize rescales counts linearly into [lo, hi]:
//
//	lo + (count-min)/(max-min) * (hi-lo), rounded to the nearest integer
//
// When every count is equal the span is zero and every name gets lo.
func Normalize(freq Frequencies, lo, hi int) (Weights, error) {
	if lo > hi {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, lo, hi)
	}
	minCount, maxCount, ok := freq.MinMax()
	if !ok {
		return nil, ErrNoNames
	}

	w := make(Weights, len(freq))
	span := float64(maxCount - minCount)
	for name, count := range freq {
		if span == 0 {
			w[name] = lo
			continue
		}
		ratio := float64(count-minCount) / span
		w[name] = lo + int(math.Round(ratio*float64(hi-lo)))
	}
	return w, nil
}

// Frequencies converts weights back to a term→value map for the renderer
func (w Weights) Frequencies() Frequencies {
	f := make(Frequencies, len(w))
	for k, v := range w {
		f[k] = v
	}
	return f
}
