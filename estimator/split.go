// SPDX-License-Identifier: MIT

package estimator

import (
	"math"
	"math/rand/v2"
	"slices"
)

// Parts holds row indices per part, each sorted ascending. Validation is
// empty for TrainTest splits.
type Parts struct {
	Train      []int
	Validation []int
	Test       []int
}

// Split partitions n rows by a seeded permutation.
//
// Part sizes follow ratio, rounded to the nearest row; the train part takes
// the remainder. Every part must end up non-empty.
func Split(n int, st SplitType, ratio []float64, seed uint64) (Parts, error) {
	cfg := Config{Outcome: Continuous, Epochs: 1, Split: st, Ratio: ratio}
	if err := validateConfig(cfg); err != nil {
		return Parts{}, estimatorErrorf(opSplit, err)
	}
	ratio = cfg.ratio()

	var total float64
	for _, r := range ratio {
		total += r
	}
	sizes := make([]int, len(ratio))
	rest := n
	for k := 1; k < len(ratio); k++ {
		sizes[k] = int(math.Round(float64(n) * ratio[k] / total))
		rest -= sizes[k]
	}
	sizes[0] = rest
	for k, s := range sizes {
		if s < 1 {
			return Parts{}, estimatorErrorf(opSplit, invalid("%d rows with ratio %v leave part %d empty", n, ratio, k))
		}
	}

	perm := rand.New(rand.NewPCG(seed, seed)).Perm(n)
	var p Parts
	p.Train = sorted(perm[:sizes[0]])
	off := sizes[0]
	if st == TrainValidationTest {
		p.Validation = sorted(perm[off : off+sizes[1]])
		off += sizes[1]
	}
	p.Test = sorted(perm[off:])

	return p, nil
}

// selection returns the part used for early comparison of runs.
func (p Parts) selection() []int {
	if len(p.Validation) > 0 {
		return p.Validation
	}

	return p.Test
}

func sorted(idx []int) []int {
	out := slices.Clone(idx)
	slices.Sort(out)

	return out
}
