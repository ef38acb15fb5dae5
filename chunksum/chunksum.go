/*
Copyright 2011-2017 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package chunksum implements the chunk summarizer: given a bit range and
// a starting excess, it walks the range once and reports the excess at
// the end plus the min/max excess and min-count attained inside it. The
// parallel builder (rmmtree) runs one of these per chunk per worker; the
// forward-search engine (fwdsearch) reuses it to compute the true excess
// at an arbitrary query position.
package chunksum

import "github.com/flanglet/succinct-go/bitvector"

// Summary is the result of summarizing a bit range.
type Summary struct {
	ExcessAtEnd int
	Min         int
	Max         int
	MinCount    int
}

// Summarize walks bv[lo:hi), starting from excess e0, and returns the
// excess at hi along with the min, max and min-count of the excess over
// the range. Panics if lo >= hi (a chunk summary needs at least one bit).
func Summarize(bv bitvector.BitVector, lo, hi, e0 int) Summary {
	if lo >= hi {
		panic("chunksum: empty range")
	}

	partial := e0
	min := 0
	max := 0
	count := 0

	for p := lo; p < hi; p++ {
		if bv.GetBit(p) == 1 {
			partial++
		} else {
			partial--
		}

		if p == lo {
			min = partial
			max = partial
			count = 1
			continue
		}

		switch {
		case partial < min:
			min = partial
			count = 1
		case partial == min:
			count++
		}

		if partial > max {
			max = partial
		}
	}

	return Summary{ExcessAtEnd: partial, Min: min, Max: max, MinCount: count}
}
