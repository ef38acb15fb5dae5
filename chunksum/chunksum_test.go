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

package chunksum

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flanglet/succinct-go/bitvector"
)

func TestSummarizeMatchesNaive(t *testing.T) {
	bv := bitvector.NewFromParens("(()(()))(())")

	for lo := 0; lo < bv.Len(); lo++ {
		for hi := lo + 1; hi <= bv.Len(); hi++ {
			got := Summarize(bv, lo, hi, 3)

			wantExcess, wantMin, wantMax, wantCount := naive(bv, lo, hi, 3)

			require.Equal(t, wantExcess, got.ExcessAtEnd, "excess lo=%d hi=%d", lo, hi)
			require.Equal(t, wantMin, got.Min, "min lo=%d hi=%d", lo, hi)
			require.Equal(t, wantMax, got.Max, "max lo=%d hi=%d", lo, hi)
			require.Equal(t, wantCount, got.MinCount, "count lo=%d hi=%d", lo, hi)
		}
	}
}

func TestSummarizePanicsOnEmptyRange(t *testing.T) {
	bv := bitvector.NewFromParens("()")

	require.Panics(t, func() {
		Summarize(bv, 1, 1, 0)
	})
}

func naive(bv bitvector.BitVector, lo, hi, e0 int) (excess, min, max, count int) {
	partial := e0

	for p := lo; p < hi; p++ {
		if bv.GetBit(p) == 1 {
			partial++
		} else {
			partial--
		}

		if p == lo {
			min, max, count = partial, partial, 1
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

	return partial, min, max, count
}
