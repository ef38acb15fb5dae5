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

// Package rmmtree implements the RMM-tree index math and the parallel
// builder that fills it from a balanced-parentheses bit sequence.
package rmmtree

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"

	"github.com/flanglet/succinct-go/bitvector"
	"github.com/flanglet/succinct-go/chunksum"
)

// Tree is the built RMM-tree: the implicit binary-tree index math plus
// the summary arrays it operates over. It is immutable once Build
// returns and safe for concurrent read-only queries.
type Tree struct {
	E          []int16 // leaves only, length ChunkCount: global excess at end of chunk c
	M          []int16 // length Internal+ChunkCount: min excess, global-relative
	Mx         []int16 // length Internal+ChunkCount: max excess, global-relative
	N          []int16 // length Internal+ChunkCount: count attaining the min
	ChunkCount int
	Height     int
	Internal   int
}

// BuildError reports a construction-time failure (input no larger than a
// single chunk).
type BuildError struct {
	Msg string
}

func (this *BuildError) Error() string {
	return this.Msg
}

// Build partitions bv into ChunkBits-sized chunks and runs the four-pass
// parallel construction. Passes 1 and 3 use at most `workers` goroutines;
// pass 4 runs one goroutine per parallel subtree, i.e. `workers` rounded up
// to a power of two (capped at 2^Height). Fails when bv.Len() <= ChunkBits.
func Build(bv bitvector.BitVector, workers int) (*Tree, error) {
	n := bv.Len()

	if n <= ChunkBits {
		return nil, &BuildError{Msg: fmt.Sprintf("input too small: n=%v must exceed chunk size %v", n, ChunkBits)}
	}

	if workers < 1 {
		workers = 1
	}

	chunkCount, height, internal := chunkShape(n)

	t := &Tree{
		E:          make([]int16, chunkCount),
		M:          make([]int16, internal+chunkCount),
		Mx:         make([]int16, internal+chunkCount),
		N:          make([]int16, internal+chunkCount),
		ChunkCount: chunkCount,
		Height:     height,
		Internal:   internal,
	}

	slices := partitionSlices(chunkCount, workers)
	log.Debug("rmmtree: building", "n", n, "chunks", chunkCount, "workers", len(slices), "height", height)

	if err := t.pass1LocalSummaries(bv, slices); err != nil {
		return nil, err
	}

	t.pass2BoundaryFixup(slices)

	if err := t.pass3Broadcast(slices); err != nil {
		return nil, err
	}

	if err := t.pass4InternalFill(workers); err != nil {
		return nil, err
	}

	return t, nil
}

// chunkSlice is one worker's contiguous, disjoint range of chunk indices.
type chunkSlice struct {
	start, end int // chunk indices [start, end)
}

func (s chunkSlice) last() int {
	return s.end - 1
}

// partitionSlices splits chunkCount chunks across at most `workers` workers
// of chunks_per_worker = ceil(chunkCount/workers) chunks each, clamped so
// every worker owns at least one chunk.
func partitionSlices(chunkCount, workers int) []chunkSlice {
	if workers > chunkCount {
		workers = chunkCount
	}

	cpw := (chunkCount + workers - 1) / workers
	var slices []chunkSlice

	for start := 0; start < chunkCount; start += cpw {
		end := start + cpw
		if end > chunkCount {
			end = chunkCount
		}

		slices = append(slices, chunkSlice{start: start, end: end})
	}

	return slices
}

// pass1LocalSummaries summarizes each worker's chunk slice independently,
// written as if the worker started at excess 0.
func (this *Tree) pass1LocalSummaries(bv bitvector.BitVector, slices []chunkSlice) error {
	var g errgroup.Group

	for _, s := range slices {
		s := s

		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("rmmtree: pass 1 panic: %v", r)
				}
			}()

			local := 0

			for c := s.start; c < s.end; c++ {
				lo := c * ChunkBits
				hi := lo + ChunkBits

				if hi > bv.Len() {
					hi = bv.Len()
				}

				sum := chunksum.Summarize(bv, lo, hi, local)
				this.E[c] = int16(sum.ExcessAtEnd)
				leaf := this.LeafIndex(c)
				this.M[leaf] = int16(sum.Min)
				this.Mx[leaf] = int16(sum.Max)
				this.N[leaf] = int16(sum.MinCount)
				local = sum.ExcessAtEnd
			}

			return nil
		})
	}

	return g.Wait()
}

// pass2BoundaryFixup sequentially folds each worker slice's local excess
// into the next, except for the last slice — the loop bound is
// intentionally t in [1, len(slices)-2]; the last slice's boundary is
// left for pass 3 to absorb via its inherited delta.
func (this *Tree) pass2BoundaryFixup(slices []chunkSlice) {
	for t := 1; t <= len(slices)-2; t++ {
		this.E[slices[t].last()] += this.E[slices[t-1].last()]
	}
}

// pass3Broadcast adds each slice's inherited global excess delta to every
// chunk it owns.
func (this *Tree) pass3Broadcast(slices []chunkSlice) error {
	if len(slices) <= 1 {
		return nil
	}

	var g errgroup.Group
	last := len(slices) - 1

	for t := 1; t < len(slices); t++ {
		t := t

		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("rmmtree: pass 3 panic: %v", r)
				}
			}()

			delta := int16(this.E[slices[t-1].last()])
			s := slices[t]

			for c := s.start; c < s.end; c++ {
				if c != s.last() || t == last {
					this.E[c] += delta
				}

				leaf := this.LeafIndex(c)
				this.M[leaf] += delta
				this.Mx[leaf] += delta
			}

			return nil
		})
	}

	return g.Wait()
}

// pass4InternalFill fills internal nodes bottom-up: an errgroup of
// independent subtrees from height-1 down to the parallel split level, then
// a sequential fill of the remaining top levels.
func (this *Tree) pass4InternalFill(workers int) error {
	if this.Internal == 0 {
		return nil
	}

	pLevel := 0

	for (1 << uint(pLevel)) < workers {
		pLevel++
	}

	if pLevel > this.Height {
		pLevel = this.Height
	}

	subtrees := 1 << uint(pLevel)

	// empty[v] marks an internal node that has no real leaf anywhere in
	// its subtree (possible when ChunkCount isn't a power of two: the
	// rightmost internal nodes at the deepest level can end up with both
	// children beyond TotalLen). combine() consults a child's own entry
	// before merging it in, so an empty node's zero-valued defaults never
	// get treated as real data by its parent. Each goroutine below only
	// ever writes entries belonging to its own disjoint subtree.
	empty := make([]bool, this.Internal)

	var g errgroup.Group

	for s := 0; s < subtrees; s++ {
		s := s

		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("rmmtree: pass 4 panic: %v", r)
				}
			}()

			for lvl := this.Height - 1; lvl >= pLevel; lvl-- {
				width := 1 << uint(lvl-pLevel)
				base := (1 << uint(lvl)) - 1 + s*width

				for off := 0; off < width; off++ {
					p := base + off
					if p < this.Internal {
						this.combine(p, empty)
					}
				}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for lvl := pLevel - 1; lvl >= 0; lvl-- {
		count := 1 << uint(lvl)
		base := (1 << uint(lvl)) - 1

		for off := 0; off < count; off++ {
			this.combine(base+off, empty)
		}
	}

	return nil
}

// combine aggregates node p's min/max/min-count from its up-to-two
// children, skipping any child index that falls beyond the populated leaf
// range (the partial rightmost subtree when ChunkCount isn't a power of
// two) and any internal child already marked empty in empty. If p itself
// ends up with no real contribution, it is marked empty in turn so its
// own parent skips it rather than merging in zero-valued defaults.
func (this *Tree) combine(p int, empty []bool) {
	total := this.TotalLen()
	first := true

	for _, child := range [arity]int{this.LeftChild(p), this.RightChild(p)} {
		if child >= total {
			continue
		}

		if child < this.Internal && empty[child] {
			continue
		}

		if first {
			this.M[p] = this.M[child]
			this.Mx[p] = this.Mx[child]
			this.N[p] = this.N[child]
			first = false
			continue
		}

		switch {
		case this.M[child] < this.M[p]:
			this.M[p] = this.M[child]
			this.N[p] = this.N[child]
		case this.M[child] == this.M[p]:
			this.N[p] += this.N[child]
		}

		if this.Mx[child] > this.Mx[p] {
			this.Mx[p] = this.Mx[child]
		}
	}

	if first {
		empty[p] = true
	}
}
