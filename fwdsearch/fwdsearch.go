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

// Package fwdsearch implements the forward-search engine: fwd_search and
// find_close, both answered against an rmmtree.Tree built over the same
// bit sequence plus a lookup.Tables instance.
package fwdsearch

import (
	"fmt"

	"github.com/flanglet/succinct-go/bitvector"
	"github.com/flanglet/succinct-go/chunksum"
	"github.com/flanglet/succinct-go/lookup"
	"github.com/flanglet/succinct-go/rmmtree"
)

// NotFound is the reserved sentinel returned when no position satisfies
// the query.
const NotFound = -1

// Engine answers fwd_search/find_close queries against an immutable
// rmmtree.Tree. Stateless and safe for concurrent use.
type Engine struct {
	tree *rmmtree.Tree
	bv   bitvector.BitVector
	tbl  *lookup.Tables
}

// New builds an Engine over the given bit vector and its already-built
// RMM-tree.
func New(bv bitvector.BitVector, tree *rmmtree.Tree) *Engine {
	return &Engine{tree: tree, bv: bv, tbl: lookup.Get()}
}

// FindClose returns the position of the closing parenthesis matching the
// opening parenthesis at i, or NotFound if i is not an opening parenthesis
// or no match exists.
func (this *Engine) FindClose(i int) int {
	if i < 0 || i >= this.bv.Len() || this.bv.GetBit(i) != 1 {
		return NotFound
	}

	return this.FwdSearch(i, -1)
}

// FwdSearch returns the smallest j > i such that excess(j) - excess(i) = d,
// or NotFound if no such j exists in the bit sequence.
func (this *Engine) FwdSearch(i, d int) int {
	n := this.bv.Len()

	if i < 0 || i >= n {
		return NotFound
	}

	chunk := i / rmmtree.ChunkBits
	chunkStart := chunk * rmmtree.ChunkBits
	chunkEnd := chunkStart + rmmtree.ChunkBits

	if chunkEnd > n {
		chunkEnd = n
	}

	// Case A: intra-chunk scan using the lookup tables.
	if pos, ok := this.scan(i+1, chunkEnd, 0, d); ok {
		return pos
	}

	excessAtI := this.excessAt(i, chunk, chunkStart)
	target := excessAtI + d

	leaf := this.tree.LeafIndex(chunk)

	// Case B: sibling scan within the chunk's RMM-tree block.
	if this.tree.IsLeftChild(leaf) {
		sib := this.tree.RightSibling(leaf)

		if sib < this.tree.TotalLen() && this.contains(sib, target) {
			if pos, ok := this.scanChunk(sib-this.tree.Internal, excessAtI, d); ok {
				return pos
			}
		}
	}

	// Case C: climb then descend.
	v := leaf
	climbed := false

	for !this.tree.IsRoot(v) {
		if this.tree.IsLeftChild(v) {
			sib := this.tree.RightSibling(v)

			if sib < this.tree.TotalLen() && this.contains(sib, target) {
				v = sib
				climbed = true
				break
			}
		}

		v = this.tree.Parent(v)
	}

	if !climbed {
		return NotFound
	}

	for !this.tree.IsLeaf(v) {
		left := this.tree.LeftChild(v)
		right := this.tree.RightChild(v)

		switch {
		case left < this.tree.TotalLen() && this.contains(left, target):
			v = left
		case right < this.tree.TotalLen() && this.contains(right, target):
			v = right
		default:
			panic(fmt.Errorf("fwdsearch: descent from node %v found no child containing target %v", v, target))
		}
	}

	targetChunk := v - this.tree.Internal

	if pos, ok := this.scanChunk(targetChunk, excessAtI, d); ok {
		return pos
	}

	return NotFound
}

// contains reports whether target lies within node v's [min, max] excess
// range.
func (this *Engine) contains(v, target int) bool {
	return int(this.tree.M[v]) <= target && target <= int(this.tree.Mx[v])
}

// excessAt computes the global excess at position i given the chunk it
// falls in and that chunk's start, reusing chunksum.Summarize.
func (this *Engine) excessAt(i, chunk, chunkStart int) int {
	seed := 0

	if chunk > 0 {
		seed = int(this.tree.E[chunk-1])
	}

	return chunksum.Summarize(this.bv, chunkStart, i+1, seed).ExcessAtEnd
}

// scanChunk runs the intra-chunk scan (Case A) starting at the beginning
// of targetChunk, seeded so that the scan's running value stays relative
// to the original query anchor (whose excess is excessAtI).
func (this *Engine) scanChunk(targetChunk, excessAtI, d int) (int, bool) {
	start := targetChunk * rmmtree.ChunkBits
	end := start + rmmtree.ChunkBits

	if end > this.bv.Len() {
		end = this.bv.Len()
	}

	seed := 0

	if targetChunk > 0 {
		seed = int(this.tree.E[targetChunk-1])
	}

	rel0 := seed - excessAtI
	return this.scan(start, end, rel0, d)
}

// scan walks bv[start:end), maintaining a running value r initialized to
// rel0 (the excess at start-1 relative to the query anchor) and returns
// the first position where r == d. Three sub-phases: bit-by-bit to the
// next byte boundary, byte-at-a-time via the lookup tables while a full
// byte remains, then bit-by-bit through the remainder.
func (this *Engine) scan(start, end, rel0, d int) (int, bool) {
	r := rel0
	p := start

	for p < end && p%8 != 0 {
		if this.bv.GetBit(p) == 1 {
			r++
		} else {
			r--
		}

		if r == d {
			return p, true
		}

		p++
	}

	for p+8 <= end {
		w := this.bv.Word64(p >> 6)
		byteIdx := uint((p & 63) >> 3)
		b := byte(w >> (byteIdx * 8))

		e := r - d + 8

		if e >= 0 && e <= 16 {
			if x := this.tbl.NearFwdPos[e][b]; x < 8 {
				return p + int(x), true
			}
		}

		r += int(this.tbl.WordSum[b])
		p += 8
	}

	for p < end {
		if this.bv.GetBit(p) == 1 {
			r++
		} else {
			r--
		}

		if r == d {
			return p, true
		}

		p++
	}

	return 0, false
}
