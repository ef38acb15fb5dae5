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

// Package succinct is the public facade over a succinct balanced-parentheses
// index: it builds the RMM-tree (rmmtree) over a caller-supplied bit vector
// (bitvector) in parallel, and answers find_close/fwd_search queries
// against it (fwdsearch).
package succinct

import (
	"runtime"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/flanglet/succinct-go/bitvector"
	"github.com/flanglet/succinct-go/fwdsearch"
	"github.com/flanglet/succinct-go/rmmtree"
)

// NotFound is the reserved sentinel returned by FindClose/FwdSearch when no
// position satisfies the query.
const NotFound = fwdsearch.NotFound

// CreateOptions tunes Create. The zero value is the common case: GOMAXPROCS
// workers, no strict validation.
type CreateOptions struct {
	// Workers bounds the construction parallelism. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int

	// Strict enables the optional debug-mode malformed-BP assertion: final
	// excess must be zero and must never go negative.
	Strict bool
}

// Index is the built, immutable succinct representation: a bit vector plus
// the RMM-tree and forward-search engine over it.
type Index struct {
	bv     bitvector.BitVector
	tree   *rmmtree.Tree
	engine *fwdsearch.Engine
}

// Create builds the RMM-tree over bv and returns the queryable Index.
// Fails when bv.Len() <= rmmtree.ChunkBits.
func Create(bv bitvector.BitVector, opts CreateOptions) (*Index, error) {
	start := time.Now()

	if opts.Strict {
		if err := assertWellFormed(bv); err != nil {
			return nil, err
		}
	}

	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	tree, err := rmmtree.Build(bv, workers)
	if err != nil {
		return nil, &ConstructionError{Msg: err.Error(), Code: ErrCodeInputTooSmall}
	}

	log.Debug("succinct: index built", "n", bv.Len(), "elapsed", time.Since(start))

	return &Index{bv: bv, tree: tree, engine: fwdsearch.New(bv, tree)}, nil
}

// FindClose returns the position of the closing parenthesis matching the
// opening parenthesis at i, or NotFound.
func (this *Index) FindClose(i int) int {
	return this.engine.FindClose(i)
}

// FwdSearch returns the smallest j > i with excess(j) - excess(i) = d, or
// NotFound.
func (this *Index) FwdSearch(i, d int) int {
	return this.engine.FwdSearch(i, d)
}

// Destroy releases the arrays backing the index. The Index must not be used
// afterwards.
func (this *Index) Destroy() {
	this.tree = nil
	this.engine = nil
	this.bv = nil
}

// assertWellFormed implements the optional debug-mode check: excess must
// never go negative and must end at zero.
func assertWellFormed(bv bitvector.BitVector) error {
	excess := 0

	for i := 0; i < bv.Len(); i++ {
		if bv.GetBit(i) == 1 {
			excess++
		} else {
			excess--
		}

		if excess < 0 {
			return &ConstructionError{
				Msg:  "malformed BP: excess went negative",
				Code: ErrCodeMalformedBP,
			}
		}
	}

	if excess != 0 {
		return &ConstructionError{
			Msg:  "malformed BP: final excess is not zero",
			Code: ErrCodeMalformedBP,
		}
	}

	return nil
}
