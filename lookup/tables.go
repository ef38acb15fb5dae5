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

// Package lookup holds the byte-indexed tables that let the forward-search
// engine resolve a target excess without inspecting every bit of a chunk.
package lookup

import "sync"

// notFound is the sentinel NearFwdPos offset meaning "no bit position
// inside this byte reaches the requested running value".
const notFound = 8

// Tables holds the precomputed byte-level lookup tables consumed by
// fwdsearch's intra-chunk scan.
type Tables struct {
	// NearFwdPos[e][b] is the offset, in [0..7], of the first bit of byte
	// b (scanned LSB to MSB) at which a running value seeded at e-8
	// reaches exactly 0. A value of 8 means no such bit exists in b.
	NearFwdPos [17][256]int8

	// WordSum[b] is the net excess change across the 8 bits of byte b:
	// 2*popcount(b) - 8.
	WordSum [256]int8
}

var (
	once   sync.Once
	shared *Tables
)

// Get returns the process-wide Tables instance, building it on first use.
// Safe for concurrent callers; the tables are read-only once built.
func Get() *Tables {
	once.Do(func() {
		shared = build()
	})
	return shared
}

func build() *Tables {
	t := &Tables{}

	for b := 0; b < 256; b++ {
		sum := 0

		for bit := 0; bit < 8; bit++ {
			if (b>>uint(bit))&1 == 1 {
				sum++
			} else {
				sum--
			}
		}

		t.WordSum[b] = int8(sum)
	}

	for e := 0; e <= 16; e++ {
		for b := 0; b < 256; b++ {
			running := e - 8
			pos := notFound

			for bit := 0; bit < 8; bit++ {
				if (b>>uint(bit))&1 == 1 {
					running++
				} else {
					running--
				}

				if running == 0 {
					pos = bit
					break
				}
			}

			t.NearFwdPos[e][b] = int8(pos)
		}
	}

	return t
}
