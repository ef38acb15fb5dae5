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

package succinct

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flanglet/succinct-go/bitvector"
	"github.com/flanglet/succinct-go/internal/bptest"
)

// An input no larger than a single chunk must fail construction.
func TestCreateFailsOnSmallInput(t *testing.T) {
	bv := bitvector.NewFromParens("(())") // n=4

	_, err := Create(bv, CreateOptions{})
	require.Error(t, err)

	var ce *ConstructionError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, ErrCodeInputTooSmall, ce.Code)
}

func TestCreateStrictRejectsMalformedInput(t *testing.T) {
	bv := bitvector.NewBits(300)

	for i := 0; i < 300; i++ {
		bv.SetBit(i, 0) // all closes: excess goes negative immediately
	}

	_, err := Create(bv, CreateOptions{Strict: true})
	require.Error(t, err)

	var ce *ConstructionError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, ErrCodeMalformedBP, ce.Code)
}

func TestEndToEnd(t *testing.T) {
	s := bptest.Random(2048, 11)
	bv := bitvector.NewFromParens(s)
	naive := bptest.NaiveFindClose(s)

	ix, err := Create(bv, CreateOptions{Workers: 3, Strict: true})
	require.NoError(t, err)
	defer ix.Destroy()

	for i, r := range s {
		if r == '(' {
			require.Equal(t, naive[i], ix.FindClose(i), "i=%d", i)
		}
	}
}

func TestDestroyClearsIndex(t *testing.T) {
	s := bptest.LeftLeaningPath(300)
	bv := bitvector.NewFromParens(s)

	ix, err := Create(bv, CreateOptions{})
	require.NoError(t, err)

	require.Equal(t, 599, ix.FindClose(0))

	ix.Destroy()
	require.Nil(t, ix.tree)
}
