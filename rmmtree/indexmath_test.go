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

package rmmtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkShape(t *testing.T) {
	cases := []struct {
		n                          int
		wantChunks, wantH, wantInt int
	}{
		{257, 2, 1, 1},
		{512, 2, 1, 1},
		{513, 3, 2, 3},
		{1024, 4, 2, 3},
		{1025, 5, 3, 7},
	}

	for _, c := range cases {
		chunks, h, internal := chunkShape(c.n)
		require.Equal(t, c.wantChunks, chunks, "n=%d chunks", c.n)
		require.Equal(t, c.wantH, h, "n=%d height", c.n)
		require.Equal(t, c.wantInt, internal, "n=%d internal", c.n)
	}
}

func TestIndexMathNavigation(t *testing.T) {
	tree := &Tree{ChunkCount: 5, Internal: 7} // height 3, I = 2^3-1 = 7

	require.True(t, tree.IsRoot(0))
	require.False(t, tree.IsRoot(1))

	require.Equal(t, 1, tree.LeftChild(0))
	require.Equal(t, 2, tree.RightChild(0))
	require.Equal(t, 0, tree.Parent(1))
	require.Equal(t, 0, tree.Parent(2))

	require.True(t, tree.IsLeftChild(1))
	require.False(t, tree.IsLeftChild(2))
	require.Equal(t, 2, tree.RightSibling(1))

	require.False(t, tree.IsLeaf(0))
	require.True(t, tree.IsLeaf(tree.Internal))
	require.Equal(t, tree.Internal, tree.LeafIndex(0))
	require.Equal(t, tree.Internal+4, tree.LeafIndex(4))

	require.Panics(t, func() { tree.Parent(0) })
}
