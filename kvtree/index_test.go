package kvtree

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/trizip/errs"
	"github.com/arloliu/trizip/format"
	"github.com/arloliu/trizip/monoid"
	"github.com/arloliu/trizip/point"
	"github.com/arloliu/trizip/store"
	"github.com/arloliu/trizip/tree"
)

type u8Point = point.Point[uint8, uint8, uint8]
type u8Item = tree.Item[uint8, uint8, uint8, uint64]
type u8Pair = tree.Pair[uint8, uint8, uint8, uint64]
type u8Node = tree.Node[uint8, uint8, uint8, uint64, uint64]
type u8Tree = tree.Tree[uint8, uint8, uint8, uint64, uint64]
type u8Vertex = Vertex[uint8, uint8, uint8, uint64, uint64]
type u8Index = Index[uint8, uint8, uint8, uint64, uint64]

func u8Space() *point.Space[uint8, uint8, uint8] {
	return point.NewSpace[uint8, uint8, uint8](point.Uint8Codec{}, point.Uint8Codec{}, point.Uint8Codec{})
}

func newU8Index(t *testing.T, s store.Store, opts ...Option) *u8Index {
	t.Helper()
	idx, err := New(s, u8Space(), Uint64Codec{}, Uint64Codec{}, opts...)
	require.NoError(t, err)

	return idx
}

func buildU8Tree(t *testing.T, items []u8Item) *u8Tree {
	t.Helper()
	tr, err := tree.Build(u8Space(), monoid.Count[u8Pair]{}, items)
	require.NoError(t, err)

	return tr
}

func randomItems(rng *rand.Rand, n int) []u8Item {
	seen := make(map[[3]uint8]struct{}, n)
	items := make([]u8Item, 0, n)
	for len(items) < n {
		p := [3]uint8{uint8(rng.UintN(256)), uint8(rng.UintN(256)), uint8(rng.UintN(256))}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		items = append(items, u8Item{
			Point: u8Point{X: p[0], Y: p[1], Z: p[2]},
			Value: uint64(len(items)),
			Rank:  uint8(rng.UintN(uint(tree.MaxRank) + 1)),
		})
	}

	return items
}

func TestAppendKey_Layout(t *testing.T) {
	space := u8Space()
	p := u8Point{X: 1, Y: 2, Z: 3}

	tests := []struct {
		name string
		rank uint8
		want []byte
	}{
		{name: "rank 2 selects xyz", rank: 2, want: []byte{0x02, 0x01, 0x02, 0x03}},
		{name: "rank 1 selects yzx", rank: 1, want: []byte{0x01, 0x02, 0x03, 0x01}},
		{name: "rank 0 selects zxy", rank: 0, want: []byte{0x00, 0x03, 0x01, 0x02}},
		{name: "rank 3 wraps to zxy", rank: 3, want: []byte{0x03, 0x03, 0x01, 0x02}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, AppendKey(nil, space, tc.rank, p))
		})
	}
}

func TestEntry_RoundTrip(t *testing.T) {
	left := &u8Node{Point: u8Point{X: 0}, Rank: 1, Count: 1, Summary: 1}
	right := &u8Node{Point: u8Point{X: 9}, Rank: 7, Count: 1, Summary: 1}
	node := &u8Node{
		Point:   u8Point{X: 5, Y: 6, Z: 7},
		Rank:    9,
		Value:   12345,
		Left:    left,
		Right:   right,
		Count:   3,
		Summary: 3,
	}

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			idx := newU8Index(t, store.NewMemoryStore(), WithCompression(ct))

			key := AppendKey(nil, idx.space, node.Rank, node.Point)
			entry, err := idx.appendEntry(nil, node)
			require.NoError(t, err)
			require.Equal(t, byte(ct), entry[3])

			v, err := idx.decodeEntry(key, entry)
			require.NoError(t, err)
			require.Equal(t, node.Point, v.Point)
			require.Equal(t, node.Rank, v.Rank)
			require.Equal(t, node.Value, v.Value)
			require.Equal(t, uint64(node.Count), v.Count)
			require.Equal(t, node.Summary, v.Summary)
			require.Equal(t, left.Rank, v.LeftRank)
			require.Equal(t, right.Rank, v.RightRank)
		})
	}
}

func TestEntry_LeafHasNoChildRanks(t *testing.T) {
	idx := newU8Index(t, store.NewMemoryStore())
	leaf := &u8Node{Point: u8Point{X: 1}, Rank: 0, Value: 7, Count: 1, Summary: 1}

	key := AppendKey(nil, idx.space, leaf.Rank, leaf.Point)
	entry, err := idx.appendEntry(nil, leaf)
	require.NoError(t, err)

	v, err := idx.decodeEntry(key, entry)
	require.NoError(t, err)
	require.Equal(t, NoChild, v.LeftRank)
	require.Equal(t, NoChild, v.RightRank)
	require.False(t, v.HasLeft())
	require.False(t, v.HasRight())
}

func TestDecodeEntry_Errors(t *testing.T) {
	idx := newU8Index(t, store.NewMemoryStore())
	node := &u8Node{Point: u8Point{X: 5}, Rank: 2, Value: 1, Count: 1, Summary: 1}
	key := AppendKey(nil, idx.space, node.Rank, node.Point)
	good, err := idx.appendEntry(nil, node)
	require.NoError(t, err)

	t.Run("short entry", func(t *testing.T) {
		_, err := idx.decodeEntry(key, good[:2])
		require.ErrorIs(t, err, errs.ErrInvalidEntry)
	})

	t.Run("unknown compression byte", func(t *testing.T) {
		bad := append([]byte(nil), good...)
		bad[3] = 0x7F
		_, err := idx.decodeEntry(key, bad)
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})

	t.Run("rank mismatch between key and entry", func(t *testing.T) {
		wrongKey := append([]byte(nil), key...)
		wrongKey[0] = 3
		_, err := idx.decodeEntry(wrongKey, good)
		require.ErrorIs(t, err, errs.ErrCorruptIndex)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := idx.decodeEntry(key, good[:entryHeaderLen])
		require.ErrorIs(t, err, errs.ErrInvalidEntry)
	})
}

func TestNew_OptionErrors(t *testing.T) {
	s := store.NewMemoryStore()

	_, err := New(s, u8Space(), Uint64Codec{}, Uint64Codec{}, WithCompression(format.CompressionType(0x99)))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)

	_, err = New(s, u8Space(), Uint64Codec{}, Uint64Codec{}, WithParallelism(0))
	require.Error(t, err)
}

func TestLoad_EmptyTree(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	idx := newU8Index(t, s)

	require.NoError(t, idx.Load(ctx, buildU8Tree(t, nil)))
	require.Equal(t, 0, s.Len())

	root, err := idx.Root(ctx)
	require.NoError(t, err)
	require.Nil(t, root)
}

func TestLoad_RootMatchesTree(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	idx := newU8Index(t, s)

	rng := rand.New(rand.NewPCG(7, 7))
	tr := buildU8Tree(t, randomItems(rng, 100))
	require.NoError(t, idx.Load(ctx, tr))

	// One entry per vertex plus the root pointer.
	require.Equal(t, tr.Count()+1, s.Len())

	root, err := idx.Root(ctx)
	require.NoError(t, err)
	require.NotNil(t, root)
	require.Equal(t, tr.Root().Point, root.Point)
	require.Equal(t, tr.Root().Rank, root.Rank)
	require.Equal(t, uint64(tr.Count()), root.Count)
	require.Equal(t, tr.Summary(), root.Summary)
}

// requireSameShape checks that the store-resident subtree reachable from v
// reproduces the in-memory subtree rooted at n, vertex by vertex.
func requireSameShape(t *testing.T, ctx context.Context, idx *u8Index, v *u8Vertex, n *u8Node) {
	t.Helper()
	require.Equal(t, n.Point, v.Point)
	require.Equal(t, n.Rank, v.Rank)
	require.Equal(t, n.Value, v.Value)
	require.Equal(t, uint64(n.Count), v.Count)
	require.Equal(t, n.Summary, v.Summary)

	left, err := idx.LeftChild(ctx, v)
	require.NoError(t, err)
	if n.Left == nil {
		require.Nil(t, left)
	} else {
		require.NotNil(t, left)
		requireSameShape(t, ctx, idx, left, n.Left)
	}

	right, err := idx.RightChild(ctx, v)
	require.NoError(t, err)
	if n.Right == nil {
		require.Nil(t, right)
	} else {
		require.NotNil(t, right)
		requireSameShape(t, ctx, idx, right, n.Right)
	}
}

func TestChildDiscovery_ReconstructsTree(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(11, 13))

	for _, n := range []int{1, 2, 10, 250, 1000} {
		s := store.NewMemoryStore()
		idx := newU8Index(t, s)
		tr := buildU8Tree(t, randomItems(rng, n))
		require.NoError(t, idx.Load(ctx, tr))

		root, err := idx.Root(ctx)
		require.NoError(t, err)
		require.NotNil(t, root)
		requireSameShape(t, ctx, idx, root, tr.Root())
	}
}

func TestChildDiscovery_WithCompression(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(3, 5))

	s := store.NewMemoryStore()
	idx := newU8Index(t, s, WithCompression(format.CompressionZstd), WithParallelism(4))
	tr := buildU8Tree(t, randomItems(rng, 300))
	require.NoError(t, idx.Load(ctx, tr))

	root, err := idx.Root(ctx)
	require.NoError(t, err)
	requireSameShape(t, ctx, idx, root, tr.Root())
}

func TestVertex_Lookup(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	idx := newU8Index(t, s)

	items := []u8Item{
		{Point: u8Point{X: 1, Y: 2, Z: 3}, Value: 10, Rank: 2},
		{Point: u8Point{X: 4, Y: 5, Z: 6}, Value: 20, Rank: 0},
	}
	require.NoError(t, idx.Load(ctx, buildU8Tree(t, items)))

	v, err := idx.Vertex(ctx, 2, u8Point{X: 1, Y: 2, Z: 3})
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, uint64(10), v.Value)

	// Same point at a rank it was not stored under is absent.
	v, err = idx.Vertex(ctx, 1, u8Point{X: 1, Y: 2, Z: 3})
	require.NoError(t, err)
	require.Nil(t, v)

	v, err = idx.Vertex(ctx, 0, u8Point{X: 9, Y: 9, Z: 9})
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestDelete_RemovesEverything(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(21, 42))

	s := store.NewMemoryStore()
	idx := newU8Index(t, s)
	tr := buildU8Tree(t, randomItems(rng, 400))
	require.NoError(t, idx.Load(ctx, tr))
	require.Equal(t, tr.Count()+1, s.Len())

	require.NoError(t, idx.Delete(ctx))
	require.Equal(t, 0, s.Len())

	root, err := idx.Root(ctx)
	require.NoError(t, err)
	require.Nil(t, root)

	// Deleting an already-empty index is a no-op.
	require.NoError(t, idx.Delete(ctx))
}

func TestLoad_BoltPersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index.db")
	rng := rand.New(rand.NewPCG(1, 2))
	items := randomItems(rng, 50)

	s, err := store.OpenBoltStore(path)
	require.NoError(t, err)
	idx := newU8Index(t, s)
	tr := buildU8Tree(t, items)
	require.NoError(t, idx.Load(ctx, tr))
	require.NoError(t, s.Close())

	// Reopen and reconstruct from disk alone.
	s, err = store.OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()
	idx = newU8Index(t, s)

	root, err := idx.Root(ctx)
	require.NoError(t, err)
	require.NotNil(t, root)
	requireSameShape(t, ctx, idx, root, tr.Root())
}

func TestLoad_VariableWidthDimensions(t *testing.T) {
	ctx := context.Background()
	space := point.NewSpace[uint8, uint8, uint8](
		point.Uint8UnaryCodec{}, point.Uint8Codec{}, point.Uint8UnaryCodec{})

	items := []tree.Item[uint8, uint8, uint8, uint64]{
		{Point: u8Point{X: 0, Y: 1, Z: 2}, Value: 1, Rank: 2},
		{Point: u8Point{X: 3, Y: 0, Z: 0}, Value: 2, Rank: 1},
		{Point: u8Point{X: 5, Y: 5, Z: 5}, Value: 3, Rank: 0},
		{Point: u8Point{X: 2, Y: 2, Z: 2}, Value: 4, Rank: 1},
	}
	tr, err := tree.Build(space, monoid.Count[u8Pair]{}, items)
	require.NoError(t, err)

	s := store.NewMemoryStore()
	idx, err := New(s, space, Uint64Codec{}, Uint64Codec{})
	require.NoError(t, err)
	require.NoError(t, idx.Load(ctx, tr))

	root, err := idx.Root(ctx)
	require.NoError(t, err)
	requireSameShape(t, ctx, idx, root, tr.Root())
}

func TestPayloadCodecs(t *testing.T) {
	t.Run("bytes round-trip and copy", func(t *testing.T) {
		src := []byte{1, 2, 3}
		enc := BytesCodec{}.Append(nil, src)
		out, err := BytesCodec{}.Decode(enc)
		require.NoError(t, err)
		require.Equal(t, src, out)
		enc[0] = 0xFF
		require.Equal(t, []byte{1, 2, 3}, out)
	})

	t.Run("uint64 round-trip", func(t *testing.T) {
		enc := Uint64Codec{}.Append(nil, 0xDEADBEEF)
		require.Len(t, enc, 8)
		out, err := Uint64Codec{}.Decode(enc)
		require.NoError(t, err)
		require.Equal(t, uint64(0xDEADBEEF), out)

		_, err = Uint64Codec{}.Decode(enc[:5])
		require.ErrorIs(t, err, errs.ErrInvalidEntry)
	})

	t.Run("empty rejects leftovers", func(t *testing.T) {
		_, err := EmptyCodec{}.Decode(nil)
		require.NoError(t, err)
		_, err = EmptyCodec{}.Decode([]byte{0})
		require.ErrorIs(t, err, errs.ErrInvalidEntry)
	})
}
