package kvtree

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/arloliu/trizip/errs"
	"github.com/arloliu/trizip/store"
	"github.com/arloliu/trizip/tree"
)

// Load writes every vertex of t into the store, records the root pointer,
// and flushes. Entry encoding runs in parallel; store writes are sequential.
//
// Load assumes the store holds no previous tree under this index's key
// space. Loading an empty tree only clears the root pointer.
func (idx *Index[X, Y, Z, V, M]) Load(ctx context.Context, t *tree.Tree[X, Y, Z, V, M]) error {
	start := time.Now()

	nodes := make([]*tree.Node[X, Y, Z, V, M], 0, t.Count())
	t.Walk(func(n *tree.Node[X, Y, Z, V, M]) bool {
		nodes = append(nodes, n)

		return true
	})

	if len(nodes) == 0 {
		if _, err := idx.store.Delete(ctx, rootPointerKey); err != nil {
			return fmt.Errorf("clear root pointer: %w", err)
		}

		return idx.store.Flush(ctx)
	}

	entries := make([]store.Entry, len(nodes))
	p := pool.New().WithErrors().WithMaxGoroutines(idx.parallelism)
	for i, n := range nodes {
		p.Go(func() error {
			key := AppendKey(nil, idx.space, n.Rank, n.Point)
			value, err := idx.appendEntry(nil, n)
			if err != nil {
				return err
			}
			entries[i] = store.Entry{Key: key, Value: value}

			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return fmt.Errorf("encode vertex entries: %w", err)
	}

	for _, e := range entries {
		if _, err := idx.store.Insert(ctx, e.Key, e.Value); err != nil {
			return fmt.Errorf("insert vertex entry: %w", err)
		}
	}

	rootKey := AppendKey(nil, idx.space, t.Root().Rank, t.Root().Point)
	if _, err := idx.store.Insert(ctx, rootPointerKey, rootKey); err != nil {
		return fmt.Errorf("write root pointer: %w", err)
	}

	if err := idx.store.Flush(ctx); err != nil {
		return fmt.Errorf("flush after load: %w", err)
	}

	idx.logger.Debug().
		Int("vertices", len(nodes)).
		Str("compression", idx.compression.String()).
		Dur("elapsed", time.Since(start)).
		Msg("bulk load complete")

	return nil
}

// Delete removes every vertex of the resident tree plus the root pointer,
// then flushes. Deleting an empty index is a no-op.
//
// Vertices are removed top-down, each one after its children have been
// resolved. Removals never add keys, so the child-discovery queries keep
// returning the true children of the not-yet-deleted frontier.
func (idx *Index[X, Y, Z, V, M]) Delete(ctx context.Context) error {
	root, err := idx.Root(ctx)
	if err != nil {
		return err
	}

	deleted := 0
	if root != nil {
		if deleted, err = idx.deleteSubtree(ctx, root); err != nil {
			return err
		}
	}

	if _, err := idx.store.Delete(ctx, rootPointerKey); err != nil {
		return fmt.Errorf("delete root pointer: %w", err)
	}

	if err := idx.store.Flush(ctx); err != nil {
		return fmt.Errorf("flush after delete: %w", err)
	}

	idx.logger.Debug().Int("vertices", deleted).Msg("index deleted")

	return nil
}

func (idx *Index[X, Y, Z, V, M]) deleteSubtree(ctx context.Context, v *Vertex[X, Y, Z, V, M]) (int, error) {
	left, err := idx.LeftChild(ctx, v)
	if err != nil {
		return 0, err
	}
	right, err := idx.RightChild(ctx, v)
	if err != nil {
		return 0, err
	}

	key := AppendKey(nil, idx.space, v.Rank, v.Point)
	old, err := idx.store.Delete(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("delete vertex entry: %w", err)
	}
	if old == nil {
		return 0, fmt.Errorf("vertex entry vanished during delete: %w", errs.ErrCorruptIndex)
	}

	deleted := 1
	for _, child := range []*Vertex[X, Y, Z, V, M]{left, right} {
		if child == nil {
			continue
		}
		n, err := idx.deleteSubtree(ctx, child)
		if err != nil {
			return deleted, err
		}
		deleted += n
	}

	return deleted, nil
}
