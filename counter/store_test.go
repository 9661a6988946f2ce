package counter

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// testStore checks the counter properties every Store must hold,
// exists reports whether the store holds a record for name
func testStore(t *testing.T, store Store, exists func(t *testing.T, name string) bool) {
	ctx := context.Background()
	prefix := fmt.Sprintf("%s_%s_", t.Name(), store.Kind())

	t.Run("absent", func(t *testing.T) {
		name := prefix + "nobody"
		v, err := store.Get(ctx, name)
		require.NoError(t, err)
		assert.EqualValues(t, 0, v)
		assert.False(t, exists(t, name), "read created %s", name)

		v, err = store.Incr(ctx, name)
		require.NoError(t, err)
		assert.EqualValues(t, 1, v)
		assert.True(t, exists(t, name))
	})

	t.Run("sequential", func(t *testing.T) {
		name := prefix + "alice"
		for i := 1; i <= 5; i++ {
			v, err := store.Incr(ctx, name)
			require.NoError(t, err)
			assert.EqualValues(t, i, v)
		}
		for i := 0; i < 3; i++ {
			v, err := store.Get(ctx, name)
			require.NoError(t, err)
			assert.EqualValues(t, 5, v)
		}
	})

	t.Run("independent", func(t *testing.T) {
		a, b := prefix+"a", prefix+"b"
		_, err := store.Incr(ctx, b)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			_, err := store.Incr(ctx, a)
			require.NoError(t, err)
		}
		v, err := store.Get(ctx, b)
		require.NoError(t, err)
		assert.EqualValues(t, 1, v)
		v, err = store.Get(ctx, a)
		require.NoError(t, err)
		assert.EqualValues(t, 3, v)
	})

	t.Run("concurrent", func(t *testing.T) {
		const k = 50
		name := prefix + "bob"
		seen := make([]int64, k)
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < k; i++ {
			i := i
			g.Go(func() error {
				v, err := store.Incr(gctx, name)
				seen[i] = v
				return err
			})
		}
		require.NoError(t, g.Wait())

		v, err := store.Get(ctx, name)
		require.NoError(t, err)
		assert.EqualValues(t, k, v)

		// every increment observed a distinct value
		distinct := map[int64]struct{}{}
		for _, s := range seen {
			distinct[s] = struct{}{}
		}
		assert.Len(t, distinct, k)
	})
}
