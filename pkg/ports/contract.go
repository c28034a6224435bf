package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dateq/pkg/domain"
)

// RunResultStoreContract runs a suite of tests to verify that a
// ResultStore implementation adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	result := &domain.Result{
		Input:  "09/05/2005",
		Digits: domain.DigitSequence{0, 9, 0, 5, 2, 0, 0, 5},
		Equations: []domain.Equation{
			{Left: "0 * 9 + 0 + 5", Right: "2 * 0 + 0 + 5", Value: 5},
		},
		Stats: domain.SearchStats{Partitions: 36, Evaluations: 1200, Matches: 1},
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, key, result)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, result.Input, loaded.Input)
		assert.Equal(t, result.Digits, loaded.Digits)
		assert.Equal(t, result.Equations, loaded.Equations)
		assert.Equal(t, result.Stats.Partitions, loaded.Stats.Partitions)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrResultNotFound)
	})

	t.Run("Loaded Result Is Isolated", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, result))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		loaded.Equations[0].Left = "mutated"

		again, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "0 * 9 + 0 + 5", again.Equations[0].Left,
			"mutating a loaded result must not leak into the store")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, result))

		err := store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrResultNotFound, "Load after Delete should return ErrResultNotFound")
	})

	t.Run("List", func(t *testing.T) {
		key1 := key + "-1"
		key2 := key + "-2"
		require.NoError(t, store.Save(ctx, key1, result))
		require.NoError(t, store.Save(ctx, key2, result))

		defer func() {
			_ = store.Delete(ctx, key1)
			_ = store.Delete(ctx, key2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, key1)
		assert.Contains(t, keys, key2)
	})
}
