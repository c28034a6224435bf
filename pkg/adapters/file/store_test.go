package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dateq/pkg/domain"
	"github.com/aretw0/dateq/pkg/ports"
)

func TestFileStoreContract(t *testing.T) {
	ports.RunResultStoreContract(t, New(t.TempDir()))
}

func TestFileStoreDefaultPath(t *testing.T) {
	store := New("")
	assert.Equal(t, filepath.Join(".dateq", "cache"), store.BasePath)
}

func TestFileStoreKeyEncoding(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	// Real cache keys carry separator characters.
	key := "09052005|extended|fact=true|groups=6|tol=1e-10"
	result := &domain.Result{Input: "09/05/2005", Digits: domain.DigitSequence{0, 9, 0, 5, 2, 0, 0, 5}}

	require.NoError(t, store.Save(ctx, key, result))

	loaded, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, result.Input, loaded.Input)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{key}, keys)
}

func TestFileStoreIgnoresStrayFiles(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not a result"), 0644))
	require.NoError(t, store.Save(ctx, "123|basic|fact=false|groups=5|tol=1e-10", &domain.Result{Input: "123"}))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestFileStoreCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, encodeKey("bad")), []byte("{not json"), 0644))

	_, err := store.Load(ctx, "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrResultNotFound)
}

func TestFileStoreRejectsEmptyKey(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, "", &domain.Result{}))
	_, err := store.Load(ctx, "")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ""))
}
