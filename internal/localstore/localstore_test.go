package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundtrip(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	in := map[string]int{"a": 1, "b": 2}
	require.NoError(t, store.Set("counts", in))

	out := map[string]int{}
	ok, err := store.Get("counts", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)
}

func TestGetMissingKey(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	out := map[string]int{"untouched": 9}
	ok, err := store.Get("nope", &out)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, map[string]int{"untouched": 9}, out, "miss must not modify dest")
}

func TestGetCorruptBlobReadRepairs(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "counts.json"), []byte("{not json"), 0o644))

	out := map[string]int{}
	ok, err := store.Get("counts", &out)
	require.NoError(t, err, "corrupt data is not an error")
	assert.False(t, ok)

	// next Set repairs the blob
	require.NoError(t, store.Set("counts", map[string]int{"x": 1}))
	ok, err = store.Get("counts", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, out["x"])
}

func TestInvalidKeyRejected(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("../escape", map[string]int{}))
	_, err = store.Get("UPPER", &map[string]int{})
	assert.Error(t, err)
}
