package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

func TestStoreMissingFileIsEmpty(t *testing.T) {
	store := NewStore[record](filepath.Join(t.TempDir(), "missing.json"))

	records, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, records)

	_, ok, err := store.Get("1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreMalformedFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewStore[record](path)
	records, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	store := NewStore[record](path)

	require.NoError(t, store.Put("1", &record{Name: "arthur", Count: 3}))
	require.NoError(t, store.Put("2", &record{Name: "morgane", Count: 7}))

	// A fresh store over the same file sees both records.
	reopened := NewStore[record](path)
	records, err := reopened.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "arthur", records["1"].Name)
	assert.Equal(t, int64(7), records["2"].Count)

	// Put keeps unrelated records intact.
	require.NoError(t, reopened.Put("1", &record{Name: "arthur", Count: 4}))
	got, ok, err := reopened.Get("2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(7), got.Count)
}

func TestStoreSaveAllReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	store := NewStore[record](path)

	require.NoError(t, store.Put("1", &record{Name: "arthur"}))
	require.NoError(t, store.SaveAll(map[string]*record{
		"9": {Name: "lancelot"},
	}))

	records, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "lancelot", records["9"].Name)
}

func TestStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "records.json")
	store := NewStore[record](path)

	require.NoError(t, store.Put("1", &record{Name: "arthur"}))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestStoreLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore[record](filepath.Join(dir, "records.json"))
	require.NoError(t, store.Put("1", &record{Name: "arthur"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "records.json", entries[0].Name())
}
