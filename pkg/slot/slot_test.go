package slot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/digiteria/pkg/slot"
)

func TestMemoryEmptyUntilFirstSave(t *testing.T) {
	m := slot.NewMemory()

	_, ok, err := m.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Save([]byte(`{"users":[]}`)))

	got, ok, err := m.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"users":[]}`, string(got))
}

func TestMemoryLoadReturnsCopy(t *testing.T) {
	m := slot.NewMemory()
	require.NoError(t, m.Save([]byte("abc")))

	got, _, _ := m.Load()
	got[0] = 'x'

	again, _, _ := m.Load()
	assert.Equal(t, []byte("abc"), again)
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store", "digiteria.json")
	f := slot.NewFile(path)

	_, ok, err := f.Load()
	require.NoError(t, err)
	assert.False(t, ok, "missing file reads as never-written")

	require.NoError(t, f.Save([]byte(`{"products":[]}`)))

	got, ok, err := f.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"products":[]}`, string(got))

	// Save replaces in full — no appending, no merging.
	require.NoError(t, f.Save([]byte(`{}`)))
	got, _, _ = f.Load()
	assert.Equal(t, `{}`, string(got))
}

func TestFileSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f := slot.NewFile(filepath.Join(dir, "doc.json"))
	require.NoError(t, f.Save([]byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
