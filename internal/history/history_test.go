package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "nope", "history"), 0)
	require.NoError(t, err)
	assert.Zero(t, s.Len())
	assert.NoError(t, s.Save(), "saving an untouched store is a no-op")
}

func TestRoundTripKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history")
	s, err := Open(path, 0)
	require.NoError(t, err)
	s.Add("first")
	s.Add("")
	s.Add("two\nlines")
	s.Add("second")
	require.NoError(t, s.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	again, err := Open(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, again.Entries())
}

func TestMaxEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0o600))

	s, err := Open(path, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, s.Entries())

	s.Add("d")
	assert.Equal(t, []string{"c", "d"}, s.Entries())
}

func TestOpenSkipsBlankLinesAndCR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte("one\r\n\r\ntwo\n"), 0o600))
	s, err := Open(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, s.Entries())
}

func TestEntriesIsACopy(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "history"), 0)
	require.NoError(t, err)
	s.Add("x")
	e := s.Entries()
	e[0] = "mutated"
	assert.Equal(t, []string{"x"}, s.Entries())
}
