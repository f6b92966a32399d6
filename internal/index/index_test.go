package index

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fpgacores/testvec/internal/fixture"
)

func openTemp(t *testing.T) (*Index, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixtures.db")
	x, err := Open(path)
	require.NoError(t, err)
	return x, path
}

func TestIndexPutGetList(t *testing.T) {
	x, _ := openTemp(t)
	defer x.Close()

	require.False(t, x.Has("b"))
	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, x.Put(&fixture.Manifest{Version: 1, Name: name, Width: 8}))
	}
	require.True(t, x.Has("b"))

	m, err := x.Get("a")
	require.NoError(t, err)
	require.Equal(t, "a", m.Name)
	require.Equal(t, 8, m.Width)

	all, err := x.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, []string{"a", "b", "c"}, []string{all[0].Name, all[1].Name, all[2].Name})

	require.NoError(t, x.Delete("b"))
	require.False(t, x.Has("b"))
	_, err = x.Get("b")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestIndexPersists(t *testing.T) {
	x, path := openTemp(t)
	require.NoError(t, x.Put(&fixture.Manifest{Version: 1, Name: "file_compare", Seed: 42}))
	require.NoError(t, x.Close())

	y, err := Open(path)
	require.NoError(t, err)
	defer y.Close()
	m, err := y.Get("file_compare")
	require.NoError(t, err)
	require.Equal(t, int64(42), m.Seed)
}
