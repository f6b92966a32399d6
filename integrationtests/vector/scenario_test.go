package vector_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fpgacores/testvec/internal/fixture"
	"github.com/fpgacores/testvec/vector"
)

func generatePair(t *testing.T, p vector.Params, seed int64) fixture.Paths {
	t.Helper()
	paths := fixture.Paths{Dir: t.TempDir(), Name: "pair"}
	v, err := vector.Generate(vector.NewSeededSource(seed), p)
	require.NoError(t, err)
	require.NoError(t, v.WriteFiles(paths.Input(), paths.Reference()))
	return paths
}

func referenceLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(b), "\n"))
	return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
}

func TestByteWideEveryCycleActive(t *testing.T) {
	p := vector.Params{Width: 8, Length: 256, Ratio: vector.Ratio{Num: 8, Den: 8}}
	paths := generatePair(t, p, 1)

	words := requireConsistent(t, paths, p)
	require.Len(t, words, 256)
	lines := referenceLines(t, paths.Reference())
	require.Len(t, lines, 256)
	for _, l := range lines {
		require.Len(t, l, 2)
	}
}

func TestWideWordsOneCycleInEight(t *testing.T) {
	p := vector.Params{Width: 32, Length: 256, Ratio: vector.Ratio{Num: 1, Den: 8}}
	require.Equal(t, 2048, p.Cycles())
	paths := generatePair(t, p, 1)

	requireConsistent(t, paths, p)
	lines := referenceLines(t, paths.Reference())
	require.Len(t, lines, p.WordCount())
	for _, l := range lines {
		require.Len(t, l, 8)
	}

	// Padding cycles lead each period, so only the last bit of every byte
	// can be set.
	packed, err := os.ReadFile(paths.Input())
	require.NoError(t, err)
	for i, b := range packed {
		require.Zero(t, b&0xfe, "byte %d", i)
	}
}

func TestInvalidRequestIsRejectedUpFront(t *testing.T) {
	src := vector.NewSeededSource(1)
	_, err := vector.Generate(src, vector.Params{Width: 3, Length: 8, Ratio: vector.Full})
	require.ErrorIs(t, err, vector.ErrWordAlignment)
	require.True(t, vector.IsValidation(err))

	// The source was not advanced by the rejected request.
	require.Zero(t, src.Next(32).Cmp(vector.NewSeededSource(1).Next(32)))
}
