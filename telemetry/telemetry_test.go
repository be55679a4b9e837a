package telemetry

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	t.Run("reports mean, min and max", func(t *testing.T) {
		got := Summarize([]float64{1, 2, 3, 10})

		require.Equal(t, Summary{Mean: 4, Min: 1, Max: 10}, got)
	})

	t.Run("empty input yields a zero summary", func(t *testing.T) {
		require.Equal(t, Summary{}, Summarize(nil))
	})

	t.Run("integer summaries agree with float ones", func(t *testing.T) {
		require.Equal(t, Summarize([]float64{2, 4, 9}), SummarizeInts([]int{2, 4, 9}))
	})
}

func TestWriter(t *testing.T) {
	baseDir := t.TempDir()

	w, err := NewWriter(baseDir)
	require.NoError(t, err)

	w.Emit(Iteration{
		Index:     0,
		NumCloned: 3,
		Rewards:   Summary{Mean: 1, Min: 0, Max: 2},
	})
	w.Emit(Iteration{Index: 1, NumCloned: 0})
	require.NoError(t, w.Close())

	matches, err := filepath.Glob(filepath.Join(baseDir, "*", "iterations.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	f, err := os.Open(matches[0])
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per iteration")
	require.Equal(t, len(rows[0]), len(rows[1]), "rows must match the header width")
	require.Equal(t, "iteration", rows[0][0])
	require.Equal(t, "0", rows[1][0])
	require.Equal(t, "3", rows[1][1])
	require.Equal(t, "1", rows[2][0])
}

func TestDummySinkIsSilent(t *testing.T) {
	require.NotPanics(t, func() {
		NewDummySink().Emit(Iteration{Index: 5})
	})
}
