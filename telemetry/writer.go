package telemetry

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer records one CSV row per search iteration under a timestamped run
// directory. Write failures are held and reported by Close rather than fed
// back into the search.
type Writer struct {
	file   *csv.Writer
	handle *os.File
	err    error
}

func NewWriter(baseDir string) (*Writer, error) {
	// Create subfolder named by timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	dir := filepath.Join(baseDir, timestamp)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	handle, err := os.Create(filepath.Join(dir, "iterations.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to create iterations file: %w", err)
	}

	file := csv.NewWriter(handle)
	header := []string{"iteration", "cloned"}
	for _, name := range summaryColumns {
		header = append(header, name+"_mean", name+"_min", name+"_max")
	}
	if err := file.Write(header); err != nil {
		handle.Close()
		return nil, fmt.Errorf("failed to write iterations header: %w", err)
	}

	return &Writer{file: file, handle: handle}, nil
}

var summaryColumns = []string{
	"visits",
	"value_sum",
	"average_value",
	"clone_receives",
	"virtual_reward",
	"predicted_value",
	"distance",
	"reward",
}

func (w *Writer) Emit(iteration Iteration) {
	if w.err != nil {
		return
	}

	row := []string{
		strconv.Itoa(iteration.Index),
		strconv.Itoa(iteration.NumCloned),
	}
	summaries := []Summary{
		iteration.VisitCounts,
		iteration.ValueSums,
		iteration.AverageValues,
		iteration.CloneReceives,
		iteration.VirtualRewards,
		iteration.PredictedValues,
		iteration.Distances,
		iteration.Rewards,
	}
	for _, s := range summaries {
		row = append(row, formatFloat(s.Mean), formatFloat(s.Min), formatFloat(s.Max))
	}

	w.err = w.file.Write(row)
}

func (w *Writer) Close() error {
	w.file.Flush()
	if w.err == nil {
		w.err = w.file.Error()
	}
	closeErr := w.handle.Close()
	if w.err != nil {
		return fmt.Errorf("failed to write iterations: %w", w.err)
	}
	return closeErr
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
