// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/pato/ratatype/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary holds overview numbers across a set of sessions.
type Summary struct {
	Sessions    int
	AvgWPM      float64
	BestWPM     float64
	AvgAccuracy float64
	TotalErrors int
}

// Summarize computes overview numbers for the sessions.
func Summarize(sessions []model.SessionAggregate) Summary {
	sum := Summary{Sessions: len(sessions)}
	if len(sessions) == 0 {
		return sum
	}
	for _, s := range sessions {
		sum.AvgWPM += s.AvgWPM
		sum.AvgAccuracy += s.Accuracy
		sum.TotalErrors += s.Errors
		if s.AvgWPM > sum.BestWPM {
			sum.BestWPM = s.AvgWPM
		}
	}
	count := float64(len(sessions))
	sum.AvgWPM /= count
	sum.AvgAccuracy /= count
	return sum
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline, resampled to width
// columns. A non-positive width keeps one column per value.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	if width > 0 && len(values) != width {
		values = resampleSeries(values, width)
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints overview numbers for the sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	sum := Summarize(sessions)
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", sum.Sessions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %.2f\n", sum.AvgWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best WPM: %.2f\n", sum.BestWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.2f%%\n", sum.AvgAccuracy); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total Errors: %d\n", sum.TotalErrors); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderCurves prints learning curves for WPM and accuracy.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window int) error {
	return RenderCurvesWithSize(w, sessions, window, 0, 10, false)
}

// RenderCurvesWithSize prints learning curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, sessions []model.SessionAggregate, window, totalWidth, height int, useColor bool) error {
	if len(sessions) == 0 {
		return nil
	}
	wpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		wpms[i] = s.AvgWPM
		accs[i] = s.Accuracy
	}
	wpms = MovingAverage(wpms, window)
	accs = MovingAverage(accs, window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotWithColor(w, "Learning Curves", []Series{
		{Name: "WPM", Values: wpms},
		{Name: "Accuracy", Values: accs},
	}, width, height, useColor)
}

// KeyRow is one rendered line of the per-key table.
type KeyRow struct {
	Key       string
	Accuracy  float64
	LatencyMs float64
	Attempts  int
	Errors    int
}

// KeyRows converts aggregates into table rows sorted by lowest accuracy.
func KeyRows(aggs []model.KeyAggregate) []KeyRow {
	rows := make([]KeyRow, 0, len(aggs))
	for _, agg := range aggs {
		label := agg.Char
		if label == " " {
			label = "<space>"
		}
		lat := 0.0
		if agg.Attempts > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.Attempts)
		}
		rows = append(rows, KeyRow{
			Key:       label,
			Accuracy:  keyAccuracy(agg) * 100,
			LatencyMs: lat,
			Attempts:  agg.Attempts,
			Errors:    agg.Errors,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Accuracy == rows[j].Accuracy {
			return rows[i].Key < rows[j].Key
		}
		return rows[i].Accuracy < rows[j].Accuracy
	})
	return rows
}

// RenderKeyTable prints per-key aggregates, weakest keys first.
func RenderKeyTable(w io.Writer, aggs []model.KeyAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No key stats found.")
		return err
	}
	rows := KeyRows(aggs)

	if _, err := fmt.Fprintln(w, "Per-Key (Windowed)"); err != nil {
		return err
	}

	headers := []string{"Key", "Accuracy", "Avg Latency (ms)", "Attempts", "Errors"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Key,
			fmt.Sprintf("%.2f%%", r.Accuracy),
			fmt.Sprintf("%.1f", r.LatencyMs),
			fmt.Sprintf("%d", r.Attempts),
			fmt.Sprintf("%d", r.Errors),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	lines := FormatTable(headers, tableRows, rightAlign)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
