// Package history appends completed sessions to the per-user CSV log.
package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pato/ratatype/internal/model"
)

const fileName = ".ratatype_history.csv"

// header matches the column order written by Append.
var header = []string{
	"timestamp",
	"duration_seconds",
	"avg_wpm",
	"peak_wpm",
	"accuracy",
	"characters_typed",
	"errors",
	"correction_mode",
	"text_source",
	"max_word_length",
}

// DefaultPath returns the history log location in the user's home directory,
// falling back to the working directory when home cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return fileName
	}
	return filepath.Join(home, fileName)
}

// Recorder appends session summaries to an append-only CSV file.
type Recorder struct {
	path string
}

// NewRecorder records to the given path.
func NewRecorder(path string) *Recorder {
	return &Recorder{path: path}
}

// Path returns the log location.
func (r *Recorder) Path() string {
	return r.path
}

// Append writes one session line, emitting the header first when the file
// does not yet exist. Prior lines are never rewritten.
func (r *Recorder) Append(rec model.HistoryRecord) error {
	_, statErr := os.Stat(r.path)
	writeHeader := os.IsNotExist(statErr)

	file, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Data is flushed before this point.
			_ = cerr
		}
	}()

	w := csv.NewWriter(file)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to write history header: %w", err)
		}
	}
	row := []string{
		strconv.FormatInt(rec.Timestamp, 10),
		strconv.Itoa(rec.DurationSeconds),
		strconv.FormatFloat(rec.AvgWPM, 'f', 2, 64),
		strconv.FormatFloat(rec.PeakWPM, 'f', 2, 64),
		strconv.FormatFloat(rec.Accuracy, 'f', 2, 64),
		strconv.Itoa(rec.CharsTyped),
		strconv.Itoa(rec.Errors),
		strconv.FormatBool(rec.RequireCorrection),
		rec.Source,
		strconv.Itoa(rec.MaxWordLength),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to write history row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush history row: %w", err)
	}
	return nil
}
