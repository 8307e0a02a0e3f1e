// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// TextSource selects where target text comes from.
type TextSource int

const (
	// SourceGoogle uses the bundled frequency-ordered word list.
	SourceGoogle TextSource = iota
	// SourceSystem uses the system dictionary at /usr/share/dict/words.
	SourceSystem
	// SourceBuiltin uses the embedded sample excerpts.
	SourceBuiltin
)

// ParseTextSource resolves a CLI selector, accepting common aliases.
func ParseTextSource(s string) (TextSource, error) {
	switch s {
	case "google", "google10k", "top10k":
		return SourceGoogle, nil
	case "system", "dict", "dictionary":
		return SourceSystem, nil
	case "builtin", "built-in", "samples":
		return SourceBuiltin, nil
	default:
		return 0, fmt.Errorf("unknown text source %q (valid: google, system, builtin)", s)
	}
}

func (s TextSource) String() string {
	switch s {
	case SourceSystem:
		return "system"
	case SourceBuiltin:
		return "builtin"
	default:
		return "google"
	}
}

// Config defines test settings.
type Config struct {
	Duration          int
	RequireCorrection bool
	Source            TextSource
	MaxWordLength     int
	FocusWeak         bool
	WeakTop           int
	WeakFactor        float64
	WeakWindow        int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Source      string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionRecord captures a completed typing session.
type SessionRecord struct {
	StartedAt         time.Time
	EndedAt           time.Time
	DurationSeconds   int
	Source            string
	MaxWordLength     int
	RequireCorrection bool
	CharsTyped        int
	Keystrokes        int
	Errors            int
	AvgWPM            float64
	PeakWPM           float64
	Accuracy          float64
}

// KeyStats stores per-key stats for a session.
type KeyStats struct {
	Char         string
	Attempts     int
	Errors       int
	LatencySumMs int64
}

// KeyAggregate aggregates key stats across sessions.
type KeyAggregate struct {
	Char         string
	Attempts     int
	Errors       int
	LatencySumMs int64
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID int64
	EndedAt   time.Time
	AvgWPM    float64
	Accuracy  float64
	Errors    int
}

// HistoryRecord is one line of the per-user CSV history log.
type HistoryRecord struct {
	Timestamp         int64
	DurationSeconds   int
	AvgWPM            float64
	PeakWPM           float64
	Accuracy          float64
	CharsTyped        int
	Errors            int
	RequireCorrection bool
	Source            string
	MaxWordLength     int
}
