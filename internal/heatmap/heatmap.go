// Package heatmap classifies per-key performance into display bands.
package heatmap

import (
	"github.com/pato/ratatype/internal/metrics"
)

// SpeedBand grades a key's mean latency relative to the session's range.
type SpeedBand int

const (
	SpeedUnused SpeedBand = iota
	SpeedNoData
	SpeedFastest
	SpeedFast
	SpeedMedium
	SpeedSlow
	SpeedSlowest
)

func (b SpeedBand) String() string {
	switch b {
	case SpeedUnused:
		return "unused"
	case SpeedNoData:
		return "no-data"
	case SpeedFastest:
		return "fastest"
	case SpeedFast:
		return "fast"
	case SpeedMedium:
		return "medium"
	case SpeedSlow:
		return "slow"
	case SpeedSlowest:
		return "slowest"
	}
	return "unknown"
}

// AccuracyBand grades a key's hit rate.
type AccuracyBand int

const (
	AccuracyUnused AccuracyBand = iota
	AccuracyNoData
	AccuracyHighest
	AccuracyHigh
	AccuracyMedium
	AccuracyLow
	AccuracyLowest
)

func (b AccuracyBand) String() string {
	switch b {
	case AccuracyUnused:
		return "unused"
	case AccuracyNoData:
		return "no-data"
	case AccuracyHighest:
		return "highest"
	case AccuracyHigh:
		return "high"
	case AccuracyMedium:
		return "medium"
	case AccuracyLow:
		return "low"
	case AccuracyLowest:
		return "lowest"
	}
	return "unknown"
}

// speedThresholds lists (upper bound, band) pairs for the relative latency
// position, evaluated top-down. Values at or past the last bound fall
// through to SpeedSlowest.
var speedThresholds = []struct {
	upper float64
	band  SpeedBand
}{
	{0.16, SpeedFastest},
	{0.33, SpeedFast},
	{0.67, SpeedMedium},
	{0.83, SpeedSlow},
}

// accuracyThresholds lists (lower bound, band) pairs for the accuracy
// fraction, evaluated top-down. Values below the last bound fall through to
// AccuracyLowest.
var accuracyThresholds = []struct {
	lower float64
	band  AccuracyBand
}{
	{0.95, AccuracyHighest},
	{0.85, AccuracyHigh},
	{0.70, AccuracyMedium},
	{0.50, AccuracyLow},
}

// Mapper computes display bands from current tracker state. Bands are pure
// functions of the tracker, recomputed on demand.
type Mapper struct {
	keys *metrics.KeyTracker
}

// NewMapper wraps a tracker for band queries.
func NewMapper(keys *metrics.KeyTracker) *Mapper {
	return &Mapper{keys: keys}
}

// Speed classifies r by where its mean latency sits between the fastest and
// slowest per-key means of the session. Keys never touched report unused;
// keys that cannot be ranked (no samples, fewer than two ranked keys, or a
// zero latency range) report no-data.
func (m *Mapper) Speed(r rune) SpeedBand {
	if !m.keys.Seen(r) {
		return SpeedUnused
	}
	mean, ok := m.keys.MeanLatency(r)
	if !ok {
		return SpeedNoData
	}
	means := m.keys.Means()
	if len(means) < 2 {
		return SpeedNoData
	}
	minMean, maxMean := means[0], means[0]
	for _, v := range means[1:] {
		if v < minMean {
			minMean = v
		}
		if v > maxMean {
			maxMean = v
		}
	}
	if maxMean == minMean {
		return SpeedNoData
	}
	rel := float64(mean-minMean) / float64(maxMean-minMean)
	for _, th := range speedThresholds {
		if rel < th.upper {
			return th.band
		}
	}
	return SpeedSlowest
}

// Accuracy classifies r by its hit rate across latency samples.
func (m *Mapper) Accuracy(r rune) AccuracyBand {
	if !m.keys.Seen(r) {
		return AccuracyUnused
	}
	samples := m.keys.Attempts(r)
	if samples == 0 {
		return AccuracyNoData
	}
	acc := float64(samples-m.keys.Errors(r)) / float64(samples)
	for _, th := range accuracyThresholds {
		if acc >= th.lower {
			return th.band
		}
	}
	return AccuracyLowest
}
