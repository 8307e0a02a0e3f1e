// Package metrics collects per-key latency and error data plus WPM samples
// for a single typing session.
package metrics

import (
	"sort"
	"time"

	"github.com/pato/ratatype/internal/model"
)

// keyMetric accumulates raw observations for one expected character.
type keyMetric struct {
	latencies []time.Duration
	errors    int
}

// KeyTracker records latency samples and error counts keyed by the expected
// character, regardless of what was actually typed.
type KeyTracker struct {
	keys map[rune]*keyMetric
}

// NewKeyTracker returns an empty tracker.
func NewKeyTracker() *KeyTracker {
	return &KeyTracker{keys: make(map[rune]*keyMetric)}
}

func (t *KeyTracker) metric(r rune) *keyMetric {
	m, ok := t.keys[r]
	if !ok {
		m = &keyMetric{}
		t.keys[r] = m
	}
	return m
}

// RecordAttempt appends a latency sample for the expected character.
func (t *KeyTracker) RecordAttempt(expected rune, latency time.Duration) {
	m := t.metric(expected)
	m.latencies = append(m.latencies, latency)
}

// RecordError counts a mismatch against the expected character.
func (t *KeyTracker) RecordError(expected rune) {
	t.metric(expected).errors++
}

// Seen reports whether any data was recorded for r.
func (t *KeyTracker) Seen(r rune) bool {
	_, ok := t.keys[r]
	return ok
}

// Attempts returns the number of latency samples recorded for r.
func (t *KeyTracker) Attempts(r rune) int {
	if m, ok := t.keys[r]; ok {
		return len(m.latencies)
	}
	return 0
}

// Errors returns the number of mismatches recorded against r.
func (t *KeyTracker) Errors(r rune) int {
	if m, ok := t.keys[r]; ok {
		return m.errors
	}
	return 0
}

// MeanLatency returns the mean of r's latency samples; ok is false when r has
// no samples.
func (t *KeyTracker) MeanLatency(r rune) (time.Duration, bool) {
	m, ok := t.keys[r]
	if !ok || len(m.latencies) == 0 {
		return 0, false
	}
	var sum time.Duration
	for _, d := range m.latencies {
		sum += d
	}
	return sum / time.Duration(len(m.latencies)), true
}

// Means returns every computable per-key mean latency, in no particular order.
func (t *KeyTracker) Means() []time.Duration {
	means := make([]time.Duration, 0, len(t.keys))
	for r := range t.keys {
		if mean, ok := t.MeanLatency(r); ok {
			means = append(means, mean)
		}
	}
	return means
}

// KeySpeed pairs a character with its mean latency.
type KeySpeed struct {
	Char rune
	Mean time.Duration
}

// KeyErrorCount pairs a character with its error count.
type KeyErrorCount struct {
	Char   rune
	Errors int
}

// KeyAccuracy pairs a character with its accuracy percentage.
type KeyAccuracy struct {
	Char     rune
	Accuracy float64
}

func (t *KeyTracker) speeds() []KeySpeed {
	out := make([]KeySpeed, 0, len(t.keys))
	for r := range t.keys {
		if mean, ok := t.MeanLatency(r); ok {
			out = append(out, KeySpeed{Char: r, Mean: mean})
		}
	}
	return out
}

// Fastest returns up to n keys ordered by ascending mean latency.
// Ties order by character ascending.
func (t *KeyTracker) Fastest(n int) []KeySpeed {
	ranked := t.speeds()
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Mean != ranked[j].Mean {
			return ranked[i].Mean < ranked[j].Mean
		}
		return ranked[i].Char < ranked[j].Char
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Slowest returns up to n keys ordered by descending mean latency.
// Ties order by character ascending.
func (t *KeyTracker) Slowest(n int) []KeySpeed {
	ranked := t.speeds()
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Mean != ranked[j].Mean {
			return ranked[i].Mean > ranked[j].Mean
		}
		return ranked[i].Char < ranked[j].Char
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MostErrorProne returns up to n keys with at least one error, ordered by
// descending error count. Ties order by character ascending.
func (t *KeyTracker) MostErrorProne(n int) []KeyErrorCount {
	ranked := make([]KeyErrorCount, 0, len(t.keys))
	for r, m := range t.keys {
		if m.errors > 0 {
			ranked = append(ranked, KeyErrorCount{Char: r, Errors: m.errors})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Errors != ranked[j].Errors {
			return ranked[i].Errors > ranked[j].Errors
		}
		return ranked[i].Char < ranked[j].Char
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MostAccurate returns up to n keys with at least one latency sample, ordered
// by descending accuracy percentage. Ties order by character ascending.
func (t *KeyTracker) MostAccurate(n int) []KeyAccuracy {
	ranked := make([]KeyAccuracy, 0, len(t.keys))
	for r, m := range t.keys {
		if len(m.latencies) == 0 {
			continue
		}
		acc := (float64(len(m.latencies)) - float64(m.errors)) / float64(len(m.latencies)) * 100
		if acc < 0 {
			acc = 0
		}
		ranked = append(ranked, KeyAccuracy{Char: r, Accuracy: acc})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Accuracy != ranked[j].Accuracy {
			return ranked[i].Accuracy > ranked[j].Accuracy
		}
		return ranked[i].Char < ranked[j].Char
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Stats exports per-key totals for archival, sorted by character.
func (t *KeyTracker) Stats() []model.KeyStats {
	out := make([]model.KeyStats, 0, len(t.keys))
	for r, m := range t.keys {
		var sum time.Duration
		for _, d := range m.latencies {
			sum += d
		}
		out = append(out, model.KeyStats{
			Char:         string(r),
			Attempts:     len(m.latencies),
			Errors:       m.errors,
			LatencySumMs: sum.Milliseconds(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Char < out[j].Char })
	return out
}
