package heatmap

import (
	"testing"
	"time"

	"github.com/pato/ratatype/internal/metrics"
)

func TestSpeedUnused(t *testing.T) {
	m := NewMapper(metrics.NewKeyTracker())
	if got := m.Speed('q'); got != SpeedUnused {
		t.Fatalf("expected unused, got %v", got)
	}
}

func TestSpeedNoDataWithoutSamples(t *testing.T) {
	tr := metrics.NewKeyTracker()
	tr.RecordError('q')
	m := NewMapper(tr)
	if got := m.Speed('q'); got != SpeedNoData {
		t.Fatalf("expected no-data for error-only key, got %v", got)
	}
}

func TestSpeedNoDataWithSingleRankedKey(t *testing.T) {
	tr := metrics.NewKeyTracker()
	tr.RecordAttempt('a', 100*time.Millisecond)
	m := NewMapper(tr)
	if got := m.Speed('a'); got != SpeedNoData {
		t.Fatalf("expected no-data below ranking population, got %v", got)
	}
}

func TestSpeedNoDataOnZeroRange(t *testing.T) {
	tr := metrics.NewKeyTracker()
	tr.RecordAttempt('a', 100*time.Millisecond)
	tr.RecordAttempt('b', 100*time.Millisecond)
	m := NewMapper(tr)
	if got := m.Speed('a'); got != SpeedNoData {
		t.Fatalf("expected no-data on zero range, got %v", got)
	}
}

func TestSpeedBands(t *testing.T) {
	// Anchors at 0ms and 100ms make each key's mean its own relative
	// position in percent.
	cases := []struct {
		ms   int
		want SpeedBand
	}{
		{0, SpeedFastest},
		{15, SpeedFastest},
		{16, SpeedFast},
		{32, SpeedFast},
		{33, SpeedMedium},
		{66, SpeedMedium},
		{67, SpeedSlow},
		{82, SpeedSlow},
		{83, SpeedSlowest},
		{100, SpeedSlowest},
	}
	for _, c := range cases {
		tr := metrics.NewKeyTracker()
		tr.RecordAttempt('a', 0)
		tr.RecordAttempt('b', 100*time.Millisecond)
		tr.RecordAttempt('c', time.Duration(c.ms)*time.Millisecond)
		m := NewMapper(tr)
		if got := m.Speed('c'); got != c.want {
			t.Fatalf("mean %dms: expected %v, got %v", c.ms, c.want, got)
		}
	}
}

func TestAccuracyUnusedAndNoData(t *testing.T) {
	tr := metrics.NewKeyTracker()
	tr.RecordError('e')
	m := NewMapper(tr)
	if got := m.Accuracy('q'); got != AccuracyUnused {
		t.Fatalf("expected unused, got %v", got)
	}
	if got := m.Accuracy('e'); got != AccuracyNoData {
		t.Fatalf("expected no-data for error-only key, got %v", got)
	}
}

func TestAccuracyBands(t *testing.T) {
	cases := []struct {
		attempts int
		errors   int
		want     AccuracyBand
	}{
		{100, 0, AccuracyHighest},
		{100, 5, AccuracyHighest},
		{100, 6, AccuracyHigh},
		{100, 15, AccuracyHigh},
		{100, 16, AccuracyMedium},
		{100, 30, AccuracyMedium},
		{100, 31, AccuracyLow},
		{100, 50, AccuracyLow},
		{100, 51, AccuracyLowest},
		{100, 100, AccuracyLowest},
	}
	for _, c := range cases {
		tr := metrics.NewKeyTracker()
		for i := 0; i < c.attempts; i++ {
			tr.RecordAttempt('k', 10*time.Millisecond)
		}
		for i := 0; i < c.errors; i++ {
			tr.RecordError('k')
		}
		m := NewMapper(tr)
		if got := m.Accuracy('k'); got != c.want {
			t.Fatalf("%d/%d errors: expected %v, got %v", c.errors, c.attempts, c.want, got)
		}
	}
}
