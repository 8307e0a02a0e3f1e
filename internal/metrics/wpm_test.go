package metrics

import (
	"math"
	"testing"
)

func TestSamplerWarmup(t *testing.T) {
	s := NewSampler()
	if s.MaybeSample(1.9, 10) {
		t.Fatalf("expected no sample before warm-up")
	}
	if len(s.Samples()) != 0 {
		t.Fatalf("expected 0 samples, got %d", len(s.Samples()))
	}
	if !s.MaybeSample(2.0, 10) {
		t.Fatalf("expected a sample once warm-up passed")
	}
	if got := s.Current(); math.Abs(got-60.0) > 1e-9 {
		t.Fatalf("expected 60 WPM, got %.4f", got)
	}
}

func TestSamplerRateLimit(t *testing.T) {
	s := NewSampler()
	s.MaybeSample(2.0, 10)
	if s.MaybeSample(2.5, 12) {
		t.Fatalf("expected rate limit to reject sample at 2.5s")
	}
	if !s.MaybeSample(3.0, 15) {
		t.Fatalf("expected sample at 3.0s")
	}
	samples := s.Samples()
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].Seconds >= samples[1].Seconds {
		t.Fatalf("expected strictly increasing times, got %.1f then %.1f", samples[0].Seconds, samples[1].Seconds)
	}
}

func TestSamplerCap(t *testing.T) {
	s := NewSampler()
	s.MaybeSample(2.0, 10000)
	if got := s.Current(); got != 500.0 {
		t.Fatalf("expected cap at 500, got %.1f", got)
	}
}

func TestSamplerQueriesEmpty(t *testing.T) {
	s := NewSampler()
	if s.Current() != 0 || s.Average() != 0 || s.Peak() != 0 {
		t.Fatalf("expected zero queries on empty sampler")
	}
}

func TestSamplerQueries(t *testing.T) {
	s := NewSampler()
	s.MaybeSample(2.0, 10) // 60 WPM
	s.MaybeSample(3.0, 20) // 80 WPM
	if got := s.Average(); math.Abs(got-70.0) > 1e-9 {
		t.Fatalf("expected average 70, got %.4f", got)
	}
	if got := s.Peak(); math.Abs(got-80.0) > 1e-9 {
		t.Fatalf("expected peak 80, got %.4f", got)
	}
	vals := s.Values()
	if len(vals) != 2 || math.Abs(vals[1]-80.0) > 1e-9 {
		t.Fatalf("unexpected values %v", vals)
	}
}
