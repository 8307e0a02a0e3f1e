package metrics

// WPM sampling gates and scaling.
const (
	warmupSeconds  = 2.0
	sampleInterval = 1.0
	charsPerWord   = 5.0
	maxWPM         = 500.0
)

// Sample is one WPM observation at a session-relative time.
type Sample struct {
	Seconds float64
	WPM     float64
}

// Sampler collects rate-limited WPM samples over a session. Sample times are
// strictly increasing.
type Sampler struct {
	samples []Sample
	lastAt  float64
}

// NewSampler returns an empty sampler.
func NewSampler() *Sampler {
	return &Sampler{}
}

// MaybeSample records a WPM observation when the gates allow it: the first
// sample requires the warm-up period to have passed, later samples must be at
// least the sample interval apart. elapsed is seconds since the session
// started, cursor the number of characters advanced so far. Reports whether a
// sample was recorded.
func (s *Sampler) MaybeSample(elapsed float64, cursor int) bool {
	if len(s.samples) == 0 {
		if elapsed < warmupSeconds {
			return false
		}
	} else if elapsed-s.lastAt < sampleInterval {
		return false
	}
	words := float64(cursor) / charsPerWord
	wpm := words / (elapsed / 60.0)
	if wpm > maxWPM {
		wpm = maxWPM
	}
	s.samples = append(s.samples, Sample{Seconds: elapsed, WPM: wpm})
	s.lastAt = elapsed
	return true
}

// Current returns the most recent sample's WPM, or 0 before any sample.
func (s *Sampler) Current() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return s.samples[len(s.samples)-1].WPM
}

// Average returns the mean WPM across all samples, or 0.
func (s *Sampler) Average() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	var sum float64
	for _, smp := range s.samples {
		sum += smp.WPM
	}
	return sum / float64(len(s.samples))
}

// Peak returns the highest sampled WPM, or 0.
func (s *Sampler) Peak() float64 {
	var peak float64
	for _, smp := range s.samples {
		if smp.WPM > peak {
			peak = smp.WPM
		}
	}
	return peak
}

// Samples returns the recorded series in order.
func (s *Sampler) Samples() []Sample {
	return s.samples
}

// Values returns the WPM values in sample order.
func (s *Sampler) Values() []float64 {
	vals := make([]float64, len(s.samples))
	for i, smp := range s.samples {
		vals[i] = smp.WPM
	}
	return vals
}
