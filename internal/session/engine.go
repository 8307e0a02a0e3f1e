// Package session implements the typing test state machine.
package session

import (
	"time"

	"github.com/pato/ratatype/internal/metrics"
)

// Config fixes a session's parameters at construction.
type Config struct {
	Duration          time.Duration
	RequireCorrection bool
}

// Engine owns one typing session: the target text, the echo of entered input,
// progress and error counters, and the per-session analytics. A single update
// loop owns it; no internal locking.
type Engine struct {
	target     []rune
	echo       []rune
	cursor     int
	marks      []bool
	keystrokes int
	errors     int

	startedAt time.Time
	finished  bool

	correction bool
	duration   time.Duration

	keyTimer time.Time
	now      func() time.Time

	keys *metrics.KeyTracker
	wpm  *metrics.Sampler
}

// New builds an engine for the given target text. Analytics trackers share the
// engine's lifetime; restarting a test means building a new engine.
func New(target string, cfg Config) *Engine {
	runes := []rune(target)
	return &Engine{
		target:     runes,
		marks:      make([]bool, len(runes)),
		correction: cfg.RequireCorrection,
		duration:   cfg.Duration,
		now:        time.Now,
		keys:       metrics.NewKeyTracker(),
		wpm:        metrics.NewSampler(),
	}
}

// begin starts the session clock on the first input of any kind.
func (e *Engine) begin(now time.Time) {
	if !e.startedAt.IsZero() {
		return
	}
	e.startedAt = now
	e.armKeyTimer(now)
}

// armKeyTimer starts latency timing for the character at the cursor.
func (e *Engine) armKeyTimer(now time.Time) {
	if e.cursor < len(e.target) {
		e.keyTimer = now
	}
}

func (e *Engine) sampleWPM(now time.Time) {
	e.wpm.MaybeSample(now.Sub(e.startedAt).Seconds(), e.cursor)
}

// TypeRune feeds one printable character. No-op once the session finished.
func (e *Engine) TypeRune(r rune) {
	if e.finished {
		return
	}
	now := e.now()
	e.begin(now)
	if e.cursor >= len(e.target) {
		return
	}
	expected := e.target[e.cursor]

	// Latency is attributed to the expected character on every attempt,
	// correct or not.
	if !e.keyTimer.IsZero() {
		e.keys.RecordAttempt(expected, now.Sub(e.keyTimer))
	}

	if e.correction {
		if r == expected {
			e.echo = append(e.echo, r)
			e.keystrokes++
			e.cursor++
			e.armKeyTimer(now)
			e.sampleWPM(now)
		} else {
			// Stay on this position until the right key arrives. The timer
			// keeps running, so the eventual retry pays for the misses.
			e.errors++
			e.keystrokes++
			e.keys.RecordError(expected)
			e.marks[e.cursor] = true
		}
	} else {
		e.echo = append(e.echo, r)
		e.keystrokes++
		if r == expected {
			e.cursor++
			e.armKeyTimer(now)
			e.sampleWPM(now)
		} else {
			e.errors++
			e.keys.RecordError(expected)
			e.marks[e.cursor] = true
			e.cursor++
			e.armKeyTimer(now)
		}
	}

	if e.cursor >= len(e.target) {
		e.finished = true
	}
}

// Backspace removes the last echoed character and steps the cursor back.
// Counters, correction marks, and recorded key metrics are never rolled back.
func (e *Engine) Backspace() {
	if e.finished {
		return
	}
	now := e.now()
	e.begin(now)
	if len(e.echo) > 0 {
		e.echo = e.echo[:len(e.echo)-1]
		e.keystrokes++
	}
	if e.cursor > 0 {
		e.cursor--
		e.armKeyTimer(now)
	}
}

// CheckTimeout forces the session to finish once the configured duration has
// elapsed. Called on every poll tick so the deadline fires even when no keys
// arrive.
func (e *Engine) CheckTimeout() {
	if e.finished || e.startedAt.IsZero() {
		return
	}
	if e.now().Sub(e.startedAt) >= e.duration {
		e.finished = true
	}
}

// Started reports whether the first input arrived.
func (e *Engine) Started() bool {
	return !e.startedAt.IsZero()
}

// Finished reports whether the session ended, by exhaustion or timeout.
func (e *Engine) Finished() bool {
	return e.finished
}

// Cursor returns the number of target characters passed so far.
func (e *Engine) Cursor() int {
	return e.cursor
}

// Keystrokes returns the total number of counted inputs.
func (e *Engine) Keystrokes() int {
	return e.keystrokes
}

// Errors returns the number of mismatched printable inputs.
func (e *Engine) Errors() int {
	return e.errors
}

// Duration returns the configured test length.
func (e *Engine) Duration() time.Duration {
	return e.duration
}

// CorrectionMode reports whether mismatches block progress.
func (e *Engine) CorrectionMode() bool {
	return e.correction
}

// Accuracy returns the session accuracy percentage, 100 before any keystroke.
func (e *Engine) Accuracy() float64 {
	if e.keystrokes == 0 {
		return 100
	}
	return float64(e.keystrokes-e.errors) / float64(e.keystrokes) * 100
}

// Elapsed returns time since the first input, zero before it.
func (e *Engine) Elapsed() time.Duration {
	if e.startedAt.IsZero() {
		return 0
	}
	return e.now().Sub(e.startedAt)
}

// Remaining returns the time left before the deadline, floored at zero.
func (e *Engine) Remaining() time.Duration {
	left := e.duration - e.Elapsed()
	if left < 0 {
		return 0
	}
	return left
}

// StartedAt returns the session start time, zero before the first input.
func (e *Engine) StartedAt() time.Time {
	return e.startedAt
}

// Keys exposes the per-key tracker for read-only rendering queries.
func (e *Engine) Keys() *metrics.KeyTracker {
	return e.keys
}

// WPM exposes the sampler for read-only rendering queries.
func (e *Engine) WPM() *metrics.Sampler {
	return e.wpm
}

// Snapshot is a read-only view of session progress for rendering. Slices
// share the engine's backing arrays; callers must not mutate them.
type Snapshot struct {
	Target   []rune
	Echo     []rune
	Marks    []bool
	Cursor   int
	Started  bool
	Finished bool
}

// Snapshot captures the current display state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Target:   e.target,
		Echo:     e.echo,
		Marks:    e.marks,
		Cursor:   e.cursor,
		Started:  !e.startedAt.IsZero(),
		Finished: e.finished,
	}
}
