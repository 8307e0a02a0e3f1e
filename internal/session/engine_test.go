package session

import (
	"math"
	"testing"
	"time"
)

// testClock advances only when told, making latency and deadline math exact.
type testClock struct {
	at time.Time
}

func newTestClock() *testClock {
	return &testClock{at: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) now() time.Time {
	return c.at
}

func (c *testClock) advance(d time.Duration) {
	c.at = c.at.Add(d)
}

func newTestEngine(target string, cfg Config) (*Engine, *testClock) {
	if cfg.Duration == 0 {
		cfg.Duration = time.Minute
	}
	e := New(target, cfg)
	clk := newTestClock()
	e.now = clk.now
	return e, clk
}

func TestNormalModeErrorsAdvance(t *testing.T) {
	e, clk := newTestEngine("abc", Config{})
	e.TypeRune('a')
	clk.advance(100 * time.Millisecond)
	e.TypeRune('x')
	clk.advance(100 * time.Millisecond)
	e.TypeRune('c')

	if e.Cursor() != 3 {
		t.Fatalf("expected cursor 3, got %d", e.Cursor())
	}
	if e.Errors() != 1 {
		t.Fatalf("expected 1 error, got %d", e.Errors())
	}
	if e.Keystrokes() != 3 {
		t.Fatalf("expected 3 keystrokes, got %d", e.Keystrokes())
	}
	snap := e.Snapshot()
	if snap.Marks[0] || !snap.Marks[1] || snap.Marks[2] {
		t.Fatalf("expected marks [false true false], got %v", snap.Marks)
	}
	if string(snap.Echo) != "axc" {
		t.Fatalf("expected echo axc, got %q", string(snap.Echo))
	}
	if !e.Finished() {
		t.Fatalf("expected session finished")
	}
	if got := e.Accuracy(); math.Abs(got-66.6666666667) > 0.001 {
		t.Fatalf("expected accuracy 66.67, got %.4f", got)
	}
}

func TestCorrectionModeBlocksOnError(t *testing.T) {
	e, _ := newTestEngine("ab", Config{RequireCorrection: true})
	e.TypeRune('x')
	if e.Cursor() != 0 {
		t.Fatalf("expected cursor to stay at 0, got %d", e.Cursor())
	}
	if len(e.Snapshot().Echo) != 0 {
		t.Fatalf("expected empty echo after rejected key")
	}
	if e.Errors() != 1 || e.Keystrokes() != 1 {
		t.Fatalf("expected 1 error and 1 keystroke, got %d and %d", e.Errors(), e.Keystrokes())
	}
	e.TypeRune('a')
	e.TypeRune('b')
	if e.Cursor() != 2 || !e.Finished() {
		t.Fatalf("expected finished at cursor 2, got cursor %d finished %v", e.Cursor(), e.Finished())
	}
	snap := e.Snapshot()
	if !snap.Marks[0] || snap.Marks[1] {
		t.Fatalf("expected marks [true false], got %v", snap.Marks)
	}
	if string(snap.Echo) != "ab" {
		t.Fatalf("expected echo ab, got %q", string(snap.Echo))
	}
}

func TestBackspaceKeepsRecordedMetrics(t *testing.T) {
	e, clk := newTestEngine("ab", Config{})
	e.TypeRune('a')
	clk.advance(50 * time.Millisecond)
	e.Backspace()

	if e.Cursor() != 0 {
		t.Fatalf("expected cursor 0 after backspace, got %d", e.Cursor())
	}
	if len(e.Snapshot().Echo) != 0 {
		t.Fatalf("expected empty echo after backspace")
	}
	if e.Errors() != 0 {
		t.Fatalf("expected 0 errors, got %d", e.Errors())
	}
	if got := e.Keys().Attempts('a'); got != 1 {
		t.Fatalf("expected the latency sample for a to survive, got %d samples", got)
	}
	if e.Keystrokes() != 2 {
		t.Fatalf("expected backspace to count as a keystroke, got %d", e.Keystrokes())
	}
}

func TestTimeoutForcesFinish(t *testing.T) {
	e, clk := newTestEngine("abcdef", Config{Duration: 2 * time.Second})
	e.CheckTimeout()
	if e.Finished() {
		t.Fatalf("expected no timeout before the session starts")
	}
	e.TypeRune('a')
	clk.advance(1900 * time.Millisecond)
	e.CheckTimeout()
	if e.Finished() {
		t.Fatalf("expected session still running at 1.9s")
	}
	clk.advance(100 * time.Millisecond)
	e.CheckTimeout()
	if !e.Finished() {
		t.Fatalf("expected timeout to finish the session")
	}
	if e.Cursor() != 1 {
		t.Fatalf("expected cursor 1 at timeout, got %d", e.Cursor())
	}
}

func TestFinishedSessionIgnoresInput(t *testing.T) {
	e, _ := newTestEngine("a", Config{})
	e.TypeRune('a')
	if !e.Finished() {
		t.Fatalf("expected session finished after last char")
	}
	e.TypeRune('b')
	e.Backspace()
	if e.Keystrokes() != 1 || e.Cursor() != 1 {
		t.Fatalf("expected input after finish to be ignored, got %d keystrokes cursor %d", e.Keystrokes(), e.Cursor())
	}
}

func TestCorrectionModeTimerKeepsRunning(t *testing.T) {
	e, clk := newTestEngine("ab", Config{RequireCorrection: true})
	e.TypeRune('x')
	clk.advance(100 * time.Millisecond)
	e.TypeRune('y')
	clk.advance(100 * time.Millisecond)
	e.TypeRune('a')

	if got := e.Keys().Attempts('a'); got != 3 {
		t.Fatalf("expected 3 attempts against a, got %d", got)
	}
	// Misses never re-arm the timer, so the samples measure 0, 100 and
	// 200ms from the moment the position was reached.
	mean, ok := e.Keys().MeanLatency('a')
	if !ok {
		t.Fatalf("expected a mean latency for a")
	}
	if mean != 100*time.Millisecond {
		t.Fatalf("expected mean 100ms, got %v", mean)
	}
	if e.Errors() != 2 {
		t.Fatalf("expected 2 errors, got %d", e.Errors())
	}
}

func TestNormalModeErrorRestartsTimer(t *testing.T) {
	e, clk := newTestEngine("ab", Config{})
	e.TypeRune('x')
	clk.advance(50 * time.Millisecond)
	e.TypeRune('b')

	mean, ok := e.Keys().MeanLatency('b')
	if !ok {
		t.Fatalf("expected a mean latency for b")
	}
	if mean != 50*time.Millisecond {
		t.Fatalf("expected mean 50ms, got %v", mean)
	}
}

func TestWpmGatesThroughEngine(t *testing.T) {
	e, clk := newTestEngine("aaaaaaaaaaaaaaaaaaaa", Config{Duration: time.Minute})
	for i := 0; i < 9; i++ {
		e.TypeRune('a')
	}
	if got := len(e.WPM().Samples()); got != 0 {
		t.Fatalf("expected no samples during warm-up, got %d", got)
	}

	clk.advance(2 * time.Second)
	e.TypeRune('a') // cursor 10 at 2.0s
	if got := len(e.WPM().Samples()); got != 1 {
		t.Fatalf("expected first sample at 2.0s, got %d samples", got)
	}
	if got := e.WPM().Current(); math.Abs(got-60.0) > 1e-9 {
		t.Fatalf("expected 60 WPM, got %.4f", got)
	}

	clk.advance(500 * time.Millisecond)
	e.TypeRune('a')
	if got := len(e.WPM().Samples()); got != 1 {
		t.Fatalf("expected rate limit to hold at 2.5s, got %d samples", got)
	}

	clk.advance(500 * time.Millisecond)
	e.TypeRune('a') // cursor 12 at 3.0s
	if got := len(e.WPM().Samples()); got != 2 {
		t.Fatalf("expected second sample at 3.0s, got %d samples", got)
	}
	if got := e.WPM().Current(); math.Abs(got-48.0) > 1e-9 {
		t.Fatalf("expected 48 WPM, got %.4f", got)
	}
}

func TestBackspaceBeforeTypingStartsClock(t *testing.T) {
	e, clk := newTestEngine("ab", Config{Duration: time.Second})
	e.Backspace()
	if !e.Started() {
		t.Fatalf("expected first input of any kind to start the clock")
	}
	if e.Keystrokes() != 0 {
		t.Fatalf("expected empty backspace to count nothing, got %d", e.Keystrokes())
	}
	clk.advance(time.Second)
	e.CheckTimeout()
	if !e.Finished() {
		t.Fatalf("expected timeout after the clock started")
	}
}

func TestAccuracyBeforeInput(t *testing.T) {
	e, _ := newTestEngine("abc", Config{})
	if got := e.Accuracy(); got != 100 {
		t.Fatalf("expected 100%% accuracy before input, got %.1f", got)
	}
	if e.Elapsed() != 0 {
		t.Fatalf("expected zero elapsed before input, got %v", e.Elapsed())
	}
}

func TestRemainingFloorsAtZero(t *testing.T) {
	e, clk := newTestEngine("abc", Config{Duration: time.Second})
	e.TypeRune('a')
	clk.advance(3 * time.Second)
	if got := e.Remaining(); got != 0 {
		t.Fatalf("expected remaining 0, got %v", got)
	}
}
