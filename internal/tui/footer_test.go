package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/pato/ratatype/internal/session"
)

func TestRenderFooterFormats(t *testing.T) {
	m := &Model{
		engine: session.New("abc", session.Config{Duration: time.Minute}),
	}
	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"WPM 0", "Acc 100%"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
