package stats

import (
	"testing"

	"github.com/pato/ratatype/internal/model"
)

func TestSelectWeakKeys(t *testing.T) {
	aggs := []model.KeyAggregate{
		{Char: "a", Attempts: 20, Errors: 10},
		{Char: "b", Attempts: 20, Errors: 2},
		{Char: "c", Attempts: 20, Errors: 6},
	}
	weak := SelectWeakKeys(aggs, 2)
	if len(weak) != 2 {
		t.Fatalf("expected 2 weak keys, got %d", len(weak))
	}
	if _, ok := weak['a']; !ok {
		t.Fatalf("expected a in weak set")
	}
	if _, ok := weak['c']; !ok {
		t.Fatalf("expected c in weak set")
	}
}

func TestSelectWeakKeysSkipsLowVolume(t *testing.T) {
	aggs := []model.KeyAggregate{
		{Char: "x", Attempts: 2, Errors: 2},
		{Char: "y", Attempts: 20, Errors: 1},
	}
	weak := SelectWeakKeys(aggs, 5)
	if _, ok := weak['x']; ok {
		t.Fatalf("expected x filtered out below attempt threshold")
	}
	if _, ok := weak['y']; !ok {
		t.Fatalf("expected y in weak set")
	}
}

func TestSelectWeakKeysTieBreaksByChar(t *testing.T) {
	aggs := []model.KeyAggregate{
		{Char: "m", Attempts: 10, Errors: 5},
		{Char: "a", Attempts: 10, Errors: 5},
		{Char: "z", Attempts: 10, Errors: 5},
	}
	weak := SelectWeakKeys(aggs, 2)
	if _, ok := weak['a']; !ok {
		t.Fatalf("expected a in weak set")
	}
	if _, ok := weak['m']; !ok {
		t.Fatalf("expected m in weak set")
	}
	if _, ok := weak['z']; ok {
		t.Fatalf("expected z excluded by tie-break")
	}
}

func TestSelectWeakKeysEmpty(t *testing.T) {
	weak := SelectWeakKeys(nil, 5)
	if len(weak) != 0 {
		t.Fatalf("expected empty weak set, got %d", len(weak))
	}
}
