package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pato/ratatype/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ratatype", "ratatype.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return s
}

func testSession(endedAt time.Time, source string, wpm float64) model.SessionRecord {
	return model.SessionRecord{
		StartedAt:         endedAt.Add(-30 * time.Second),
		EndedAt:           endedAt,
		DurationSeconds:   30,
		Source:            source,
		MaxWordLength:     7,
		RequireCorrection: false,
		CharsTyped:        150,
		Keystrokes:        160,
		Errors:            10,
		AvgWPM:            wpm,
		PeakWPM:           wpm + 12,
		Accuracy:          93.75,
	}
}

func TestInsertAndListSessions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	keys := []model.KeyStats{
		{Char: "a", Attempts: 40, Errors: 2, LatencySumMs: 8000},
		{Char: "b", Attempts: 10, Errors: 5, LatencySumMs: 4000},
	}
	id, err := s.InsertSession(ctx, testSession(base, "google", 55), keys)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected a session id")
	}
	if _, err := s.InsertSession(ctx, testSession(base.Add(time.Hour), "builtin", 60), nil); err != nil {
		t.Fatalf("insert second session: %v", err)
	}

	sessions, err := s.ListSessions(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if !sessions[0].EndedAt.Before(sessions[1].EndedAt) {
		t.Fatalf("expected ascending order by ended_at")
	}
	if sessions[0].AvgWPM != 55 || sessions[0].Errors != 10 {
		t.Fatalf("unexpected first session %+v", sessions[0])
	}
}

func TestListSessionsFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		source := "google"
		if i == 2 {
			source = "system"
		}
		if _, err := s.InsertSession(ctx, testSession(base.Add(time.Duration(i)*time.Hour), source, 50+float64(i)), nil); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	bySource, err := s.ListSessions(ctx, model.StatsConfig{Source: "google"})
	if err != nil {
		t.Fatalf("list by source: %v", err)
	}
	if len(bySource) != 2 {
		t.Fatalf("expected 2 google sessions, got %d", len(bySource))
	}

	since := base.Add(90 * time.Minute)
	recent, err := s.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 recent session, got %d", len(recent))
	}
}

func TestKeyAggregates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	first := []model.KeyStats{{Char: "a", Attempts: 10, Errors: 1, LatencySumMs: 1000}}
	second := []model.KeyStats{
		{Char: "a", Attempts: 20, Errors: 3, LatencySumMs: 3000},
		{Char: "b", Attempts: 5, Errors: 0, LatencySumMs: 900},
	}
	if _, err := s.InsertSession(ctx, testSession(base, "google", 50), first); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.InsertSession(ctx, testSession(base.Add(time.Hour), "google", 52), second); err != nil {
		t.Fatalf("insert: %v", err)
	}

	aggs, err := s.KeyAggregates(ctx, 10, "")
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	byChar := map[string]model.KeyAggregate{}
	for _, a := range aggs {
		byChar[a.Char] = a
	}
	a, ok := byChar["a"]
	if !ok {
		t.Fatalf("expected aggregate for a")
	}
	if a.Attempts != 30 || a.Errors != 4 || a.LatencySumMs != 4000 {
		t.Fatalf("unexpected aggregate for a: %+v", a)
	}

	window, err := s.KeyAggregates(ctx, 1, "")
	if err != nil {
		t.Fatalf("aggregate window: %v", err)
	}
	byChar = map[string]model.KeyAggregate{}
	for _, agg := range window {
		byChar[agg.Char] = agg
	}
	if byChar["a"].Attempts != 20 {
		t.Fatalf("expected window to cover only the latest session, got %+v", byChar["a"])
	}
}

func TestListKeyAggregatesForSessions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	id1, err := s.InsertSession(ctx, testSession(base, "google", 50), []model.KeyStats{{Char: "x", Attempts: 4, Errors: 1, LatencySumMs: 400}})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.InsertSession(ctx, testSession(base.Add(time.Hour), "google", 51), []model.KeyStats{{Char: "x", Attempts: 6, Errors: 0, LatencySumMs: 600}}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	aggs, err := s.ListKeyAggregatesForSessions(ctx, []int64{id1})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(aggs) != 1 || aggs[0].Attempts != 4 {
		t.Fatalf("expected only the first session's stats, got %+v", aggs)
	}

	none, err := s.ListKeyAggregatesForSessions(ctx, nil)
	if err != nil {
		t.Fatalf("aggregate empty: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no aggregates for empty id list")
	}
}
