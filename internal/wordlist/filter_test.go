package wordlist

import "testing"

func TestFilterBounds(t *testing.T) {
	words := []string{"a", "an", "cat", "stretch", "elephant", "encyclopedia"}
	kept := Filter(words, 8)
	want := []string{"cat", "stretch", "elephant"}
	if len(kept) != len(want) {
		t.Fatalf("expected %d words, got %d (%v)", len(want), len(kept), kept)
	}
	for i, w := range want {
		if kept[i] != w {
			t.Fatalf("expected %q at %d, got %q", w, i, kept[i])
		}
	}
}

func TestFilterRejectsNonLowercaseASCII(t *testing.T) {
	for _, word := range []string{"Hello", "don't", "co-op", "résumé", "abc1"} {
		if len(Filter([]string{word}, 20)) != 0 {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestEmbeddedListUsable(t *testing.T) {
	words := Embedded()
	if len(words) == 0 {
		t.Fatalf("expected embedded word list to be non-empty")
	}
	kept := Filter(words, 7)
	if len(kept) < 100 {
		t.Fatalf("expected a usable filtered pool, got %d words", len(kept))
	}
	for _, w := range kept[:10] {
		if len(w) < MinWordLength || len(w) > 7 {
			t.Fatalf("filtered word %q violates bounds", w)
		}
	}
}
