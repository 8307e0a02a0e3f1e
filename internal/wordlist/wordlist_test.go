package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "alpha\n\n  beta  \ngamma\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp list: %v", err)
	}
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}
	if words[1] != "beta" {
		t.Fatalf("expected trimmed beta, got %q", words[1])
	}
}

func TestLoadWordsMissingFile(t *testing.T) {
	if _, err := LoadWords(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadWordsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0o644); err != nil {
		t.Fatalf("write temp list: %v", err)
	}
	if _, err := LoadWords(path); err == nil {
		t.Fatalf("expected error for empty list")
	}
}
