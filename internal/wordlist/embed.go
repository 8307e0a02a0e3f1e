package wordlist

import (
	_ "embed"
	"strings"
)

//go:embed data/google-10000.txt
var embeddedData string

// embeddedWords is parsed once at process start and shared read-only.
var embeddedWords = splitWords(embeddedData)

// Embedded returns the bundled frequency-ordered English word list. Callers
// must not modify the returned slice.
func Embedded() []string {
	return embeddedWords
}

func splitWords(data string) []string {
	var words []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	return words
}
