// Package wordlist provides word list filtering helpers.
package wordlist

// MinWordLength is the shortest word admitted into generated text.
const MinWordLength = 3

// Filter keeps words made entirely of lowercase ASCII letters with a length
// between MinWordLength and maxLen.
func Filter(words []string, maxLen int) []string {
	var kept []string
	for _, word := range words {
		if admissible(word, maxLen) {
			kept = append(kept, word)
		}
	}
	return kept
}

func admissible(word string, maxLen int) bool {
	if len(word) < MinWordLength || len(word) > maxLen {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}
