// Package generator builds typing target text.
package generator

import (
	"math/rand"
	"strings"
	"time"
)

// MinTextLength is the minimum number of characters in generated text.
const MinTextLength = 500

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// FromWords joins uniformly chosen words with single spaces until the text
// reaches minChars. words must be non-empty.
func (g *Generator) FromWords(words []string, minChars int) string {
	var b strings.Builder
	for b.Len() < minChars {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(words[g.rnd.Intn(len(words))])
	}
	return b.String()
}

// FromWordsWeighted joins randomly chosen words, biased toward words that
// contain weak characters, until the text reaches minChars.
func (g *Generator) FromWordsWeighted(words []string, weakSet map[rune]struct{}, factor float64, minChars int) string {
	weights := make([]float64, len(words))
	total := 0.0
	for i, word := range words {
		weakCount := 0
		for _, r := range word {
			if _, ok := weakSet[r]; ok {
				weakCount++
			}
		}
		w := 1.0 + float64(weakCount)*factor
		weights[i] = w
		total += w
	}

	var b strings.Builder
	for b.Len() < minChars {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := 0
		for j, w := range weights {
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(words[idx])
	}
	return b.String()
}

// FromSamples joins randomly chosen excerpts with single spaces until the
// text reaches minChars. samples must be non-empty.
func (g *Generator) FromSamples(samples []string, minChars int) string {
	var b strings.Builder
	for b.Len() < minChars {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(samples[g.rnd.Intn(len(samples))])
	}
	return b.String()
}
