package generator

import (
	"github.com/pato/ratatype/internal/model"
	"github.com/pato/ratatype/internal/wordlist"
)

// Provider assembles target text for the configured source, falling back to
// the built-in excerpts when a word source cannot serve. Text never fails.
type Provider struct {
	gen        *Generator
	source     model.TextSource
	maxWordLen int
	dictPath   string
	warnf      func(format string, args ...any)
	weakSet    map[rune]struct{}
	weakFactor float64
}

// NewProvider builds a provider from resolved settings. warnf receives
// fallback notices; nil discards them.
func NewProvider(cfg model.Config, warnf func(format string, args ...any)) *Provider {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}
	return &Provider{
		gen:        New(),
		source:     cfg.Source,
		maxWordLen: cfg.MaxWordLength,
		dictPath:   wordlist.SystemDictPath,
		warnf:      warnf,
		weakFactor: cfg.WeakFactor,
	}
}

// SetWeakKeys installs the characters weighted generation should favor.
// Only word sources apply the weighting.
func (p *Provider) SetWeakKeys(set map[rune]struct{}) {
	p.weakSet = set
}

// Text assembles one target text of at least MinTextLength characters.
func (p *Provider) Text() string {
	switch p.source {
	case model.SourceGoogle:
		words := wordlist.Filter(wordlist.Embedded(), p.maxWordLen)
		if len(words) == 0 {
			p.warnf("bundled word list has no words of length %d-%d, using built-in texts", wordlist.MinWordLength, p.maxWordLen)
			return p.gen.FromSamples(sampleTexts, MinTextLength)
		}
		return p.fromWords(words)
	case model.SourceSystem:
		raw, err := wordlist.LoadWords(p.dictPath)
		if err != nil {
			p.warnf("failed to read system dictionary: %v, using built-in texts", err)
			return p.gen.FromSamples(sampleTexts, MinTextLength)
		}
		words := wordlist.Filter(raw, p.maxWordLen)
		if len(words) == 0 {
			p.warnf("system dictionary has no words of length %d-%d, using built-in texts", wordlist.MinWordLength, p.maxWordLen)
			return p.gen.FromSamples(sampleTexts, MinTextLength)
		}
		return p.fromWords(words)
	default:
		return p.gen.FromSamples(sampleTexts, MinTextLength)
	}
}

func (p *Provider) fromWords(words []string) string {
	if len(p.weakSet) > 0 {
		return p.gen.FromWordsWeighted(words, p.weakSet, p.weakFactor, MinTextLength)
	}
	return p.gen.FromWords(words, MinTextLength)
}
