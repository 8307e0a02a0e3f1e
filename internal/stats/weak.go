package stats

import (
	"sort"

	"github.com/pato/ratatype/internal/model"
)

// Keys with fewer attempts than this are too noisy to call weak.
const weakMinAttempts = 5

// SelectWeakKeys selects the lowest-accuracy keys from aggregates.
func SelectWeakKeys(aggs []model.KeyAggregate, top int) map[rune]struct{} {
	weakSet := map[rune]struct{}{}
	candidates := make([]model.KeyAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Attempts < weakMinAttempts {
			continue
		}
		candidates = append(candidates, agg)
	}
	if len(candidates) == 0 {
		return weakSet
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := keyAccuracy(candidates[i])
		aj := keyAccuracy(candidates[j])
		if ai == aj {
			return candidates[i].Char < candidates[j].Char
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for i := 0; i < top; i++ {
		runes := []rune(candidates[i].Char)
		if len(runes) > 0 {
			weakSet[runes[0]] = struct{}{}
		}
	}
	return weakSet
}

func keyAccuracy(agg model.KeyAggregate) float64 {
	if agg.Attempts == 0 {
		return 1.0
	}
	acc := float64(agg.Attempts-agg.Errors) / float64(agg.Attempts)
	if acc < 0 {
		return 0
	}
	return acc
}
