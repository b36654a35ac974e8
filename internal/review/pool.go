package review

import (
	"math/rand/v2"

	"github.com/abhisek/shiwake/internal/bank"
	"github.com/abhisek/shiwake/internal/progress"
)

// BuildPendingPool samples up to limit unresolved items from the whole bank.
// Candidates are collected in bank order, shuffled uniformly with rng, then
// truncated. A nil rng uses the global source.
func BuildPendingPool(b *bank.Bank, svc *progress.Service, limit int, rng *rand.Rand) []bank.Ref {
	var pool []bank.Ref
	for _, ref := range b.Refs() {
		if !svc.IsCorrect(ref) {
			pool = append(pool, ref)
		}
	}

	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if limit >= 0 && len(pool) > limit {
		pool = pool[:limit]
	}
	return pool
}
