package classify

import (
	"runtime"
	"sort"
	"sync"

	"jharlow/monzo-budget/internal/logging"
	"jharlow/monzo-budget/internal/models"
	"jharlow/monzo-budget/internal/payee"
)

// concurrencyThreshold is the candidate count below which the fuzzy pass
// runs sequentially; the worker pool overhead is not worth it for small
// batches.
const concurrencyThreshold = 100

// seed is the classification a trusted payee key propagates.
type seed struct {
	key      string
	decision models.Decision
}

// ResolveFuzzy runs pass 2 over the whole batch. Payee keys whose pass-1
// confidence reached the trusted band become seeds; transactions still below
// the resolved band are compared against every seed and adopt the best
// match's classification when the similarity ratio clears the threshold.
// The seed set is built once and treated as an immutable snapshot, so the
// per-candidate searches are independent and safe to parallelize.
func (e *Engine) ResolveFuzzy(transactions []models.Transaction) []models.Transaction {
	seeds := buildSeeds(transactions)
	if len(seeds) == 0 {
		return transactions
	}

	candidates := make([]int, 0)
	for i, tx := range transactions {
		if tx.ConfidenceScore < models.ConfidenceResolved && tx.PayeeKey != "" {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return transactions
	}

	out := make([]models.Transaction, len(transactions))
	copy(out, transactions)

	resolve := func(i int) {
		if d, ok := bestMatch(out[i].PayeeKey, seeds); ok {
			out[i] = d.Apply(out[i])
		}
	}

	if len(candidates) < concurrencyThreshold {
		for _, i := range candidates {
			resolve(i)
		}
	} else {
		e.resolveConcurrent(candidates, resolve)
	}

	resolved := 0
	for _, i := range candidates {
		if out[i].ConfidenceReason == models.ReasonFuzzyPayee {
			resolved++
		}
	}
	e.logger.WithFields(
		logging.Field{Key: "seeds", Value: len(seeds)},
		logging.Field{Key: "candidates", Value: len(candidates)},
		logging.Field{Key: "resolved", Value: resolved},
	).Debug("Fuzzy resolution complete")

	return out
}

// resolveConcurrent fans the candidate indices out over a worker pool. Each
// worker writes only its own candidate's slot, so no locking is needed.
func (e *Engine) resolveConcurrent(candidates []int, resolve func(int)) {
	workerCount := runtime.NumCPU()
	indexChan := make(chan int, workerCount)

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexChan {
				resolve(i)
			}
		}()
	}

	for _, i := range candidates {
		indexChan <- i
	}
	close(indexChan)
	wg.Wait()

	e.logger.WithFields(
		logging.Field{Key: "candidates", Value: len(candidates)},
		logging.Field{Key: "workers", Value: workerCount},
	).Debug("Concurrent fuzzy pass complete")
}

// buildSeeds collects one decision per trusted payee key. The first
// transaction seen for a key supplies the seed; keys only qualify once their
// pass-1 confidence reaches the trusted band, which excludes fuzzy results
// by construction and prevents feedback loops.
func buildSeeds(transactions []models.Transaction) []seed {
	byKey := make(map[string]models.Decision)
	order := make([]string, 0)

	for _, tx := range transactions {
		if tx.ConfidenceScore < models.ConfidenceTrusted || tx.PayeeKey == "" {
			continue
		}
		if _, ok := byKey[tx.PayeeKey]; ok {
			continue
		}
		byKey[tx.PayeeKey] = models.Decision{
			Category: tx.CategoryFinal,
			Group:    tx.CategoryGroup,
			IsBill:   tx.IsBillRule,
		}
		order = append(order, tx.PayeeKey)
	}

	// Deterministic seed order keeps tie-breaking reproducible across runs.
	sort.Strings(order)

	seeds := make([]seed, 0, len(order))
	for _, key := range order {
		seeds = append(seeds, seed{key: key, decision: byKey[key]})
	}
	return seeds
}

// bestMatch scans every seed for the highest similarity ratio against the
// candidate key and returns a fuzzy decision when it clears the threshold.
func bestMatch(candidateKey string, seeds []seed) (models.Decision, bool) {
	bestScore := 0.0
	var best seed

	for _, s := range seeds {
		score := payee.SimilarityRatio(candidateKey, s.key)
		if score > bestScore {
			bestScore = score
			best = s
		}
	}

	if bestScore < models.SimilarityThreshold {
		return models.Decision{}, false
	}

	return models.FuzzyMatch(best.key, bestScore, best.decision), true
}
