package classify

import (
	"strings"

	"jharlow/monzo-budget/internal/logging"
	"jharlow/monzo-budget/internal/models"
)

// Engine runs the categorization passes over a batch.
type Engine struct {
	rules    *RuleSet
	fallback map[string]models.FallbackEntry
	logger   logging.Logger
}

// NewEngine creates an Engine over an immutable rule set and fallback table.
func NewEngine(rules *RuleSet, fallback map[string]models.FallbackEntry, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	return &Engine{
		rules:    rules,
		fallback: fallback,
		logger:   logger,
	}
}

// Decide runs pass 1 for a single transaction: first matching rule wins,
// otherwise the provider-category fallback table, otherwise the sentinel
// "needs review" decision. Every transaction leaves pass 1 with a terminal
// category, however low the confidence.
func (e *Engine) Decide(tx models.Transaction) models.Decision {
	if rule, ok := e.rules.Match(tx.PayeeKey); ok {
		return models.RuleMatch(rule)
	}

	if entry, ok := e.fallback[strings.ToLower(strings.TrimSpace(tx.MonzoCategory))]; ok {
		return models.Fallback(entry)
	}

	return models.Unclassified()
}

// CategorizeBatch applies pass 1 to every transaction, returning a new batch.
func (e *Engine) CategorizeBatch(transactions []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(transactions))
	for i, tx := range transactions {
		out[i] = e.Decide(tx).Apply(tx)
	}

	stats := models.CollectStats(out)
	e.logger.WithFields(
		logging.Field{Key: "total", Value: stats.Total},
		logging.Field{Key: "rule", Value: stats.ByRule},
		logging.Field{Key: "fallback", Value: stats.ByFallback},
		logging.Field{Key: "unclassified", Value: stats.Unclassified},
	).Debug("Pass 1 categorization complete")

	return out
}

// ApplyCategoryOverrides applies user category corrections after fuzzy
// resolution. An override always wins: it overwrites category, group,
// confidence, reason and rule id regardless of what the passes computed.
func (e *Engine) ApplyCategoryOverrides(transactions []models.Transaction, overrides map[string]models.CategoryOverride) []models.Transaction {
	if len(overrides) == 0 {
		return transactions
	}

	out := make([]models.Transaction, len(transactions))
	applied := 0
	for i, tx := range transactions {
		if ov, ok := overrides[tx.PayeeKey]; ok {
			group := ov.Group
			if group == "" {
				group = tx.CategoryGroup
			}
			out[i] = models.Override(ov.PayeeKey, ov.Category, group).Apply(tx)
			applied++
			continue
		}
		out[i] = tx
	}

	if applied > 0 {
		e.logger.WithField("count", applied).Debug("Applied category overrides")
	}

	return out
}
