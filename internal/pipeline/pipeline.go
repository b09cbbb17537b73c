// Package pipeline wires the processing stages into the single synchronous
// batch computation: exclusion, categorization, fuzzy resolution, override
// application, then bill status. Stages are strictly ordered; each consumes
// the full output of the previous one because later stages depend on
// batch-wide statistics.
package pipeline

import (
	"jharlow/monzo-budget/internal/bills"
	"jharlow/monzo-budget/internal/classify"
	"jharlow/monzo-budget/internal/exclusion"
	"jharlow/monzo-budget/internal/logging"
	"jharlow/monzo-budget/internal/models"
	"jharlow/monzo-budget/internal/pipeerror"
)

// Pipeline is the processing pipeline for one import batch. It holds only
// immutable configuration, so a single Pipeline is safe to share across
// concurrent runs as long as each run gets its own batch.
type Pipeline struct {
	filter     *exclusion.Filter
	classifier *classify.Engine
	billEngine *bills.Engine
	logger     logging.Logger
}

// Options collects the pipeline's configuration inputs.
type Options struct {
	Rules          []models.Rule
	Fallback       map[string]models.FallbackEntry
	TransferTypes  []string
	PayeePatterns  []string
	DropZeroAmount bool
	RecurringTypes []string
	Logger         logging.Logger
}

// New builds a Pipeline from explicit configuration. The rule set is
// compiled once here and never mutated afterwards.
func New(opts Options) (*Pipeline, error) {
	if len(opts.Rules) == 0 {
		return nil, &pipeerror.ConfigError{Reason: "no categorization rules supplied"}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNoopLogger()
	}

	ruleSet := classify.NewRuleSet(opts.Rules)

	return &Pipeline{
		filter:     exclusion.NewFilter(opts.TransferTypes, opts.PayeePatterns, opts.DropZeroAmount),
		classifier: classify.NewEngine(ruleSet, opts.Fallback, logger),
		billEngine: bills.NewEngine(opts.RecurringTypes, logger),
		logger:     logger,
	}, nil
}

// Run processes a batch end to end and returns the fully derived
// transactions. An empty batch (before or after zero-amount removal) is a
// hard failure: silently producing empty output would mask an upstream
// import problem.
func (p *Pipeline) Run(batch []models.Transaction, overrides models.Overrides) ([]models.Transaction, error) {
	if len(batch) == 0 {
		return nil, &pipeerror.EmptyBatchError{}
	}

	txs := p.filter.Apply(batch)
	if len(txs) == 0 {
		return nil, &pipeerror.EmptyBatchError{}
	}

	txs = p.classifier.CategorizeBatch(txs)
	txs = p.classifier.ResolveFuzzy(txs)
	txs = p.classifier.ApplyCategoryOverrides(txs, overrides.Categories)
	txs = p.billEngine.Apply(txs, overrides.Bills)

	stats := models.CollectStats(txs)
	p.logger.WithFields(
		logging.Field{Key: "total", Value: stats.Total},
		logging.Field{Key: "rule", Value: stats.ByRule},
		logging.Field{Key: "fallback", Value: stats.ByFallback},
		logging.Field{Key: "fuzzy", Value: stats.ByFuzzy},
		logging.Field{Key: "override", Value: stats.ByOverride},
		logging.Field{Key: "unclassified", Value: stats.Unclassified},
	).Info("Batch processed")

	return txs, nil
}
