// Package exclusion flags internal transfers and removes zero-amount rows so
// they never distort spend analysis.
package exclusion

import (
	"strings"

	"jharlow/monzo-budget/internal/models"
)

// Filter holds the exclusion configuration for a pipeline run.
type Filter struct {
	transferTypes  map[string]struct{}
	payeePatterns  []string
	dropZeroAmount bool
}

// NewFilter builds a Filter. Transfer types are matched case-insensitively
// against the provider transaction type; payee patterns are lower-cased
// substrings matched against the payee display name.
func NewFilter(transferTypes, payeePatterns []string, dropZeroAmount bool) *Filter {
	types := make(map[string]struct{}, len(transferTypes))
	for _, t := range transferTypes {
		types[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	patterns := make([]string, 0, len(payeePatterns))
	for _, p := range payeePatterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			patterns = append(patterns, p)
		}
	}

	return &Filter{
		transferTypes:  types,
		payeePatterns:  patterns,
		dropZeroAmount: dropZeroAmount,
	}
}

// Apply returns a new batch with exclusion flags set. Zero-amount rows are
// removed first when configured; the surviving rows carry
// IsInternalTransfer and IsSpend.
func (f *Filter) Apply(transactions []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(transactions))

	for _, tx := range transactions {
		if f.dropZeroAmount && tx.Amount.IsZero() {
			continue
		}

		tx.IsInternalTransfer = f.isInternalTransfer(tx)
		tx.IsSpend = tx.Amount.IsNegative() && !tx.IsInternalTransfer
		out = append(out, tx)
	}

	return out
}

func (f *Filter) isInternalTransfer(tx models.Transaction) bool {
	if _, ok := f.transferTypes[strings.ToLower(strings.TrimSpace(tx.MonzoType))]; ok {
		return true
	}

	name := strings.ToLower(tx.RawName)
	for _, pattern := range f.payeePatterns {
		if strings.Contains(name, pattern) {
			return true
		}
	}

	return false
}
