package store

import (
	"sort"

	"jharlow/monzo-budget/internal/models"
)

// DefaultFallbackMap is the built-in provider-category fallback table, keyed
// by lower-cased Monzo category label. The per-category confidence values
// are deliberate data, not a formula: they all sit below the 0.70 boundary
// so fallback results stay in the fuzzy-resolution candidate pool.
func DefaultFallbackMap() map[string]models.FallbackEntry {
	return map[string]models.FallbackEntry{
		"bills": {
			Category: "Bills", Group: models.GroupRequiredBill, IsBill: true, Confidence: 0.50,
		},
		"groceries": {
			Category: "Groceries", Group: models.GroupVariable, Confidence: 0.55,
		},
		"eating_out": {
			Category: "Eating Out", Group: models.GroupVariable, Confidence: 0.50,
		},
		"transport": {
			Category: "Transport", Group: models.GroupVariable, Confidence: 0.50,
		},
		"cash": {
			Category: "Cash Withdrawals", Group: models.GroupVariable, Confidence: 0.55,
		},
		"shopping": {
			Category: "Shopping", Group: models.GroupVariable, Confidence: 0.45,
		},
		"entertainment": {
			Category: "Entertainment", Group: models.GroupVariable, Confidence: 0.45,
		},
		"personal_care": {
			Category: "Personal Care", Group: models.GroupVariable, Confidence: 0.50,
		},
		"holidays": {
			Category: "Holidays", Group: models.GroupVariable, Confidence: 0.45,
		},
		"family": {
			Category: "Family", Group: models.GroupVariable, Confidence: 0.45,
		},
		"charity": {
			Category: "Charity", Group: models.GroupVariable, Confidence: 0.50,
		},
		"finances": {
			Category: "Finances", Group: models.GroupVariable, Confidence: 0.45,
		},
		"general": {
			Category: "General", Group: models.GroupVariable, Confidence: 0.45,
		},
	}
}

func sortCategoryOverrides(entries []models.CategoryOverride) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].PayeeKey < entries[j].PayeeKey
	})
}

func sortBillOverrides(entries []models.BillOverride) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].PayeeKey < entries[j].PayeeKey
	})
}
