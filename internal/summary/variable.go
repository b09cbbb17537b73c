package summary

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"jharlow/monzo-budget/internal/dateutils"
	"jharlow/monzo-budget/internal/models"
)

// VariableRow is one category in the variable-spend summary.
type VariableRow struct {
	Category     string
	AvgMonthly   decimal.Decimal
	AvgWeekly    decimal.Decimal
	CurrentMonth decimal.Decimal
	// TargetWeekly is the user-adjustable weekly budget, initialized to the
	// average weekly figure.
	TargetWeekly decimal.Decimal
	Months       int
}

// BuildVariableSummary groups non-bill spend by final category over the
// selected timeframe. Rows sort by average monthly spend descending.
func BuildVariableSummary(transactions []models.Transaction, timeframe models.Timeframe) []VariableRow {
	filtered := filterVariable(transactions)
	filtered = applyTimeframe(filtered, timeframe)
	if len(filtered) == 0 {
		return []VariableRow{}
	}

	months := make(map[string]struct{})
	latestMonth := ""
	var firstDate, lastDate time.Time
	for i, tx := range filtered {
		months[tx.MonthKey] = struct{}{}
		if tx.MonthKey > latestMonth {
			latestMonth = tx.MonthKey
		}
		if i == 0 || tx.Date.Before(firstDate) {
			firstDate = tx.Date
		}
		if i == 0 || tx.Date.After(lastDate) {
			lastDate = tx.Date
		}
	}

	monthCount := decimal.NewFromInt(int64(len(months)))
	if monthCount.LessThan(decimal.NewFromInt(1)) {
		monthCount = decimal.NewFromInt(1)
	}

	// Elapsed span in weeks, floored at one week so a few days of data
	// never inflates the weekly average.
	spanDays := decimal.NewFromFloat(lastDate.Sub(firstDate).Hours() / 24)
	weeks := spanDays.Div(decimal.NewFromInt(7))
	if weeks.LessThan(decimal.NewFromInt(1)) {
		weeks = decimal.NewFromInt(1)
	}

	totals := make(map[string]decimal.Decimal)
	currentTotals := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, tx := range filtered {
		if _, ok := totals[tx.CategoryFinal]; !ok {
			order = append(order, tx.CategoryFinal)
		}
		totals[tx.CategoryFinal] = totals[tx.CategoryFinal].Add(tx.AbsAmount)
		if tx.MonthKey == latestMonth {
			currentTotals[tx.CategoryFinal] = currentTotals[tx.CategoryFinal].Add(tx.AbsAmount)
		}
	}

	rows := make([]VariableRow, 0, len(order))
	for _, category := range order {
		avgWeekly := totals[category].Div(weeks).Round(2)
		rows = append(rows, VariableRow{
			Category:     category,
			AvgMonthly:   totals[category].Div(monthCount).Round(2),
			AvgWeekly:    avgWeekly,
			CurrentMonth: currentTotals[category].Round(2),
			TargetWeekly: avgWeekly,
			Months:       len(months),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AvgMonthly.GreaterThan(rows[j].AvgMonthly)
	})

	return rows
}

// filterVariable keeps spend that is neither a bill nor an internal
// transfer. Inactive candidates are still bills (just dormant ones), so
// they stay out of the variable view; rejected payees were declared not
// bills by the user and count as variable spend.
func filterVariable(transactions []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !tx.IsSpend || tx.IsInternalTransfer {
			continue
		}
		if tx.BillStatus == models.BillStatusActive || tx.BillStatus == models.BillStatusInactiveCandidate {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// applyTimeframe restricts the batch to the selected window of distinct
// months.
func applyTimeframe(transactions []models.Transaction, timeframe models.Timeframe) []models.Transaction {
	var keep int
	switch timeframe {
	case models.TimeframeThisMonth:
		keep = 1
	case models.TimeframeLast3:
		keep = 3
	default:
		return transactions
	}

	months := make(map[string]struct{})
	for _, tx := range transactions {
		months[tx.MonthKey] = struct{}{}
	}

	recent := dateutils.RecentMonthKeys(months, keep)
	allowed := make(map[string]struct{}, len(recent))
	for _, key := range recent {
		allowed[key] = struct{}{}
	}

	out := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if _, ok := allowed[tx.MonthKey]; ok {
			out = append(out, tx)
		}
	}
	return out
}
