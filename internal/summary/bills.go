// Package summary builds the two read models served to consumers: the
// per-payee bill summary and the per-category variable-spend summary.
// Monetary figures are rounded to two decimal places here, when the rows
// are built for external consumption, never during aggregation.
package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"jharlow/monzo-budget/internal/models"
)

// BillRow is one active bill in the summary.
type BillRow struct {
	PayeeKey      string
	DisplayName   string
	Category      string
	AvgMonthly    decimal.Decimal
	MinMonthly    decimal.Decimal
	MaxMonthly    decimal.Decimal
	TypicalDay    int
	RequiredExact decimal.Decimal
	Months        int
}

// billGroup accumulates one payee's active spend while iterating the batch.
type billGroup struct {
	payeeKey    string
	monthTotals map[string]decimal.Decimal
	days        []int
	names       *modeCounter
	categories  *modeCounter
}

// BuildBillSummary groups active-spend transactions by payee and computes
// the bill read model. Rows sort by typical day ascending, then required
// amount descending.
func BuildBillSummary(transactions []models.Transaction) []BillRow {
	groups := make(map[string]*billGroup)
	order := make([]string, 0)
	latestMonth := ""

	for _, tx := range transactions {
		if !tx.IsSpend || tx.BillStatus != models.BillStatusActive {
			continue
		}
		if tx.MonthKey > latestMonth {
			latestMonth = tx.MonthKey
		}

		group, ok := groups[tx.PayeeKey]
		if !ok {
			group = &billGroup{
				payeeKey:    tx.PayeeKey,
				monthTotals: make(map[string]decimal.Decimal),
				names:       newModeCounter(),
				categories:  newModeCounter(),
			}
			groups[tx.PayeeKey] = group
			order = append(order, tx.PayeeKey)
		}

		group.monthTotals[tx.MonthKey] = group.monthTotals[tx.MonthKey].Add(tx.AbsAmount)
		group.days = append(group.days, tx.Day)
		group.names.Add(tx.RawName)
		group.categories.Add(tx.CategoryFinal)
	}

	rows := make([]BillRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, buildBillRow(groups[key], latestMonth))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TypicalDay != rows[j].TypicalDay {
			return rows[i].TypicalDay < rows[j].TypicalDay
		}
		return rows[i].RequiredExact.GreaterThan(rows[j].RequiredExact)
	})

	return rows
}

func buildBillRow(group *billGroup, latestMonth string) BillRow {
	sum := decimal.Zero
	min := decimal.Zero
	max := decimal.Zero
	first := true
	for _, total := range group.monthTotals {
		sum = sum.Add(total)
		if first || total.LessThan(min) {
			min = total
		}
		if first || total.GreaterThan(max) {
			max = total
		}
		first = false
	}

	months := len(group.monthTotals)
	avg := sum.Div(decimal.NewFromInt(int64(months)))

	required, ok := group.monthTotals[latestMonth]
	if !ok {
		required = avg
	}

	return BillRow{
		PayeeKey:      group.payeeKey,
		DisplayName:   group.names.Mode(),
		Category:      group.categories.Mode(),
		AvgMonthly:    avg.Round(2),
		MinMonthly:    min.Round(2),
		MaxMonthly:    max.Round(2),
		TypicalDay:    medianDay(group.days),
		RequiredExact: required.Round(2),
		Months:        months,
	}
}

// modeCounter tracks the most frequent value seen, breaking ties by
// first-seen order.
type modeCounter struct {
	counts map[string]int
	order  []string
}

func newModeCounter() *modeCounter {
	return &modeCounter{counts: make(map[string]int)}
}

func (m *modeCounter) Add(value string) {
	if _, ok := m.counts[value]; !ok {
		m.order = append(m.order, value)
	}
	m.counts[value]++
}

func (m *modeCounter) Mode() string {
	best := ""
	bestCount := 0
	for _, value := range m.order {
		if m.counts[value] > bestCount {
			best = value
			bestCount = m.counts[value]
		}
	}
	return best
}

// medianDay mirrors the bill engine's median: even counts average the two
// middle values and round half away from zero.
func medianDay(days []int) int {
	if len(days) == 0 {
		return 0
	}

	sorted := make([]int, len(days))
	copy(sorted, days)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid] + 1) / 2
}
