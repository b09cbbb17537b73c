// Package bills detects recurring bills from transaction history and assigns
// each payee a lifecycle status, a required monthly amount and a typical
// day-of-month. The whole state machine is recomputed from scratch on every
// batch; nothing carries over between imports, which keeps re-imports
// idempotent.
package bills

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"jharlow/monzo-budget/internal/logging"
	"jharlow/monzo-budget/internal/models"
)

// A payee is recurring-like once its spend history spans at least this many
// distinct months and transactions.
const (
	minRecurringMonths = 2
	minRecurringCount  = 2
)

// Engine computes bill candidacy and lifecycle status for a batch.
type Engine struct {
	recurringTypes map[string]struct{}
	logger         logging.Logger
}

// NewEngine creates an Engine. recurringTypes are the provider transaction
// types (direct debit, standing order) recognized as recurring instruments,
// compared case-insensitively.
func NewEngine(recurringTypes []string, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	types := make(map[string]struct{}, len(recurringTypes))
	for _, t := range recurringTypes {
		types[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	return &Engine{recurringTypes: types, logger: logger}
}

// payeeStats aggregates the per-payee facts the state machine needs.
type payeeStats struct {
	months      map[string]struct{}
	monthTotals map[string]decimal.Decimal
	days        []int
	spendCount  int
	candidate   bool
	candidateIn map[string]struct{} // months with a bill-candidate spend tx
}

// Apply computes candidacy, status, required amount and typical day for
// every transaction, returning a new batch. Overrides pin status: reject
// beats everything, confirm and edit force active.
func (e *Engine) Apply(transactions []models.Transaction, overrides map[string]models.BillOverride) []models.Transaction {
	out := make([]models.Transaction, len(transactions))
	copy(out, transactions)

	stats, latestMonth := e.collectStats(out)
	if latestMonth == "" {
		// No spend at all: everything stays not_bill, never an error.
		for i := range out {
			out[i].BillStatus = models.BillStatusNotBill
		}
		return out
	}

	// Candidate flags are per transaction; set them first so the per-payee
	// status derivation below sees them.
	for i := range out {
		out[i].IsBillCandidate = e.isCandidate(out[i], stats[out[i].PayeeKey])
	}

	// Re-collect candidacy months now the flags are set.
	for i := range out {
		tx := out[i]
		if !tx.IsSpend || !tx.IsBillCandidate {
			continue
		}
		ps := stats[tx.PayeeKey]
		ps.candidate = true
		if ps.candidateIn == nil {
			ps.candidateIn = make(map[string]struct{})
		}
		ps.candidateIn[tx.MonthKey] = struct{}{}
		stats[tx.PayeeKey] = ps
	}

	statuses := make(map[string]models.BillStatus, len(stats))
	required := make(map[string]decimal.Decimal, len(stats))
	typicalDays := make(map[string]int, len(stats))

	for key, ps := range stats {
		status := e.deriveStatus(ps, latestMonth)

		if ov, ok := overrides[key]; ok {
			status = e.applyOverrideStatus(status, ov)
		}

		statuses[key] = status
		if status == models.BillStatusActive {
			required[key] = requiredAmount(ps, latestMonth)
			typicalDays[key] = medianDay(ps.days)
		}
	}

	active := 0
	for i := range out {
		status, ok := statuses[out[i].PayeeKey]
		if !ok {
			// Unknown payee (no spend stats recorded): non-recurring.
			out[i].BillStatus = models.BillStatusNotBill
			continue
		}

		out[i].BillStatus = status
		if status == models.BillStatusActive {
			out[i].RequiredAmountExact = required[out[i].PayeeKey]
			day := typicalDays[out[i].PayeeKey]
			out[i].TypicalDay = &day
		} else {
			out[i].RequiredAmountExact = decimal.Zero
			out[i].TypicalDay = nil
		}

		if ov, ok := overrides[out[i].PayeeKey]; ok && status == models.BillStatusActive {
			out[i] = applyOverrideEdits(out[i], ov)
		}
	}
	for _, status := range statuses {
		if status == models.BillStatusActive {
			active++
		}
	}

	e.logger.WithFields(
		logging.Field{Key: "latest_month", Value: latestMonth},
		logging.Field{Key: "payees", Value: len(stats)},
		logging.Field{Key: "active_bills", Value: active},
	).Debug("Bill status computed")

	return out
}

// collectStats gathers per-payee spend facts and the batch's latest month.
func (e *Engine) collectStats(transactions []models.Transaction) (map[string]payeeStats, string) {
	stats := make(map[string]payeeStats)
	latestMonth := ""

	for _, tx := range transactions {
		if !tx.IsSpend || tx.PayeeKey == "" {
			continue
		}
		if tx.MonthKey > latestMonth {
			latestMonth = tx.MonthKey
		}

		ps, ok := stats[tx.PayeeKey]
		if !ok {
			ps = payeeStats{
				months:      make(map[string]struct{}),
				monthTotals: make(map[string]decimal.Decimal),
			}
		}
		ps.months[tx.MonthKey] = struct{}{}
		ps.monthTotals[tx.MonthKey] = ps.monthTotals[tx.MonthKey].Add(tx.AbsAmount)
		ps.days = append(ps.days, tx.Day)
		ps.spendCount++
		stats[tx.PayeeKey] = ps
	}

	return stats, latestMonth
}

// isCandidate decides per transaction: an explicit bill rule always
// qualifies; a recognized recurring instrument qualifies only when the payee
// looks recurring.
func (e *Engine) isCandidate(tx models.Transaction, ps payeeStats) bool {
	if !tx.IsSpend {
		return false
	}
	if tx.IsBillRule {
		return true
	}
	if _, ok := e.recurringTypes[strings.ToLower(strings.TrimSpace(tx.MonzoType))]; !ok {
		return false
	}
	return len(ps.months) >= minRecurringMonths && ps.spendCount >= minRecurringCount
}

// deriveStatus runs the lifecycle state machine for one payee.
func (e *Engine) deriveStatus(ps payeeStats, latestMonth string) models.BillStatus {
	if !ps.candidate {
		return models.BillStatusNotBill
	}

	if _, ok := ps.candidateIn[latestMonth]; ok {
		return models.BillStatusActive
	}

	// Candidate with no bill-candidate transaction in the latest month:
	// still a bill if the payee showed up in an earlier month, otherwise it
	// degenerates to not_bill.
	if _, present := ps.months[latestMonth]; present {
		return models.BillStatusNotBill
	}
	for month := range ps.months {
		if month < latestMonth {
			return models.BillStatusInactiveCandidate
		}
	}
	return models.BillStatusNotBill
}

// applyOverrideStatus lets an explicit user override beat the computed
// status.
func (e *Engine) applyOverrideStatus(computed models.BillStatus, ov models.BillOverride) models.BillStatus {
	switch ov.Action {
	case models.BillActionReject:
		return models.BillStatusRejected
	case models.BillActionConfirm, models.BillActionEdit:
		return models.BillStatusActive
	default:
		return computed
	}
}

// applyOverrideEdits applies an edit override's custom day/amount/category
// to an active transaction.
func applyOverrideEdits(tx models.Transaction, ov models.BillOverride) models.Transaction {
	if ov.Action != models.BillActionEdit {
		return tx
	}
	if ov.Day != nil {
		day := *ov.Day
		tx.TypicalDay = &day
	}
	if ov.Amount != nil {
		tx.RequiredAmountExact = *ov.Amount
	}
	if ov.Category != "" {
		tx.CategoryFinal = ov.Category
		tx.CategoryGroup = models.GroupRequiredBill
		tx.ConfidenceScore = 1.0
		tx.ConfidenceReason = models.ReasonUserOverride
	}
	return tx
}

// requiredAmount is the exact sum of the payee's absolute spend in the
// latest month. An active payee with no latest-month presence should not
// occur, but the mean of its historical monthly totals covers it.
func requiredAmount(ps payeeStats, latestMonth string) decimal.Decimal {
	if total, ok := ps.monthTotals[latestMonth]; ok {
		return total
	}

	sum := decimal.Zero
	for _, total := range ps.monthTotals {
		sum = sum.Add(total)
	}
	if len(ps.monthTotals) == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(len(ps.monthTotals))))
}

// medianDay returns the median day-of-month; even-count medians average the
// two middle values and round half away from zero.
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

	sum := sorted[mid-1] + sorted[mid]
	// Integer round-half-away-from-zero; days are always positive.
	return (sum + 1) / 2
}
