// Package models provides the data structures shared by the analysis pipeline.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether money left or entered the account.
type Direction string

const (
	DirectionOutflow Direction = "outflow"
	DirectionInflow  Direction = "inflow"
)

// Transaction is one row of a bank export batch, progressively enriched by
// the pipeline stages. A batch is rebuilt from scratch on every import; no
// transaction survives across imports.
type Transaction struct {
	ID            string          // unique within a batch
	Date          time.Time       // booking date
	MonthKey      string          // YYYY-MM, derived from Date
	Day           int             // day of month, derived from Date
	RawName       string          // payee display name as exported
	PayeeKey      string          // normalized payee key, the stable join key
	Amount        decimal.Decimal // signed amount
	AbsAmount     decimal.Decimal // absolute value of Amount
	Direction     Direction       // outflow if Amount < 0, else inflow
	MonzoCategory string          // provider category label
	MonzoType     string          // provider transaction type (e.g. "Direct Debit")
	Notes         string          // free-text note
	Account       string          // source account label
	SourceFile    string          // file the row came from

	// Classification fields, populated by the categorization passes.
	CategoryFinal    string
	CategoryGroup    CategoryGroup
	IsBillRule       bool // the matched rule flags this payee as a bill
	ConfidenceScore  float64
	ConfidenceReason ConfidenceReason
	AppliedRuleID    string

	// Spend eligibility, populated by the exclusion filter.
	IsInternalTransfer bool
	IsSpend            bool

	// Bill detection fields, populated by the bill status engine.
	// RequiredAmountExact and TypicalDay are meaningful only when
	// BillStatus == BillStatusActive.
	IsBillCandidate     bool
	BillStatus          BillStatus
	RequiredAmountExact decimal.Decimal
	TypicalDay          *int
}

// WithDerivedDateFields returns a copy with MonthKey and Day computed from Date.
func (t Transaction) WithDerivedDateFields() Transaction {
	t.MonthKey = t.Date.Format("2006-01")
	t.Day = t.Date.Day()
	return t
}

// WithDerivedAmountFields returns a copy with AbsAmount and Direction
// computed from the signed Amount.
func (t Transaction) WithDerivedAmountFields() Transaction {
	t.AbsAmount = t.Amount.Abs()
	if t.Amount.IsNegative() {
		t.Direction = DirectionOutflow
	} else {
		t.Direction = DirectionInflow
	}
	return t
}
