package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jharlow/monzo-budget/internal/models"
)

func variableTx(payeeKey, category, amount string, year int, month time.Month, day int) models.Transaction {
	tx := models.Transaction{
		Date:          time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		PayeeKey:      payeeKey,
		Amount:        decimal.RequireFromString(amount),
		CategoryFinal: category,
		CategoryGroup: models.GroupVariable,
		IsSpend:       true,
		BillStatus:    models.BillStatusNotBill,
	}
	return tx.WithDerivedDateFields().WithDerivedAmountFields()
}

func threeMonthBatch() []models.Transaction {
	return []models.Transaction{
		variableTx("tesco", "Groceries", "-60.00", 2025, time.January, 10),
		variableTx("tesco", "Groceries", "-75.00", 2025, time.February, 10),
		variableTx("tesco", "Groceries", "-90.00", 2025, time.March, 10),
		variableTx("cafe", "Eating Out", "-15.00", 2025, time.March, 5),
	}
}

func rowFor(t *testing.T, rows []VariableRow, category string) VariableRow {
	t.Helper()
	for _, row := range rows {
		if row.Category == category {
			return row
		}
	}
	t.Fatalf("category %q not in summary", category)
	return VariableRow{}
}

func TestBuildVariableSummaryAll(t *testing.T) {
	rows := BuildVariableSummary(threeMonthBatch(), models.TimeframeAll)
	require.Len(t, rows, 2)

	groceries := rowFor(t, rows, "Groceries")
	assert.Equal(t, 3, groceries.Months)
	assert.True(t, groceries.AvgMonthly.Equal(decimal.RequireFromString("75.00")))
	assert.True(t, groceries.CurrentMonth.Equal(decimal.RequireFromString("90.00")))
	assert.True(t, groceries.TargetWeekly.Equal(groceries.AvgWeekly))

	// Sorted by average monthly spend descending.
	assert.Equal(t, "Groceries", rows[0].Category)
	assert.Equal(t, "Eating Out", rows[1].Category)
}

func TestBuildVariableSummaryThisMonth(t *testing.T) {
	rows := BuildVariableSummary(threeMonthBatch(), models.TimeframeThisMonth)
	require.Len(t, rows, 2)

	groceries := rowFor(t, rows, "Groceries")
	assert.Equal(t, 1, groceries.Months)
	assert.True(t, groceries.AvgMonthly.Equal(decimal.RequireFromString("90.00")))
	assert.True(t, groceries.CurrentMonth.Equal(decimal.RequireFromString("90.00")))
}

func TestBuildVariableSummaryLast3(t *testing.T) {
	batch := append(threeMonthBatch(),
		variableTx("tesco", "Groceries", "-500.00", 2024, time.November, 10))

	rows := BuildVariableSummary(batch, models.TimeframeLast3)

	groceries := rowFor(t, rows, "Groceries")
	assert.Equal(t, 3, groceries.Months, "November falls outside the window")
	assert.True(t, groceries.AvgMonthly.Equal(decimal.RequireFromString("75.00")))
}

func TestBuildVariableSummaryExcludesBillsAndTransfers(t *testing.T) {
	active := variableTx("netflixcom", "Streaming", "-9.99", 2025, time.March, 15)
	active.BillStatus = models.BillStatusActive

	inactive := variableTx("lapsed sub", "Streaming", "-5.00", 2025, time.January, 8)
	inactive.BillStatus = models.BillStatusInactiveCandidate

	rejected := variableTx("old gym", "Fitness", "-30.00", 2025, time.March, 5)
	rejected.BillStatus = models.BillStatusRejected

	transfer := variableTx("savings pot", "Transfers", "-200.00", 2025, time.March, 1)
	transfer.IsInternalTransfer = true
	transfer.IsSpend = false

	rows := BuildVariableSummary([]models.Transaction{active, inactive, rejected, transfer}, models.TimeframeAll)

	require.Len(t, rows, 1)
	assert.Equal(t, "Fitness", rows[0].Category, "rejected payees count as variable spend")
}

func TestBuildVariableSummaryWeeklyFloor(t *testing.T) {
	// Two transactions three days apart: the weekly average divides by a
	// floor of one week, not by a fraction.
	batch := []models.Transaction{
		variableTx("cafe", "Eating Out", "-10.00", 2025, time.March, 1),
		variableTx("cafe", "Eating Out", "-10.00", 2025, time.March, 4),
	}

	rows := BuildVariableSummary(batch, models.TimeframeAll)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].AvgWeekly.Equal(decimal.RequireFromString("20.00")))
}

func TestBuildVariableSummaryEmpty(t *testing.T) {
	assert.Empty(t, BuildVariableSummary(nil, models.TimeframeAll))
	assert.Empty(t, BuildVariableSummary(nil, models.TimeframeThisMonth))
}
