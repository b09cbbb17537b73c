package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jharlow/monzo-budget/internal/models"
)

func activeBillTx(payeeKey, rawName, category, amount string, year int, month time.Month, day int) models.Transaction {
	tx := models.Transaction{
		Date:          time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		RawName:       rawName,
		PayeeKey:      payeeKey,
		Amount:        decimal.RequireFromString(amount),
		CategoryFinal: category,
		CategoryGroup: models.GroupRequiredBill,
		IsSpend:       true,
		BillStatus:    models.BillStatusActive,
	}
	return tx.WithDerivedDateFields().WithDerivedAmountFields()
}

func TestBuildBillSummary(t *testing.T) {
	batch := []models.Transaction{
		activeBillTx("netflixcom", "NETFLIX.COM", "Streaming", "-9.99", 2025, time.January, 15),
		activeBillTx("netflixcom", "NETFLIX.COM", "Streaming", "-9.99", 2025, time.February, 15),
		activeBillTx("netflixcom", "Netflix", "Streaming", "-10.99", 2025, time.March, 15),
		activeBillTx("british gas", "British Gas", "Utilities", "-80.00", 2025, time.February, 1),
		activeBillTx("british gas", "British Gas", "Utilities", "-85.50", 2025, time.March, 1),
	}

	rows := BuildBillSummary(batch)
	require.Len(t, rows, 2)

	// Sorted by typical day ascending.
	gas := rows[0]
	assert.Equal(t, "british gas", gas.PayeeKey)
	assert.Equal(t, 1, gas.TypicalDay)
	assert.Equal(t, "Utilities", gas.Category)
	assert.Equal(t, 2, gas.Months)
	assert.True(t, gas.RequiredExact.Equal(decimal.RequireFromString("85.50")), "latest month total")
	assert.True(t, gas.AvgMonthly.Equal(decimal.RequireFromString("82.75")))
	assert.True(t, gas.MinMonthly.Equal(decimal.RequireFromString("80.00")))
	assert.True(t, gas.MaxMonthly.Equal(decimal.RequireFromString("85.50")))

	netflix := rows[1]
	assert.Equal(t, "netflixcom", netflix.PayeeKey)
	assert.Equal(t, 15, netflix.TypicalDay)
	assert.Equal(t, "NETFLIX.COM", netflix.DisplayName, "most frequent raw name wins")
	assert.Equal(t, 3, netflix.Months)
	assert.True(t, netflix.RequiredExact.Equal(decimal.RequireFromString("10.99")))
}

func TestBuildBillSummaryExcludesNonActive(t *testing.T) {
	rejected := activeBillTx("old gym", "Old Gym", "Fitness", "-30.00", 2025, time.March, 5)
	rejected.BillStatus = models.BillStatusRejected

	inactive := activeBillTx("lapsed sub", "Lapsed Sub", "Streaming", "-5.00", 2025, time.January, 8)
	inactive.BillStatus = models.BillStatusInactiveCandidate

	nonSpend := activeBillTx("netflixcom", "Netflix", "Streaming", "-9.99", 2025, time.March, 15)
	nonSpend.IsSpend = false

	rows := BuildBillSummary([]models.Transaction{rejected, inactive, nonSpend})
	assert.Empty(t, rows)
}

func TestBuildBillSummaryTieBreaksByRequiredDescending(t *testing.T) {
	batch := []models.Transaction{
		activeBillTx("small bill", "Small Bill", "Utilities", "-10.00", 2025, time.March, 1),
		activeBillTx("big bill", "Big Bill", "Utilities", "-100.00", 2025, time.March, 1),
	}

	rows := BuildBillSummary(batch)
	require.Len(t, rows, 2)
	assert.Equal(t, "big bill", rows[0].PayeeKey)
	assert.Equal(t, "small bill", rows[1].PayeeKey)
}

func TestBuildBillSummaryRoundsAtEmission(t *testing.T) {
	batch := []models.Transaction{
		activeBillTx("mobile provider", "Mobile", "Phone", "-10.005", 2025, time.February, 12),
		activeBillTx("mobile provider", "Mobile", "Phone", "-10.015", 2025, time.March, 12),
	}

	rows := BuildBillSummary(batch)
	require.Len(t, rows, 1)
	// 10.005 and 10.015 average to 10.01 exactly; the row carries two
	// decimal places.
	assert.Equal(t, "10.01", rows[0].AvgMonthly.StringFixed(2))
	assert.Equal(t, "10.02", rows[0].RequiredExact.StringFixed(2))
}

func TestBuildBillSummaryEmptyBatch(t *testing.T) {
	assert.Empty(t, BuildBillSummary(nil))
}

func TestModeCounter(t *testing.T) {
	m := newModeCounter()
	m.Add("a")
	m.Add("b")
	m.Add("b")
	assert.Equal(t, "b", m.Mode())

	tie := newModeCounter()
	tie.Add("first")
	tie.Add("second")
	assert.Equal(t, "first", tie.Mode(), "ties break first-seen")
}
