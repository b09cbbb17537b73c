package monzoparser

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"jharlow/monzo-budget/internal/logging"
	"jharlow/monzo-budget/internal/models"
)

// CategorizedRow is the CSV shape of a fully processed transaction. Monetary
// fields are rounded to two decimal places here, at the emission boundary,
// never earlier.
type CategorizedRow struct {
	ID               string `csv:"ID"`
	Date             string `csv:"Date"`
	Month            string `csv:"Month"`
	Name             string `csv:"Name"`
	PayeeKey         string `csv:"PayeeKey"`
	Amount           string `csv:"Amount"`
	Category         string `csv:"Category"`
	Group            string `csv:"Group"`
	Confidence       string `csv:"Confidence"`
	Reason           string `csv:"Reason"`
	RuleID           string `csv:"RuleID"`
	InternalTransfer bool   `csv:"InternalTransfer"`
	Spend            bool   `csv:"Spend"`
	BillStatus       string `csv:"BillStatus"`
	RequiredAmount   string `csv:"RequiredAmount"`
	TypicalDay       string `csv:"TypicalDay"`
	Account          string `csv:"Account"`
	SourceFile       string `csv:"SourceFile"`
}

// ToCategorizedRow converts a processed transaction to its CSV row.
func ToCategorizedRow(t models.Transaction) CategorizedRow {
	row := CategorizedRow{
		ID:               t.ID,
		Date:             t.Date.Format("2006-01-02"),
		Month:            t.MonthKey,
		Name:             t.RawName,
		PayeeKey:         t.PayeeKey,
		Amount:           t.Amount.StringFixed(2),
		Category:         t.CategoryFinal,
		Group:            string(t.CategoryGroup),
		Confidence:       fmt.Sprintf("%.2f", t.ConfidenceScore),
		Reason:           string(t.ConfidenceReason),
		RuleID:           t.AppliedRuleID,
		InternalTransfer: t.IsInternalTransfer,
		Spend:            t.IsSpend,
		BillStatus:       string(t.BillStatus),
		Account:          t.Account,
		SourceFile:       t.SourceFile,
	}

	if t.BillStatus == models.BillStatusActive {
		row.RequiredAmount = t.RequiredAmountExact.StringFixed(2)
		if t.TypicalDay != nil {
			row.TypicalDay = fmt.Sprintf("%d", *t.TypicalDay)
		}
	}

	return row
}

// WriteCategorizedCSV writes a processed batch to a CSV file for the
// persistence collaborator.
func WriteCategorizedCSV(transactions []models.Transaction, csvFile string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}

	rows := make([]CategorizedRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, ToCategorizedRow(tx))
	}

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close output file")
		}
	}()

	writer := csv.NewWriter(file)
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	logger.WithFields(
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(rows)},
	).Info("Wrote categorized transactions")

	return nil
}
