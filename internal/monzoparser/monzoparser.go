// Package monzoparser converts Monzo CSV export rows into pipeline
// transactions. Row-level data problems are handled locally: rows with
// unparseable dates are dropped with a warning, missing amounts default to
// zero, and rows without a transaction ID get a generated one.
package monzoparser

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"jharlow/monzo-budget/internal/dateutils"
	"jharlow/monzo-budget/internal/logging"
	"jharlow/monzo-budget/internal/models"
	"jharlow/monzo-budget/internal/payee"
)

// MonzoRow maps one line of the Monzo transaction export.
type MonzoRow struct {
	TransactionID string `csv:"Transaction ID"`
	Date          string `csv:"Date"`
	Time          string `csv:"Time"`
	Type          string `csv:"Type"`
	Name          string `csv:"Name"`
	Category      string `csv:"Category"`
	Amount        string `csv:"Amount"`
	Currency      string `csv:"Currency"`
	Notes         string `csv:"Notes and #tags"`
	Description   string `csv:"Description"`
}

// Parser reads Monzo export files.
type Parser struct {
	logger logging.Logger
}

// NewParser creates a Parser.
func NewParser(logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	return &Parser{logger: logger}
}

// ParseFile reads a Monzo CSV export and returns the transaction batch.
// The account label and source file name are stamped onto every row.
func (p *Parser) ParseFile(filePath, account string) ([]models.Transaction, error) {
	p.logger.WithField("file", filePath).Info("Reading Monzo export")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening export file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.logger.WithError(err).Warn("Failed to close export file")
		}
	}()

	var rows []MonzoRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing export file: %w", err)
	}

	transactions := p.Convert(rows, account, filepath.Base(filePath))

	p.logger.WithFields(
		logging.Field{Key: "rows", Value: len(rows)},
		logging.Field{Key: "transactions", Value: len(transactions)},
	).Info("Parsed Monzo export")

	return transactions, nil
}

// Convert turns export rows into transactions, dropping rows whose dates
// cannot be parsed.
func (p *Parser) Convert(rows []MonzoRow, account, sourceFile string) []models.Transaction {
	transactions := make([]models.Transaction, 0, len(rows))

	for _, row := range rows {
		tx, err := p.convertRow(row, account, sourceFile)
		if err != nil {
			p.logger.WithError(err).WithFields(
				logging.Field{Key: "name", Value: row.Name},
				logging.Field{Key: "date", Value: row.Date},
			).Warn("Dropping export row")
			continue
		}
		transactions = append(transactions, tx)
	}

	return transactions
}

func (p *Parser) convertRow(row MonzoRow, account, sourceFile string) (models.Transaction, error) {
	date, err := dateutils.ParseDayFirst(row.Date)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("unparseable date: %w", err)
	}

	id := row.TransactionID
	if id == "" {
		id = uuid.NewString()
	}

	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		// Missing or malformed amounts default to zero; the exclusion
		// filter decides whether zero rows survive.
		p.logger.WithFields(
			logging.Field{Key: "name", Value: row.Name},
			logging.Field{Key: "amount", Value: row.Amount},
		).Warn("Defaulting unparseable amount to zero")
		amount = decimal.Zero
	}

	tx := models.Transaction{
		ID:            id,
		Date:          date,
		RawName:       row.Name,
		PayeeKey:      payee.NormalizeKey(row.Name),
		Amount:        amount,
		MonzoCategory: row.Category,
		MonzoType:     row.Type,
		Notes:         row.Notes,
		Account:       account,
		SourceFile:    sourceFile,
	}

	return tx.WithDerivedDateFields().WithDerivedAmountFields(), nil
}
