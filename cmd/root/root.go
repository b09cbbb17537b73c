// Package root contains the root command and the shared wiring every
// subcommand uses to build a configured pipeline.
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"jharlow/monzo-budget/internal/config"
	"jharlow/monzo-budget/internal/logging"
	"jharlow/monzo-budget/internal/models"
	"jharlow/monzo-budget/internal/monzoparser"
	"jharlow/monzo-budget/internal/pipeline"
	"jharlow/monzo-budget/internal/store"
)

// CommonFlags are the flags shared by the processing commands.
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Cfg is the loaded application configuration, available after
	// PersistentPreRunE.
	Cfg *config.Config

	// Log is the shared logger instance for commands.
	Log logging.Logger = logging.NewNoopLogger()

	// SharedFlags holds flag values common to multiple commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "monzo-budget",
		Short: "Categorize Monzo export transactions and detect recurring bills.",
		Long: `monzo-budget ingests Monzo CSV exports, categorizes every transaction
using ordered payee rules with fuzzy fallback, detects recurring bills with a
required monthly amount and typical payment day, and reports bill and
variable-spend summaries.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Monzo CSV export file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}

// NewRuleStore builds the YAML store from the configured file paths.
func NewRuleStore() *store.RuleStore {
	return store.NewRuleStore(
		Cfg.Files.Rules,
		Cfg.Files.Fallback,
		Cfg.Files.CategoryOverrides,
		Cfg.Files.BillOverrides,
		Log,
	)
}

// ProcessBatch parses the given export file and runs the full pipeline over
// it, returning the derived batch. It is the shared entry point for every
// reporting command.
func ProcessBatch(inputFile string) ([]models.Transaction, error) {
	if inputFile == "" {
		return nil, fmt.Errorf("an input file is required (--input)")
	}

	ruleStore := NewRuleStore()

	rules, err := ruleStore.LoadRules()
	if err != nil {
		return nil, err
	}
	fallback, err := ruleStore.LoadFallbackMap()
	if err != nil {
		return nil, err
	}
	overrides, err := ruleStore.LoadOverrides()
	if err != nil {
		return nil, err
	}

	p, err := pipeline.New(pipeline.Options{
		Rules:          rules,
		Fallback:       fallback,
		TransferTypes:  Cfg.Exclusion.TransferTypes,
		PayeePatterns:  Cfg.Exclusion.PayeePatterns,
		DropZeroAmount: Cfg.Exclusion.DropZeroAmount,
		RecurringTypes: Cfg.Bills.RecurringTypes,
		Logger:         Log,
	})
	if err != nil {
		return nil, err
	}

	parser := monzoparser.NewParser(Log)
	batch, err := parser.ParseFile(inputFile, Cfg.Import.Account)
	if err != nil {
		return nil, err
	}

	return p.Run(batch, overrides)
}
