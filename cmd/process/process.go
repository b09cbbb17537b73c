// Package process implements the process command: run the full pipeline
// over a Monzo export and write the categorized batch to CSV.
package process

import (
	"fmt"

	"github.com/spf13/cobra"

	"jharlow/monzo-budget/cmd/root"
	"jharlow/monzo-budget/internal/monzoparser"
)

// Cmd is the process command.
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Categorize a Monzo export and write the derived batch to CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		output := root.SharedFlags.Output
		if output == "" {
			output = "categorized.csv"
		}

		txs, err := root.ProcessBatch(root.SharedFlags.Input)
		if err != nil {
			return err
		}

		if err := monzoparser.WriteCategorizedCSV(txs, output, root.Log); err != nil {
			return err
		}

		fmt.Printf("Processed %d transactions -> %s\n", len(txs), output)
		return nil
	},
}
