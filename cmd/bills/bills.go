// Package bills implements the bills command: report active recurring bills
// with their required amounts and typical payment days.
package bills

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"jharlow/monzo-budget/cmd/root"
	"jharlow/monzo-budget/internal/summary"
)

// Cmd is the bills command.
var Cmd = &cobra.Command{
	Use:   "bills",
	Short: "Show the active bill summary for a Monzo export",
	RunE: func(cmd *cobra.Command, args []string) error {
		txs, err := root.ProcessBatch(root.SharedFlags.Input)
		if err != nil {
			return err
		}

		rows := summary.BuildBillSummary(txs)
		if len(rows) == 0 {
			fmt.Println("No active bills detected.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DAY\tPAYEE\tCATEGORY\tREQUIRED\tAVG\tMIN\tMAX\tMONTHS")
		total := decimal.Zero
		for _, row := range rows {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
				row.TypicalDay,
				row.DisplayName,
				row.Category,
				row.RequiredExact.StringFixed(2),
				row.AvgMonthly.StringFixed(2),
				row.MinMonthly.StringFixed(2),
				row.MaxMonthly.StringFixed(2),
				row.Months,
			)
			total = total.Add(row.RequiredExact)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\nTotal required this month: %s\n", total.StringFixed(2))
		return nil
	},
}
