// Package spend implements the spend command: report variable spending by
// category over a selectable timeframe.
package spend

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"jharlow/monzo-budget/cmd/root"
	"jharlow/monzo-budget/internal/models"
	"jharlow/monzo-budget/internal/summary"
)

var timeframe string

// Cmd is the spend command.
var Cmd = &cobra.Command{
	Use:   "spend",
	Short: "Show the variable-spend summary for a Monzo export",
	RunE: func(cmd *cobra.Command, args []string) error {
		tf := models.Timeframe(timeframe)
		switch tf {
		case models.TimeframeThisMonth, models.TimeframeLast3, models.TimeframeAll:
		default:
			return fmt.Errorf("invalid timeframe %q (must be this_month, last_3 or all)", timeframe)
		}

		txs, err := root.ProcessBatch(root.SharedFlags.Input)
		if err != nil {
			return err
		}

		rows := summary.BuildVariableSummary(txs, tf)
		if len(rows) == 0 {
			fmt.Println("No variable spend in the selected timeframe.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tAVG/MONTH\tAVG/WEEK\tTHIS MONTH\tWEEKLY TARGET")
		for _, row := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				row.Category,
				row.AvgMonthly.StringFixed(2),
				row.AvgWeekly.StringFixed(2),
				row.CurrentMonth.StringFixed(2),
				row.TargetWeekly.StringFixed(2),
			)
		}
		return w.Flush()
	},
}

func init() {
	Cmd.Flags().StringVarP(&timeframe, "timeframe", "t", string(models.TimeframeAll),
		"Timeframe: this_month, last_3 or all")
}
