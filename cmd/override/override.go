// Package override implements the override command: record user category
// and bill corrections that later pipeline runs apply over computed results.
package override

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"jharlow/monzo-budget/cmd/root"
	"jharlow/monzo-budget/internal/models"
	"jharlow/monzo-budget/internal/payee"
)

var (
	payeeName string
	category  string
	group     string
	action    string
	day       int
	amount    string
)

// Cmd is the override command.
var Cmd = &cobra.Command{
	Use:   "override",
	Short: "Record user overrides for payee categories and bills",
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Override the category for a payee",
	RunE: func(cmd *cobra.Command, args []string) error {
		if payeeName == "" || category == "" {
			return fmt.Errorf("--payee and --category are required")
		}

		key := payee.NormalizeKey(payeeName)
		if key == "" {
			return fmt.Errorf("payee %q normalizes to an empty key", payeeName)
		}

		ruleStore := root.NewRuleStore()
		overrides, err := ruleStore.LoadCategoryOverrides()
		if err != nil {
			return err
		}

		overrides[key] = models.CategoryOverride{
			PayeeKey: key,
			Category: category,
			Group:    models.CategoryGroup(group),
		}

		if err := ruleStore.SaveCategoryOverrides(overrides); err != nil {
			return err
		}

		fmt.Printf("Recorded category override: %s -> %s\n", key, category)
		return nil
	},
}

var billCmd = &cobra.Command{
	Use:   "bill",
	Short: "Confirm, reject or edit a detected bill",
	RunE: func(cmd *cobra.Command, args []string) error {
		if payeeName == "" {
			return fmt.Errorf("--payee is required")
		}

		billAction := models.BillOverrideAction(action)
		switch billAction {
		case models.BillActionConfirm, models.BillActionReject, models.BillActionEdit:
		default:
			return fmt.Errorf("invalid action %q (must be confirm, reject or edit)", action)
		}

		key := payee.NormalizeKey(payeeName)
		if key == "" {
			return fmt.Errorf("payee %q normalizes to an empty key", payeeName)
		}

		entry := models.BillOverride{
			PayeeKey: key,
			Action:   billAction,
			Category: category,
		}
		if day > 0 {
			d := day
			entry.Day = &d
		}
		if amount != "" {
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			entry.Amount = &amt
		}

		ruleStore := root.NewRuleStore()
		overrides, err := ruleStore.LoadBillOverrides()
		if err != nil {
			return err
		}
		overrides[key] = entry

		if err := ruleStore.SaveBillOverrides(overrides); err != nil {
			return err
		}

		fmt.Printf("Recorded bill override: %s -> %s\n", key, billAction)
		return nil
	},
}

func init() {
	categoryCmd.Flags().StringVarP(&payeeName, "payee", "p", "", "Payee name (normalized before storing)")
	categoryCmd.Flags().StringVarP(&category, "category", "c", "", "Category to assign")
	categoryCmd.Flags().StringVarP(&group, "group", "g", "", "Category group (required_bill or variable)")

	billCmd.Flags().StringVarP(&payeeName, "payee", "p", "", "Payee name (normalized before storing)")
	billCmd.Flags().StringVarP(&action, "action", "a", "", "Action: confirm, reject or edit")
	billCmd.Flags().IntVarP(&day, "day", "d", 0, "Custom typical day (edit only)")
	billCmd.Flags().StringVar(&amount, "amount", "", "Custom required amount (edit only)")
	billCmd.Flags().StringVarP(&category, "category", "c", "", "Custom category (edit only)")

	Cmd.AddCommand(categoryCmd)
	Cmd.AddCommand(billCmd)
}
