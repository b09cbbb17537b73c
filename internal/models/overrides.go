package models

import "github.com/shopspring/decimal"

// CategoryOverride is a user correction keyed by normalized payee. It is
// applied after fuzzy resolution and unconditionally overwrites the computed
// classification.
type CategoryOverride struct {
	PayeeKey string        `yaml:"payee"`
	Category string        `yaml:"category"`
	Group    CategoryGroup `yaml:"group"`
}

// BillOverrideAction is what the user asked to do with a detected bill.
type BillOverrideAction string

const (
	BillActionConfirm BillOverrideAction = "confirm"
	BillActionReject  BillOverrideAction = "reject"
	BillActionEdit    BillOverrideAction = "edit"
)

// BillOverride pins or edits the computed bill lifecycle for one payee.
// An explicit override always beats computed status.
type BillOverride struct {
	PayeeKey string             `yaml:"payee"`
	Action   BillOverrideAction `yaml:"action"`
	Day      *int               `yaml:"day,omitempty"`
	Amount   *decimal.Decimal   `yaml:"amount,omitempty"`
	Category string             `yaml:"category,omitempty"`
}

// Overrides bundles both user correction sets for a pipeline run.
type Overrides struct {
	Categories map[string]CategoryOverride
	Bills      map[string]BillOverride
}
