package models

// CategoryGroup splits spending between fixed obligations and everything else.
type CategoryGroup string

const (
	GroupRequiredBill CategoryGroup = "required_bill"
	GroupVariable     CategoryGroup = "variable"
)

// ConfidenceReason records which resolution stage produced a classification.
type ConfidenceReason string

const (
	ReasonRule          ConfidenceReason = "rule"
	ReasonMonzoFallback ConfidenceReason = "monzo_fallback"
	ReasonFuzzyPayee    ConfidenceReason = "fuzzy_payee"
	ReasonUserOverride  ConfidenceReason = "user_override"
	ReasonNone          ConfidenceReason = "none"
)

// BillStatus is the lifecycle state of a payee's recurring-bill detection,
// recomputed in full on every batch.
type BillStatus string

const (
	BillStatusNotBill           BillStatus = "not_bill"
	BillStatusInactiveCandidate BillStatus = "inactive_candidate"
	BillStatusActive            BillStatus = "active"
	BillStatusRejected          BillStatus = "rejected"
)

// Timeframe selects how much history the variable-spend summary covers.
type Timeframe string

const (
	TimeframeThisMonth Timeframe = "this_month"
	TimeframeLast3     Timeframe = "last_3"
	TimeframeAll       Timeframe = "all"
)

// CategoryNeedsReview is the sentinel category for transactions no stage
// could classify. It keeps unclassified rows visible instead of fatal.
const CategoryNeedsReview = "Needs Review"

// Confidence band boundaries for the categorization passes. Pass-1 results
// at or above ConfidenceTrusted seed fuzzy propagation; results below
// ConfidenceResolved are the fuzzy candidate pool. Fuzzy scores are clamped
// into [ConfidenceFuzzyFloor, ConfidenceFuzzyCeiling] so a fuzzy match can
// never become a seed itself.
const (
	ConfidenceTrusted      = 0.90
	ConfidenceResolved     = 0.70
	ConfidenceFuzzyFloor   = 0.70
	ConfidenceFuzzyCeiling = 0.85
	SimilarityThreshold    = 0.88
)
