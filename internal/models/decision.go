package models

import "fmt"

// DecisionKind tags how a classification was reached.
type DecisionKind int

const (
	DecisionUnclassified DecisionKind = iota
	DecisionRuleMatch
	DecisionFallback
	DecisionFuzzyMatch
	DecisionOverride
)

// Decision is the outcome of one categorization attempt for one transaction.
// Downstream consumers branch on Kind rather than inferring provenance from
// string tags.
type Decision struct {
	Kind       DecisionKind
	Category   string
	Group      CategoryGroup
	IsBill     bool
	Confidence float64
	RuleID     string
	Reason     ConfidenceReason
}

// Unclassified is the terminal decision when neither a rule nor the fallback
// table knows the payee: the sentinel category at zero confidence.
func Unclassified() Decision {
	return Decision{
		Kind:       DecisionUnclassified,
		Category:   CategoryNeedsReview,
		Group:      GroupVariable,
		Confidence: 0,
		Reason:     ReasonNone,
	}
}

// RuleMatch builds a decision from a matched rule.
func RuleMatch(rule Rule) Decision {
	return Decision{
		Kind:       DecisionRuleMatch,
		Category:   rule.Category,
		Group:      rule.Group,
		IsBill:     rule.IsBill,
		Confidence: rule.Confidence,
		RuleID:     rule.ID,
		Reason:     ReasonRule,
	}
}

// Fallback builds a decision from a provider-category fallback entry.
func Fallback(entry FallbackEntry) Decision {
	return Decision{
		Kind:       DecisionFallback,
		Category:   entry.Category,
		Group:      entry.Group,
		IsBill:     entry.IsBill,
		Confidence: entry.Confidence,
		Reason:     ReasonMonzoFallback,
	}
}

// FuzzyMatch builds a decision that adopts a trusted payee's classification.
// The confidence is clamped into the fuzzy band so fuzzy results stay
// permanently distinguishable from rule and override results.
func FuzzyMatch(matchedKey string, score float64, seed Decision) Decision {
	confidence := score
	if confidence < ConfidenceFuzzyFloor {
		confidence = ConfidenceFuzzyFloor
	}
	if confidence > ConfidenceFuzzyCeiling {
		confidence = ConfidenceFuzzyCeiling
	}
	return Decision{
		Kind:       DecisionFuzzyMatch,
		Category:   seed.Category,
		Group:      seed.Group,
		IsBill:     seed.IsBill,
		Confidence: confidence,
		RuleID:     fmt.Sprintf("fuzzy:%s", matchedKey),
		Reason:     ReasonFuzzyPayee,
	}
}

// Override builds a decision from a user category override. Overrides always
// win and fix confidence at 1.0.
func Override(payeeKey, category string, group CategoryGroup) Decision {
	return Decision{
		Kind:       DecisionOverride,
		Category:   category,
		Group:      group,
		Confidence: 1.0,
		RuleID:     fmt.Sprintf("override:%s", payeeKey),
		Reason:     ReasonUserOverride,
	}
}

// Apply returns a copy of the transaction carrying this decision's
// classification fields.
func (d Decision) Apply(t Transaction) Transaction {
	t.CategoryFinal = d.Category
	t.CategoryGroup = d.Group
	t.IsBillRule = d.IsBill
	t.ConfidenceScore = d.Confidence
	t.ConfidenceReason = d.Reason
	t.AppliedRuleID = d.RuleID
	return t
}
