// Package classify implements the two categorization passes: deterministic
// rule/fallback matching over normalized payee keys, then similarity-based
// propagation from trusted payees to unresolved ones.
package classify

import (
	"regexp"
	"strings"

	"jharlow/monzo-budget/internal/models"
)

// compiledRule pairs a rule with its case-insensitive matcher. Patterns that
// compile as regular expressions match as such; anything else degrades to a
// lower-cased substring test.
type compiledRule struct {
	rule    models.Rule
	re      *regexp.Regexp
	literal string
}

func (c compiledRule) matches(payeeKey string) bool {
	if c.re != nil {
		return c.re.MatchString(payeeKey)
	}
	return strings.Contains(payeeKey, c.literal)
}

// RuleSet is an immutable, ordered set of compiled rules. It is constructed
// once and passed into the pipeline; sharing one RuleSet across concurrent
// runs is safe because nothing mutates it after construction.
type RuleSet struct {
	rules []compiledRule
}

// NewRuleSet compiles the supplied rules, preserving their order exactly.
// Rule order is a total order supplied by configuration: the first matching
// rule governs, so reordering would change classification outcomes.
func NewRuleSet(rules []models.Rule) *RuleSet {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		c := compiledRule{rule: rule}
		if re, err := regexp.Compile("(?i)" + rule.Pattern); err == nil {
			c.re = re
		} else {
			c.literal = strings.ToLower(rule.Pattern)
		}
		compiled = append(compiled, c)
	}
	return &RuleSet{rules: compiled}
}

// Len returns the number of rules in the set.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Match returns the first rule matching the normalized payee key. Matching
// short-circuits: later rules are never evaluated once one matches.
func (rs *RuleSet) Match(payeeKey string) (models.Rule, bool) {
	for _, c := range rs.rules {
		if c.matches(payeeKey) {
			return c.rule, true
		}
	}
	return models.Rule{}, false
}
