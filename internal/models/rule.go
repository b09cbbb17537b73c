package models

// Rule maps a payee name pattern to a category. Rules are evaluated in the
// exact order they were supplied; the first match governs, so the slice
// order is part of the configuration and must never be re-sorted.
type Rule struct {
	ID         string        `yaml:"id"`
	Pattern    string        `yaml:"pattern"`
	Category   string        `yaml:"category"`
	Group      CategoryGroup `yaml:"group"`
	IsBill     bool          `yaml:"is_bill"`
	Confidence float64       `yaml:"confidence"`
}

// FallbackEntry maps a provider category label to a coarse classification
// used when no rule matches. The per-category confidence values are
// preserved exactly as configured; they sit below the fuzzy candidate
// boundary on purpose.
type FallbackEntry struct {
	Category   string        `yaml:"category"`
	Group      CategoryGroup `yaml:"group"`
	IsBill     bool          `yaml:"is_bill"`
	Confidence float64       `yaml:"confidence"`
}
