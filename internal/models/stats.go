package models

// ClassificationStats counts how each transaction in a batch was resolved.
type ClassificationStats struct {
	Total        int
	ByRule       int
	ByFallback   int
	ByFuzzy      int
	ByOverride   int
	Unclassified int
}

// CollectStats tallies confidence reasons across a batch.
func CollectStats(txs []Transaction) ClassificationStats {
	stats := ClassificationStats{Total: len(txs)}
	for _, tx := range txs {
		switch tx.ConfidenceReason {
		case ReasonRule:
			stats.ByRule++
		case ReasonMonzoFallback:
			stats.ByFallback++
		case ReasonFuzzyPayee:
			stats.ByFuzzy++
		case ReasonUserOverride:
			stats.ByOverride++
		default:
			stats.Unclassified++
		}
	}
	return stats
}
