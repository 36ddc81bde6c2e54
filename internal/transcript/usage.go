package transcript

// UsageTotals aggregates token counters across a transcript.
type UsageTotals struct {
	InputTokens       int64 `json:"input_tokens"`
	OutputTokens      int64 `json:"output_tokens"`
	CacheReadTokens   int64 `json:"cache_read_tokens"`
	CacheCreateTokens int64 `json:"cache_create_tokens"`
}

// AggregateUsage sums token usage over the assistant entries. ok is false
// when both input and output totals are zero, which signals that the
// transcript carried no usage data at all.
func AggregateUsage(entries []Entry) (UsageTotals, bool) {
	var totals UsageTotals

	for _, entry := range entries {
		if entry.Type != "assistant" {
			continue
		}
		if entry.Message == nil || entry.Message.Usage == nil {
			continue
		}

		usage := entry.Message.Usage
		totals.InputTokens += usage.InputTokens
		totals.OutputTokens += usage.OutputTokens
		totals.CacheReadTokens += usage.CacheReadInputTokens
		totals.CacheCreateTokens += usage.CacheCreationInputTokens
	}

	if totals.InputTokens == 0 && totals.OutputTokens == 0 {
		return UsageTotals{}, false
	}
	return totals, true
}
