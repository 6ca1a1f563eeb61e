package domain

// Wisdom extraction methods recorded under extraction_method. A fallback
// result is deliberately persisted but treated as incomplete, so it is
// retried on the next non-forced run.
const (
	WisdomMethodLLM      = "llm"
	WisdomMethodFallback = "fallback"
)

// WisdomResult is the outcome of the wisdom-extraction stage, tagged by
// Method rather than signalled through errors: both parsed and fallback
// results are persisted and both count toward the updated statistic.
type WisdomResult struct {
	KeyInsights     []string
	Themes          []string
	RelevanceScore  float64
	Method          string
	ExtractionError string
	ContentNote     string
}

// IsFallback reports whether this result was synthesized after an external
// service failure.
func (w WisdomResult) IsFallback() bool {
	return w.Method == WisdomMethodFallback
}

// AsMetadata renders the result in the shape persisted under
// extracted_wisdom.
func (w WisdomResult) AsMetadata() map[string]any {
	insights := make([]any, 0, len(w.KeyInsights))
	for _, s := range w.KeyInsights {
		insights = append(insights, s)
	}
	themes := make([]any, 0, len(w.Themes))
	for _, s := range w.Themes {
		themes = append(themes, s)
	}
	out := map[string]any{
		"key_insights":      insights,
		"themes":            themes,
		"relevance_score":   w.RelevanceScore,
		"extraction_method": w.Method,
	}
	if w.ExtractionError != "" {
		out["extraction_error"] = w.ExtractionError
	}
	if w.ContentNote != "" {
		out["content_note"] = w.ContentNote
	}
	return out
}
