package domain

// CategoryScore carries the confidence and supporting evidence for one
// workforce-impact category.
type CategoryScore struct {
	Confidence          float64
	Evidence            []string
	MatchedKeywordCount int
}

// CategoryAssignment maps retained category names to their scores. It is
// never empty: classifiers synthesize a fallback entry when nothing
// qualifies.
type CategoryAssignment map[string]CategoryScore

// Primary returns the category with the highest confidence. Ties break on
// lexicographic order so the result is deterministic.
func (ca CategoryAssignment) Primary() string {
	best := ""
	bestConfidence := -1.0
	for name, score := range ca {
		if score.Confidence > bestConfidence ||
			(score.Confidence == bestConfidence && name < best) {
			best = name
			bestConfidence = score.Confidence
		}
	}
	return best
}

// AsMetadata renders the assignment in the flat JSON-compatible shape
// persisted under ai_impact_categories.
func (ca CategoryAssignment) AsMetadata() map[string]any {
	out := make(map[string]any, len(ca))
	for name, score := range ca {
		evidence := make([]any, 0, len(score.Evidence))
		for _, e := range score.Evidence {
			evidence = append(evidence, e)
		}
		out[name] = map[string]any{
			"confidence":            score.Confidence,
			"evidence":              evidence,
			"matched_keyword_count": score.MatchedKeywordCount,
		}
	}
	return out
}
