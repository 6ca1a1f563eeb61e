package domain

// QualityAssessment is the five-factor weighted composite score for an
// artifact. Total is always the weighted sum of the sub-scores and stays
// in [0,1] because the weights sum to 1.
type QualityAssessment struct {
	Total             float64
	SourceCredibility float64
	ContentQuality    float64
	TemporalRelevance float64
	CategoryBalance   float64
	Uniqueness        float64
}

// Details returns the sub-scores in the flat shape persisted under
// quality_details.
func (q QualityAssessment) Details() map[string]any {
	return map[string]any{
		"source_credibility": q.SourceCredibility,
		"content_quality":    q.ContentQuality,
		"temporal_relevance": q.TemporalRelevance,
		"category_balance":   q.CategoryBalance,
		"uniqueness":         q.Uniqueness,
	}
}
