package domain

import "time"

// Artifact is a core entity describing one collected document and the
// metadata accumulated by reprocessing stages.
type Artifact struct {
	ID          string
	URL         string
	Title       string
	Content     string
	SourceType  string
	CollectedAt time.Time
	Metadata    map[string]any
}

// Metadata keys owned by the reprocessing stages. Each stage reads and
// writes only its own keys; the map itself is shared.
const (
	MetaQualityScore             = "quality_score"
	MetaQualityDetails           = "quality_details"
	MetaQualityCalculatedAt      = "quality_calculated_at"
	MetaImpactCategory           = "ai_impact_category"
	MetaImpactCategories         = "ai_impact_categories"
	MetaClassificationConfidence = "classification_confidence"
	MetaClassifiedAt             = "classified_at"
	MetaMulticategoryProcessedAt = "multicategory_processed_at"
	MetaExtractedWisdom          = "extracted_wisdom"
	MetaWisdomExtractedAt        = "wisdom_extracted_at"
	MetaProcessingFlags          = "processing_flags"
	MetaRawHTML                  = "raw_html"
)

// DefaultCategory buckets artifacts that were never classified.
const DefaultCategory = "general"

// EnsureMetadata lazily allocates the metadata map.
func (a *Artifact) EnsureMetadata() map[string]any {
	if a.Metadata == nil {
		a.Metadata = map[string]any{}
	}
	return a.Metadata
}

// SetMeta writes one metadata key, allocating the map when needed.
func (a *Artifact) SetMeta(key string, value any) {
	a.EnsureMetadata()[key] = value
}

// MetaString returns a string metadata value or "".
func (a *Artifact) MetaString(key string) string {
	if a.Metadata == nil {
		return ""
	}
	if s, ok := a.Metadata[key].(string); ok {
		return s
	}
	return ""
}

// MetaFloat returns a numeric metadata value. JSON round-trips deliver
// numbers as float64; ints written in-process are accepted too.
func (a *Artifact) MetaFloat(key string) (float64, bool) {
	if a.Metadata == nil {
		return 0, false
	}
	switch v := a.Metadata[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

// MetaMap returns an object-valued metadata key or nil.
func (a *Artifact) MetaMap(key string) map[string]any {
	if a.Metadata == nil {
		return nil
	}
	if m, ok := a.Metadata[key].(map[string]any); ok {
		return m
	}
	return nil
}

// PrimaryCategory returns the assigned impact category, defaulting to
// "general" for unclassified artifacts.
func (a *Artifact) PrimaryCategory() string {
	if c := a.MetaString(MetaImpactCategory); c != "" {
		return c
	}
	return DefaultCategory
}
