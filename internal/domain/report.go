package domain

import "time"

// Report aggregates the outcome of one reprocessing run. It is created
// fresh per run and is the run's sole output artifact.
type Report struct {
	TotalProcessed       int       `json:"total_processed"`
	QualityUpdated       int       `json:"quality_updated"`
	CategoriesUpdated    int       `json:"categories_updated"`
	MulticategoryUpdated int       `json:"multicategory_updated"`
	WisdomUpdated        int       `json:"wisdom_updated"`
	ContentEnhanced      int       `json:"content_enhanced"`
	MetadataStandardized int       `json:"metadata_standardized"`
	Skipped              int       `json:"skipped"`
	Errors               int       `json:"errors"`
	StartedAt            time.Time `json:"started_at"`
	FinishedAt           time.Time `json:"finished_at"`
}
