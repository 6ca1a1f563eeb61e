package usecase

import (
	"context"

	"CorpusReprocessor/internal/domain"
)

// Stage names, used for report accounting and logging.
const (
	StageQuality       = "quality_scoring"
	StageCategorize    = "categorization"
	StageMulticategory = "multicategory"
	StageWisdom        = "wisdom_extraction"
	StageEnhance       = "content_enhancement"
	StageStandardize   = "metadata_standardization"
)

// Stage is one independently skippable unit of reprocessing work.
// Complete derives the idempotency marker from the artifact's metadata;
// Apply mutates the artifact in place and reports whether it changed.
type Stage interface {
	Name() string
	Complete(a *domain.Artifact) bool
	Apply(ctx context.Context, a *domain.Artifact) (bool, error)
}

// StageSet selects which stages a run executes.
type StageSet struct {
	Quality       bool
	Categorize    bool
	Multicategory bool
	Wisdom        bool
	Enhance       bool
	Standardize   bool
}

// AllStages enables every stage.
func AllStages() StageSet {
	return StageSet{
		Quality:       true,
		Categorize:    true,
		Multicategory: true,
		Wisdom:        true,
		Enhance:       true,
		Standardize:   true,
	}
}

// Any reports whether at least one stage is selected.
func (s StageSet) Any() bool {
	return s.Quality || s.Categorize || s.Multicategory ||
		s.Wisdom || s.Enhance || s.Standardize
}
