package classify

import (
	"context"

	"CorpusReprocessor/internal/domain"
)

// Workforce-impact categories, in declaration order.
const (
	CategoryReplace   = "replace"
	CategoryAugment   = "augment"
	CategoryNewTasks  = "new_tasks"
	CategoryHumanOnly = "human_only"
)

// Categories is the classification scheme in declaration order.
var Categories = []string{CategoryReplace, CategoryAugment, CategoryNewTasks, CategoryHumanOnly}

// Categories below this confidence are dropped from assignments.
const minConfidence = 0.30

// Fallback values when no category qualifies; assignments are never empty.
const (
	fallbackCategory   = CategoryAugment
	fallbackConfidence = 0.4
	fallbackEvidence   = "no category indicators matched; defaulting to augmentation"
)

// Classifier assigns workforce-impact categories to one document. The two
// strategies (keyword matching, external language model) share this shape.
type Classifier interface {
	Classify(ctx context.Context, title, content string) (domain.CategoryAssignment, error)
}

// finalize applies the retention filter and the non-empty fallback shared
// by both strategies.
func finalize(candidates domain.CategoryAssignment) domain.CategoryAssignment {
	retained := domain.CategoryAssignment{}
	for name, score := range candidates {
		if score.Confidence >= minConfidence {
			retained[name] = score
		}
	}
	if len(retained) == 0 {
		retained[fallbackCategory] = domain.CategoryScore{
			Confidence: fallbackConfidence,
			Evidence:   []string{fallbackEvidence},
		}
	}
	return retained
}
