package classify

import (
	"context"
	"strings"

	"CorpusReprocessor/internal/domain"
)

// KeywordClassifier scores categories by counting indicator keywords in
// the title and content. Pure CPU work; it never fails.
type KeywordClassifier struct {
	keywords map[string][]string
}

var _ Classifier = (*KeywordClassifier)(nil)

// NewKeywordClassifier wires the per-category keyword tables from config.
func NewKeywordClassifier(keywords map[string][]string) *KeywordClassifier {
	return &KeywordClassifier{keywords: keywords}
}

const maxEvidence = 5

// Classify matches every category's keyword list against the document.
// Confidence is min(1, matches/len(keywords)*2); only categories with at
// least one match are candidates.
func (k *KeywordClassifier) Classify(_ context.Context, title, content string) (domain.CategoryAssignment, error) {
	text := strings.ToLower(title + "\n" + content)

	candidates := domain.CategoryAssignment{}
	for _, category := range Categories {
		list := k.keywords[category]
		if len(list) == 0 {
			continue
		}

		var matched []string
		for _, keyword := range list {
			if strings.Contains(text, strings.ToLower(keyword)) {
				matched = append(matched, keyword)
			}
		}
		if len(matched) == 0 {
			continue
		}

		confidence := float64(len(matched)) / float64(len(list)) * 2
		if confidence > 1 {
			confidence = 1
		}

		evidence := matched
		if len(evidence) > maxEvidence {
			evidence = evidence[:maxEvidence]
		}

		candidates[category] = domain.CategoryScore{
			Confidence:          confidence,
			Evidence:            evidence,
			MatchedKeywordCount: len(matched),
		}
	}

	return finalize(candidates), nil
}
