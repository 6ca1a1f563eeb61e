package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"CorpusReprocessor/internal/classify"
	"CorpusReprocessor/internal/domain"
	"CorpusReprocessor/internal/enhance"
	"CorpusReprocessor/internal/scoring"
	"CorpusReprocessor/internal/wisdom"
)

// qualityStage computes the five-factor assessment against the snapshot
// taken at the start of the run.
type qualityStage struct {
	scorer *scoring.Scorer
	snap   *scoring.Snapshot
	now    func() time.Time
}

func (s *qualityStage) Name() string { return StageQuality }

func (s *qualityStage) Complete(a *domain.Artifact) bool {
	_, ok := a.MetaFloat(domain.MetaQualityScore)
	return ok
}

func (s *qualityStage) Apply(_ context.Context, a *domain.Artifact) (bool, error) {
	q := s.scorer.Score(a, s.snap)
	a.SetMeta(domain.MetaQualityScore, q.Total)
	a.SetMeta(domain.MetaQualityDetails, q.Details())
	a.SetMeta(domain.MetaQualityCalculatedAt, stamp(s.now))
	return true, nil
}

// categorizeStage assigns the primary impact category.
type categorizeStage struct {
	classifier classify.Classifier
	now        func() time.Time
}

func (s *categorizeStage) Name() string { return StageCategorize }

func (s *categorizeStage) Complete(a *domain.Artifact) bool {
	return a.MetaString(domain.MetaImpactCategory) != ""
}

func (s *categorizeStage) Apply(ctx context.Context, a *domain.Artifact) (bool, error) {
	assignment, err := s.classifier.Classify(ctx, a.Title, a.Content)
	if err != nil {
		return false, fmt.Errorf("classify: %w", err)
	}
	primary := assignment.Primary()
	a.SetMeta(domain.MetaImpactCategory, primary)
	a.SetMeta(domain.MetaClassificationConfidence, assignment[primary].Confidence)
	a.SetMeta(domain.MetaClassifiedAt, stamp(s.now))
	return true, nil
}

// multicategoryStage persists the full category map.
type multicategoryStage struct {
	classifier classify.Classifier
	now        func() time.Time
}

func (s *multicategoryStage) Name() string { return StageMulticategory }

func (s *multicategoryStage) Complete(a *domain.Artifact) bool {
	return a.MetaMap(domain.MetaImpactCategories) != nil
}

func (s *multicategoryStage) Apply(ctx context.Context, a *domain.Artifact) (bool, error) {
	assignment, err := s.classifier.Classify(ctx, a.Title, a.Content)
	if err != nil {
		return false, fmt.Errorf("classify: %w", err)
	}
	a.SetMeta(domain.MetaImpactCategories, assignment.AsMetadata())
	a.SetMeta(domain.MetaMulticategoryProcessedAt, stamp(s.now))
	return true, nil
}

// wisdomStage extracts insights via the language model. Fallback results
// are persisted too, but Complete treats them as missing so non-forced
// runs retry them once the service recovers.
type wisdomStage struct {
	extractor *wisdom.Extractor
	now       func() time.Time
}

func (s *wisdomStage) Name() string { return StageWisdom }

func (s *wisdomStage) Complete(a *domain.Artifact) bool {
	m := a.MetaMap(domain.MetaExtractedWisdom)
	if m == nil {
		return false
	}
	method, _ := m["extraction_method"].(string)
	return method != domain.WisdomMethodFallback
}

func (s *wisdomStage) Apply(ctx context.Context, a *domain.Artifact) (bool, error) {
	result := s.extractor.Extract(ctx, a)
	a.SetMeta(domain.MetaExtractedWisdom, result.AsMetadata())
	a.SetMeta(domain.MetaWisdomExtractedAt, stamp(s.now))
	return true, nil
}

// enhanceStage recovers readable text for thin artifacts from a stored
// raw HTML payload. Artifacts with enough content are already complete.
type enhanceStage struct{}

const minContentLength = 500

func (s *enhanceStage) Name() string { return StageEnhance }

func (s *enhanceStage) Complete(a *domain.Artifact) bool {
	return len(a.Content) >= minContentLength
}

func (s *enhanceStage) Apply(_ context.Context, a *domain.Artifact) (bool, error) {
	raw := a.MetaString(domain.MetaRawHTML)
	if raw == "" {
		return false, nil
	}
	text := enhance.ReadableText(raw)
	if len(text) <= len(a.Content) {
		return false, nil
	}
	a.Content = text
	return true, nil
}

// standardizeStage normalizes shared metadata and records what it did
// under processing_flags, which doubles as its completion marker.
type standardizeStage struct {
	now func() time.Time
}

func (s *standardizeStage) Name() string { return StageStandardize }

func (s *standardizeStage) Complete(a *domain.Artifact) bool {
	return a.MetaMap(domain.MetaProcessingFlags) != nil
}

func (s *standardizeStage) Apply(_ context.Context, a *domain.Artifact) (bool, error) {
	flags := map[string]any{
		"metadata_standardized": true,
		"standardized_at":       stamp(s.now),
	}

	if normalized := normalizeURL(a.URL); normalized != a.URL {
		a.URL = normalized
		flags["url_normalized"] = true
	}

	if strings.TrimSpace(a.SourceType) == "" {
		a.SourceType = "unknown"
		flags["source_type_defaulted"] = true
	}

	a.SetMeta(domain.MetaProcessingFlags, flags)
	return true, nil
}

func normalizeURL(raw string) string {
	if raw == "" {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return raw
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	return strings.TrimSuffix(parsed.String(), "/")
}

func stamp(now func() time.Time) string {
	return now().UTC().Format(time.RFC3339)
}
