package scoring

import (
	"net/url"
	"strings"
	"time"

	"CorpusReprocessor/internal/domain"
)

// Factor weights. Fixed; they sum to exactly 1.000, which keeps the
// composite total inside [0,1].
const (
	WeightSourceCredibility = 0.25
	WeightContentQuality    = 0.25
	WeightTemporalRelevance = 0.20
	WeightCategoryBalance   = 0.15
	WeightUniqueness        = 0.15
)

const (
	targetCategoryRatio = 0.25
	similarityThreshold = 0.7
)

// Source types that mark a manually curated entry.
var curatedSourceTypes = map[string]bool{
	"manual":  true,
	"curated": true,
}

// Suffixes of academic, government and nonprofit publishers.
var institutionalSuffixes = []string{".edu", ".gov", ".org", ".ac.uk"}

// Scorer computes the five-factor composite quality assessment for one
// artifact against a corpus snapshot. It is deterministic for a fixed
// (artifact, snapshot, now) triple.
type Scorer struct {
	trustedDomains map[string]float64
	technicalTerms []string
	now            func() time.Time
}

// Option tweaks scorer construction.
type Option func(*Scorer)

// WithClock overrides the wall clock, used by temporal relevance.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

// NewScorer builds a scorer around the swappable scoring tables.
func NewScorer(trustedDomains map[string]float64, technicalTerms []string, opts ...Option) *Scorer {
	s := &Scorer{
		trustedDomains: trustedDomains,
		technicalTerms: technicalTerms,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score assesses one artifact against the snapshot.
func (s *Scorer) Score(a *domain.Artifact, snap *Snapshot) domain.QualityAssessment {
	q := domain.QualityAssessment{
		SourceCredibility: s.sourceCredibility(a),
		ContentQuality:    s.contentQuality(a),
		TemporalRelevance: s.temporalRelevance(a),
		CategoryBalance:   s.categoryBalance(a, snap),
		Uniqueness:        s.uniqueness(a, snap),
	}
	q.Total = q.SourceCredibility*WeightSourceCredibility +
		q.ContentQuality*WeightContentQuality +
		q.TemporalRelevance*WeightTemporalRelevance +
		q.CategoryBalance*WeightCategoryBalance +
		q.Uniqueness*WeightUniqueness
	return q
}

func (s *Scorer) sourceCredibility(a *domain.Artifact) float64 {
	base := 0.6
	if curatedSourceTypes[strings.ToLower(a.SourceType)] {
		base = 0.8
	}

	host := hostOf(a.URL)
	if host == "" {
		return base
	}

	for dom, credibility := range s.trustedDomains {
		if host == dom || strings.HasSuffix(host, "."+dom) {
			return clamp01(base + credibility*0.4)
		}
	}

	for _, suffix := range institutionalSuffixes {
		if strings.HasSuffix(host, suffix) {
			return clamp01(base + 0.2)
		}
	}

	return base
}

func (s *Scorer) contentQuality(a *domain.Artifact) float64 {
	score := 0.5

	words := len(strings.Fields(a.Content))
	switch {
	case words >= 300 && words <= 3000:
		score += 0.3
	case (words >= 100 && words < 300) || (words > 3000 && words <= 5000):
		score += 0.2
	case words > 5000:
		score += 0.1
	}

	lower := strings.ToLower(a.Content)
	matched := 0
	for _, term := range s.technicalTerms {
		if strings.Contains(lower, term) {
			matched++
		}
	}
	density := float64(matched) * 0.02
	if density > 0.2 {
		density = 0.2
	}
	score += density

	if titleIsDescriptive(a.Title) {
		score += 0.1
	}

	return clamp01(score)
}

var genericTitleOpeners = map[string]bool{
	"the": true, "a": true, "an": true, "this": true,
	"that": true, "untitled": true, "re:": true,
}

func titleIsDescriptive(title string) bool {
	fields := strings.Fields(title)
	if len(fields) < 5 {
		return false
	}
	return !genericTitleOpeners[strings.ToLower(fields[0])]
}

func (s *Scorer) temporalRelevance(a *domain.Artifact) float64 {
	if a.CollectedAt.IsZero() {
		return 0.5
	}

	age := s.now().Sub(a.CollectedAt)
	if age < 0 {
		age = 0
	}
	days := int(age.Hours() / 24)
	switch {
	case days <= 30:
		return 1.0
	case days <= 90:
		return 0.9
	case days <= 180:
		return 0.8
	case days <= 365:
		return 0.6
	default:
		return 0.4
	}
}

func (s *Scorer) categoryBalance(a *domain.Artifact, snap *Snapshot) float64 {
	ratio := snap.CategoryRatio(a.PrimaryCategory())
	if ratio < targetCategoryRatio {
		return clamp01(1 - ratio/targetCategoryRatio)
	}
	score := targetCategoryRatio / ratio
	if score < 0.3 {
		return 0.3
	}
	return score
}

func (s *Scorer) uniqueness(a *domain.Artifact, snap *Snapshot) float64 {
	if snap.urlSharedByOther(a.ID, a.URL) {
		return 0.1
	}

	similar := snap.similarTitleCount(a.ID, titleWords(a.Title))
	switch {
	case similar == 0:
		return 1.0
	case similar <= 2:
		return 0.7
	default:
		return 0.4
	}
}

func hostOf(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return ""
	}
	host := strings.ToLower(parsed.Host)
	return strings.TrimPrefix(host, "www.")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
