package selection

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CorpusReprocessor/internal/config"
	"CorpusReprocessor/internal/domain"
	"CorpusReprocessor/internal/scoring"
)

func rankedFixture(category string, n int, baseScore float64) []Ranked {
	out := make([]Ranked, 0, n)
	for i := 0; i < n; i++ {
		a := domain.Artifact{ID: fmt.Sprintf("%s-%d", category, i)}
		a.SetMeta(domain.MetaImpactCategory, category)
		out = append(out, Ranked{Artifact: a, Score: baseScore - float64(i)*0.001})
	}
	return out
}

func mergeByScore(groups ...[]Ranked) []Ranked {
	var all []Ranked
	for _, g := range groups {
		all = append(all, g...)
	}
	// Insertion sort keeps the fixture deterministic without importing sort.
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j].Score > all[j-1].Score; j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}
	return all
}

func TestSelectLengthProperty(t *testing.T) {
	docs := rankedFixture("replace", 10, 0.9)

	for _, n := range []int{0, 3, 10, 25} {
		got := Select(docs, n, true)
		assert.Len(t, got, min(n, len(docs)), "targetCount=%d", n)
	}
}

func TestSelectReturnsAllWhenUnderBudget(t *testing.T) {
	docs := rankedFixture("augment", 5, 0.8)
	got := Select(docs, 10, true)
	require.Len(t, got, 5)
	for i := range docs {
		assert.Equal(t, docs[i].Artifact.ID, got[i].Artifact.ID)
	}
}

func TestSelectUnbalancedTakesTopByScore(t *testing.T) {
	docs := mergeByScore(
		rankedFixture("replace", 8, 0.9),
		rankedFixture("augment", 8, 0.5),
	)
	got := Select(docs, 4, false)
	require.Len(t, got, 4)
	for _, r := range got {
		assert.Equal(t, "replace", r.Artifact.PrimaryCategory())
	}
}

func TestSelectBalancedQuotas(t *testing.T) {
	// 250 ranked docs, 50 per category, target 200 -> quota 40 each.
	docs := mergeByScore(
		rankedFixture("replace", 50, 0.95),
		rankedFixture("augment", 50, 0.90),
		rankedFixture("new_tasks", 50, 0.85),
		rankedFixture("human_only", 50, 0.80),
		rankedFixture("general", 50, 0.75),
	)
	require.Len(t, docs, 250)

	got := Select(docs, 200, true)
	require.Len(t, got, 200)

	counts := map[string]int{}
	for _, r := range got {
		counts[r.Artifact.PrimaryCategory()]++
	}
	for _, category := range BalanceCategories {
		assert.Equal(t, 40, counts[category], "category %s", category)
	}
}

func TestSelectRemainderGoesToFirstCategories(t *testing.T) {
	docs := mergeByScore(
		rankedFixture("replace", 10, 0.95),
		rankedFixture("augment", 10, 0.90),
		rankedFixture("new_tasks", 10, 0.85),
		rankedFixture("human_only", 10, 0.80),
		rankedFixture("general", 10, 0.75),
	)

	// 12 = 2 per category + remainder 2 for replace and augment.
	got := Select(docs, 12, true)
	require.Len(t, got, 12)

	counts := map[string]int{}
	for _, r := range got {
		counts[r.Artifact.PrimaryCategory()]++
	}
	assert.Equal(t, 3, counts["replace"])
	assert.Equal(t, 3, counts["augment"])
	assert.Equal(t, 2, counts["new_tasks"])
	assert.Equal(t, 2, counts["human_only"])
	assert.Equal(t, 2, counts["general"])
}

func TestSelectFillPhaseAfterQuotasExhausted(t *testing.T) {
	// Only two categories present; their quotas (2 each for target 10)
	// cannot cover the budget, so the fill phase tops up by score.
	docs := mergeByScore(
		rankedFixture("replace", 12, 0.9),
		rankedFixture("augment", 12, 0.5),
	)

	got := Select(docs, 10, true)
	require.Len(t, got, 10)

	counts := map[string]int{}
	for _, r := range got {
		counts[r.Artifact.PrimaryCategory()]++
	}
	// Quota phase: 2 replace + 2 augment; fill phase takes the 6 highest
	// remaining, all of which are replace docs.
	assert.Equal(t, 8, counts["replace"])
	assert.Equal(t, 2, counts["augment"])
}

func TestRankSortsByCompositeScore(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	scorer := scoring.NewScorer(
		config.DefaultTrustedDomains(),
		config.DefaultTechnicalTerms(),
		scoring.WithClock(func() time.Time { return now }),
	)

	fresh := domain.Artifact{ID: "fresh", URL: "https://arxiv.org/abs/1",
		Title:       "Generative models reshape analyst workflows today",
		CollectedAt: now.Add(-24 * time.Hour)}
	stale := domain.Artifact{ID: "stale", URL: "https://blog.example.net/old",
		Title:       "the old one",
		CollectedAt: now.Add(-2 * 365 * 24 * time.Hour)}

	artifacts := []domain.Artifact{stale, fresh}
	snap := scoring.BuildSnapshot(artifacts)

	ranked := Rank(artifacts, scorer, snap)
	require.Len(t, ranked, 2)
	assert.Equal(t, "fresh", ranked[0].Artifact.ID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}
