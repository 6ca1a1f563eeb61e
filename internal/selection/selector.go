package selection

import (
	"sort"

	"CorpusReprocessor/internal/domain"
	"CorpusReprocessor/internal/scoring"
)

// BalanceCategories is the fixed bucket order used for balanced selection.
// Artifacts with an unknown or unset category fall into "general". The
// first (targetCount % len) categories in this order receive the extra
// slot when the budget does not divide evenly.
var BalanceCategories = []string{
	"replace",
	"augment",
	"new_tasks",
	"human_only",
	domain.DefaultCategory,
}

// Ranked pairs an artifact with its composite quality score.
type Ranked struct {
	Artifact domain.Artifact
	Score    float64
}

// Rank scores every artifact against one snapshot and returns them sorted
// by score descending, ties keeping original order.
func Rank(artifacts []domain.Artifact, scorer *scoring.Scorer, snap *scoring.Snapshot) []Ranked {
	ranked := make([]Ranked, 0, len(artifacts))
	for i := range artifacts {
		ranked = append(ranked, Ranked{
			Artifact: artifacts[i],
			Score:    scorer.Score(&artifacts[i], snap).Total,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Select produces a budgeted subset of the ranked artifacts. Input must be
// sorted by score descending. With balancing on, each category gets a
// quota of the budget; once every quota is met, remaining slots fill
// purely by score. The result always has min(targetCount, len(ranked))
// entries.
func Select(ranked []Ranked, targetCount int, balanceCategories bool) []Ranked {
	if targetCount < 0 {
		targetCount = 0
	}
	if len(ranked) <= targetCount {
		out := make([]Ranked, len(ranked))
		copy(out, ranked)
		return out
	}
	if !balanceCategories {
		out := make([]Ranked, targetCount)
		copy(out, ranked[:targetCount])
		return out
	}

	perCategory := targetCount / len(BalanceCategories)
	remainder := targetCount % len(BalanceCategories)

	targets := make(map[string]int, len(BalanceCategories))
	for i, category := range BalanceCategories {
		targets[category] = perCategory
		if i < remainder {
			targets[category]++
		}
	}

	accepted := make([]Ranked, 0, targetCount)
	counts := map[string]int{}
	var overflow []Ranked

	for _, r := range ranked {
		if len(accepted) == targetCount {
			break
		}
		category := bucketOf(&r.Artifact)
		if counts[category] < targets[category] {
			accepted = append(accepted, r)
			counts[category]++
		} else {
			overflow = append(overflow, r)
		}
	}

	// Uncapped fill phase: quotas are exhausted or unfillable; take the
	// best of what is left purely by score.
	for _, r := range overflow {
		if len(accepted) == targetCount {
			break
		}
		accepted = append(accepted, r)
	}

	return accepted
}

func bucketOf(a *domain.Artifact) string {
	category := a.PrimaryCategory()
	for _, known := range BalanceCategories {
		if category == known {
			return category
		}
	}
	return domain.DefaultCategory
}
