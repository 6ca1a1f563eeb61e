package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CorpusReprocessor/internal/config"
)

func TestKeywordClassifierMatches(t *testing.T) {
	k := NewKeywordClassifier(config.DefaultCategoryKeywords())

	title := "Automation will replace routine data entry"
	content := "Studies predict displacement and job loss as firms automate clerical tasks."

	assignment, err := k.Classify(context.Background(), title, content)
	require.NoError(t, err)

	replace, ok := assignment[CategoryReplace]
	require.True(t, ok, "replace should be retained")
	// 6 of 10 keywords matched; substring matching counts "displace"
	// inside "displacement".
	assert.Equal(t, 6, replace.MatchedKeywordCount)
	assert.InDelta(t, 1.0, replace.Confidence, 1e-9)
	assert.NotEmpty(t, replace.Evidence)

	assert.Equal(t, CategoryReplace, assignment.Primary())
}

func TestKeywordClassifierDropsLowConfidence(t *testing.T) {
	k := NewKeywordClassifier(map[string][]string{
		CategoryReplace: {"automation", "k2", "k3", "k4", "k5", "k6", "k7", "k8", "k9", "k10"},
	})

	// 1 of 10 -> confidence 0.2 < 0.3, so the fallback kicks in.
	assignment, err := k.Classify(context.Background(), "automation news", "")
	require.NoError(t, err)

	require.Len(t, assignment, 1)
	fb, ok := assignment[CategoryAugment]
	require.True(t, ok)
	assert.InDelta(t, 0.4, fb.Confidence, 1e-9)
	assert.NotEmpty(t, fb.Evidence)
}

func TestKeywordClassifierFallbackOnNoMatch(t *testing.T) {
	k := NewKeywordClassifier(config.DefaultCategoryKeywords())

	assignment, err := k.Classify(context.Background(), "Weather report", "Rain expected tomorrow.")
	require.NoError(t, err)

	require.Len(t, assignment, 1)
	assert.Equal(t, CategoryAugment, assignment.Primary())
	assert.InDelta(t, 0.4, assignment[CategoryAugment].Confidence, 1e-9)
}

func TestConfidenceCapsAtOne(t *testing.T) {
	k := NewKeywordClassifier(map[string][]string{
		CategoryHumanOnly: {"empathy", "creativity"},
	})

	assignment, err := k.Classify(context.Background(), "", "empathy and creativity matter")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, assignment[CategoryHumanOnly].Confidence, 1e-9)
}
