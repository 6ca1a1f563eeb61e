package scoring

import (
	"strings"

	"CorpusReprocessor/internal/domain"
)

// Snapshot is a one-time read of the whole corpus, precomputed so that
// corpus-relative factors (category balance, uniqueness) cost O(1) per
// artifact instead of re-reading the store. A batch must score against a
// single snapshot for reproducible results.
type Snapshot struct {
	Total          int
	CategoryCounts map[string]int
	urlOwners      map[string][]string
	titles         []titleEntry
}

type titleEntry struct {
	id    string
	words map[string]struct{}
}

// BuildSnapshot derives corpus counts from a full artifact listing.
func BuildSnapshot(artifacts []domain.Artifact) *Snapshot {
	snap := &Snapshot{
		Total:          len(artifacts),
		CategoryCounts: map[string]int{},
		urlOwners:      map[string][]string{},
	}

	for i := range artifacts {
		a := &artifacts[i]
		snap.CategoryCounts[a.PrimaryCategory()]++
		if a.URL != "" {
			snap.urlOwners[a.URL] = append(snap.urlOwners[a.URL], a.ID)
		}
		snap.titles = append(snap.titles, titleEntry{
			id:    a.ID,
			words: titleWords(a.Title),
		})
	}

	return snap
}

// CategoryRatio returns the corpus share of one category.
func (s *Snapshot) CategoryRatio(category string) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.CategoryCounts[category]) / float64(s.Total)
}

// urlSharedByOther reports whether a different artifact holds the same URL.
func (s *Snapshot) urlSharedByOther(id, url string) bool {
	if url == "" {
		return false
	}
	for _, owner := range s.urlOwners[url] {
		if owner != id {
			return true
		}
	}
	return false
}

// similarTitleCount counts other artifacts whose title word set overlaps
// this one by more than the threshold, measured against the smaller set.
// Only other titles with more than three words are considered.
func (s *Snapshot) similarTitleCount(id string, words map[string]struct{}) int {
	if len(words) == 0 {
		return 0
	}

	similar := 0
	for _, entry := range s.titles {
		if entry.id == id || len(entry.words) <= 3 {
			continue
		}
		smaller := len(words)
		if len(entry.words) < smaller {
			smaller = len(entry.words)
		}
		overlap := 0
		for w := range words {
			if _, ok := entry.words[w]; ok {
				overlap++
			}
		}
		if float64(overlap)/float64(smaller) > similarityThreshold {
			similar++
		}
	}
	return similar
}

func titleWords(title string) map[string]struct{} {
	words := map[string]struct{}{}
	for _, w := range strings.Fields(strings.ToLower(title)) {
		w = strings.Trim(w, ".,:;!?\"'()[]")
		if w != "" {
			words[w] = struct{}{}
		}
	}
	return words
}
