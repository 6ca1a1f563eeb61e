package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"CorpusReprocessor/internal/domain"
	"CorpusReprocessor/internal/ports"
)

// MemoryStore is an in-process ArtifactStore used by tests and DSN-less
// runs. Artifacts are deep-copied on the way in and out so callers never
// alias the stored metadata maps.
type MemoryStore struct {
	mu        sync.RWMutex
	artifacts map[string]domain.Artifact
}

var _ ports.ArtifactStore = (*MemoryStore)(nil)

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{artifacts: map[string]domain.Artifact{}}
}

// GetAll returns artifacts ordered by collection time ascending.
func (s *MemoryStore) GetAll(_ context.Context, limit int) ([]domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Artifact, 0, len(s.artifacts))
	for _, a := range s.artifacts {
		copied, err := cloneArtifact(a)
		if err != nil {
			return nil, err
		}
		out = append(out, copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CollectedAt.Equal(out[j].CollectedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CollectedAt.Before(out[j].CollectedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetByID returns nil without error when the artifact does not exist.
func (s *MemoryStore) GetByID(_ context.Context, id string) (*domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.artifacts[id]
	if !ok {
		return nil, nil
	}
	copied, err := cloneArtifact(a)
	if err != nil {
		return nil, err
	}
	return &copied, nil
}

// ExistsByURL reports whether any artifact holds the URL.
func (s *MemoryStore) ExistsByURL(_ context.Context, url string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.artifacts {
		if a.URL == url {
			return true, nil
		}
	}
	return false, nil
}

// Upsert inserts or replaces the artifact snapshot by id.
func (s *MemoryStore) Upsert(_ context.Context, artifact domain.Artifact) (string, error) {
	if artifact.ID == "" {
		artifact.ID = uuid.NewString()
	}

	copied, err := cloneArtifact(artifact)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.artifacts[copied.ID] = copied
	s.mu.Unlock()
	return copied.ID, nil
}

// cloneArtifact deep-copies metadata through JSON, matching the value
// shapes the Postgres store would deliver.
func cloneArtifact(a domain.Artifact) (domain.Artifact, error) {
	if a.Metadata == nil {
		return a, nil
	}
	raw, err := json.Marshal(a.Metadata)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("clone metadata of %s: %w", a.ID, err)
	}
	copied := a
	copied.Metadata = nil
	if err := json.Unmarshal(raw, &copied.Metadata); err != nil {
		return domain.Artifact{}, fmt.Errorf("clone metadata of %s: %w", a.ID, err)
	}
	return copied, nil
}
