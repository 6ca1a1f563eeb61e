package ports

import (
	"context"

	"CorpusReprocessor/internal/domain"
)

// ArtifactStore persists collected artifacts and their stage metadata.
// Upsert is atomic per artifact; there is no cross-artifact transaction.
type ArtifactStore interface {
	// GetAll returns artifacts ordered by collection time ascending.
	// A limit <= 0 means no limit.
	GetAll(ctx context.Context, limit int) ([]domain.Artifact, error)
	// GetByID returns nil without error when the artifact does not exist.
	GetByID(ctx context.Context, id string) (*domain.Artifact, error)
	ExistsByURL(ctx context.Context, url string) (bool, error)
	// Upsert inserts or replaces the artifact and returns its id,
	// assigning one when the artifact has none.
	Upsert(ctx context.Context, artifact domain.Artifact) (string, error)
}

// LLMGateway sends one prompt to the external language-model service and
// returns its raw text response. Parsing is the caller's concern;
// transport reliability is the gateway's.
type LLMGateway interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}
