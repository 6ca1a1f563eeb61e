package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"CorpusReprocessor/internal/domain"
	"CorpusReprocessor/internal/ports"
)

// PostgresStore persists artifacts in a single table with JSONB metadata.
type PostgresStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ArtifactStore = (*PostgresStore)(nil)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPostgresStore(db), nil
}

// NewPostgresStore wires an existing sql.DB.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

const artifactsTable = "artifacts"

var artifactColumns = []string{"id", "url", "title", "content", "source_type", "collected_at", "metadata"}

// GetAll returns artifacts ordered by collection time ascending.
func (s *PostgresStore) GetAll(ctx context.Context, limit int) ([]domain.Artifact, error) {
	query := s.builder.
		Select(artifactColumns...).
		From(artifactsTable).
		OrderBy("collected_at ASC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sqlText, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []domain.Artifact
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return artifacts, nil
}

// GetByID returns nil without error when the artifact does not exist.
func (s *PostgresStore) GetByID(ctx context.Context, id string) (*domain.Artifact, error) {
	sqlText, args, err := s.builder.
		Select(artifactColumns...).
		From(artifactsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("query artifact %s: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("rows iteration: %w", err)
		}
		return nil, nil
	}

	artifact, err := scanArtifact(rows)
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

// ExistsByURL reports whether any artifact holds the URL.
func (s *PostgresStore) ExistsByURL(ctx context.Context, url string) (bool, error) {
	sqlText, args, err := s.builder.
		Select("1").
		From(artifactsTable).
		Where(sq.Eq{"url": url}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, sqlText, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query url: %w", err)
	}
	return true, nil
}

// Upsert inserts or replaces the artifact snapshot by id.
func (s *PostgresStore) Upsert(ctx context.Context, artifact domain.Artifact) (string, error) {
	if artifact.ID == "" {
		artifact.ID = uuid.NewString()
	}

	metadata, err := json.Marshal(artifact.EnsureMetadata())
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}

	sqlText, args, err := s.builder.
		Insert(artifactsTable).
		Columns(artifactColumns...).
		Values(artifact.ID, artifact.URL, artifact.Title, artifact.Content,
			artifact.SourceType, artifact.CollectedAt, metadata).
		Suffix(`ON CONFLICT (id) DO UPDATE
			SET url = EXCLUDED.url,
			    title = EXCLUDED.title,
			    content = EXCLUDED.content,
			    source_type = EXCLUDED.source_type,
			    collected_at = EXCLUDED.collected_at,
			    metadata = EXCLUDED.metadata`).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, sqlText, args...); err != nil {
		return "", fmt.Errorf("upsert artifact %s: %w", artifact.ID, err)
	}

	return artifact.ID, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtifact(row rowScanner) (domain.Artifact, error) {
	var (
		artifact    domain.Artifact
		collectedAt sql.NullTime
		metadata    []byte
	)

	err := row.Scan(&artifact.ID, &artifact.URL, &artifact.Title,
		&artifact.Content, &artifact.SourceType, &collectedAt, &metadata)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("scan artifact: %w", err)
	}

	if collectedAt.Valid {
		artifact.CollectedAt = collectedAt.Time.UTC()
	} else {
		artifact.CollectedAt = time.Time{}
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &artifact.Metadata); err != nil {
			return domain.Artifact{}, fmt.Errorf("decode metadata of %s: %w", artifact.ID, err)
		}
	}

	return artifact, nil
}
