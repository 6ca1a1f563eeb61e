package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsCarryScoringTables(t *testing.T) {
	cfg := Load()

	assert.NotEmpty(t, cfg.Scoring.TrustedDomains)
	assert.Len(t, cfg.Scoring.TechnicalTerms, 18)
	assert.Len(t, cfg.Classify.CategoryKeywords, 4)
	for category, keywords := range cfg.Classify.CategoryKeywords {
		assert.NotEmpty(t, keywords, "category %s", category)
	}
	assert.Equal(t, 3, cfg.Breaker.FailureThreshold)
}

func TestFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
llm:
  model: file-model
breaker:
  failureThreshold: 5
`), 0o600))

	t.Setenv("CORPUS_REPROCESSOR_CONFIG", path)
	t.Setenv("LLM_MODEL", "env-model")
	t.Setenv("DATABASE_DSN", "postgres://example/corpus")

	cfg := Load()

	assert.Equal(t, "debug", cfg.Logging.Level)
	// Environment wins over the file.
	assert.Equal(t, "env-model", cfg.LLM.Model)
	assert.Equal(t, "postgres://example/corpus", cfg.Database.DSN)
	assert.Equal(t, 5, cfg.Breaker.FailureThreshold)
	// Untouched sections keep their defaults.
	assert.NotEmpty(t, cfg.Scoring.TechnicalTerms)
}
