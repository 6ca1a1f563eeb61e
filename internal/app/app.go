package app

import (
	"context"
	"fmt"
	"log/slog"

	"CorpusReprocessor/internal/breaker"
	"CorpusReprocessor/internal/classify"
	"CorpusReprocessor/internal/config"
	"CorpusReprocessor/internal/domain"
	"CorpusReprocessor/internal/infrastructure/llm"
	"CorpusReprocessor/internal/infrastructure/storage"
	"CorpusReprocessor/internal/logging"
	"CorpusReprocessor/internal/ports"
	"CorpusReprocessor/internal/scoring"
	"CorpusReprocessor/internal/selection"
	"CorpusReprocessor/internal/usecase"
	"CorpusReprocessor/internal/wisdom"
)

// Application wires configuration to the reprocessing and selection use
// cases. Wiring is nil-tolerant: without an API key the pipeline degrades
// to keyword classification and fallback wisdom results.
type Application struct {
	cfg         config.Config
	logger      *slog.Logger
	store       ports.ArtifactStore
	scorer      *scoring.Scorer
	reprocessor *usecase.Reprocessor
	closeStore  func() error
}

// New builds a runnable application instance.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	a := &Application{cfg: cfg, logger: baseLogger}

	if cfg.Database.DSN != "" {
		pg, err := storage.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect store: %w", err)
		}
		a.store = pg
		a.closeStore = pg.Close
	} else {
		baseLogger.Warn("no database dsn configured, using in-memory store")
		a.store = storage.NewMemoryStore()
	}

	a.scorer = scoring.NewScorer(cfg.Scoring.TrustedDomains, cfg.Scoring.TechnicalTerms)

	keyword := classify.NewKeywordClassifier(cfg.Classify.CategoryKeywords)
	var classifier classify.Classifier = keyword
	var gateway ports.LLMGateway
	if cfg.LLM.APIKey != "" {
		guard := breaker.New(cfg.Breaker.FailureThreshold, cfg.Breaker.RecoveryTimeout())
		gateway = llm.NewGuarded(llm.NewClient(cfg.LLM), guard)
		classifier = classify.NewLLMClassifier(gateway, keyword,
			baseLogger.With("component", "classifier"))
	}

	extractor := wisdom.NewExtractor(gateway, baseLogger.With("component", "wisdom"))

	a.reprocessor = usecase.NewReprocessor(usecase.ReprocessorDeps{
		Store:      a.store,
		Scorer:     a.scorer,
		Classifier: classifier,
		Extractor:  extractor,
		Logger:     baseLogger.With("component", "reprocessor"),
	})

	return a, nil
}

// Run executes one reprocessing run.
func (a *Application) Run(ctx context.Context, req usecase.RunRequest) (domain.Report, error) {
	return a.reprocessor.Run(ctx, req)
}

// SelectCorpus scores the whole corpus against one snapshot and returns a
// budgeted, optionally category-balanced working set.
func (a *Application) SelectCorpus(ctx context.Context, targetCount int, balance bool) ([]selection.Ranked, error) {
	artifacts, err := a.store.GetAll(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	snap := scoring.BuildSnapshot(artifacts)
	ranked := selection.Rank(artifacts, a.scorer, snap)
	return selection.Select(ranked, targetCount, balance), nil
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.closeStore != nil {
		return a.closeStore()
	}
	return nil
}
