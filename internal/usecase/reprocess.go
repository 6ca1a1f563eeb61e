package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"CorpusReprocessor/internal/classify"
	"CorpusReprocessor/internal/domain"
	"CorpusReprocessor/internal/ports"
	"CorpusReprocessor/internal/scoring"
	"CorpusReprocessor/internal/wisdom"
)

// RunRequest is the caller-facing control surface of one reprocessing
// run: which stages to execute, whether to redo completed work, and an
// optional cap on how many artifacts to touch.
type RunRequest struct {
	Stages StageSet
	Force  bool
	Limit  int
}

// ReprocessorDeps wires all collaborators into the orchestrator.
type ReprocessorDeps struct {
	Store      ports.ArtifactStore
	Scorer     *scoring.Scorer
	Classifier classify.Classifier
	Extractor  *wisdom.Extractor
	Logger     *slog.Logger
	Now        func() time.Time
}

// Reprocessor iterates the corpus, decides which stages each artifact
// still needs, applies them, and persists changed artifacts once each.
// Re-running with force off performs zero writes on artifacts whose
// completion markers are already set.
type Reprocessor struct {
	store      ports.ArtifactStore
	scorer     *scoring.Scorer
	classifier classify.Classifier
	extractor  *wisdom.Extractor
	logger     *slog.Logger
	now        func() time.Time
}

// NewReprocessor constructs the orchestration component.
func NewReprocessor(deps ReprocessorDeps) *Reprocessor {
	r := &Reprocessor{
		store:      deps.Store,
		scorer:     deps.Scorer,
		classifier: deps.Classifier,
		extractor:  deps.Extractor,
		logger:     deps.Logger,
		now:        deps.Now,
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Run executes the requested stages over the corpus and returns the run
// report. A store read failure is fatal; everything after that is
// recovered per artifact and accounted for in the report.
func (r *Reprocessor) Run(ctx context.Context, req RunRequest) (domain.Report, error) {
	report := domain.Report{StartedAt: r.now()}

	artifacts, err := r.store.GetAll(ctx, 0)
	if err != nil {
		return report, fmt.Errorf("read corpus: %w", err)
	}

	// One snapshot for the whole batch keeps corpus-relative scores
	// consistent across artifacts.
	snap := scoring.BuildSnapshot(artifacts)
	stages := r.buildStages(req.Stages, snap)
	if len(stages) == 0 {
		report.FinishedAt = r.now()
		return report, nil
	}

	candidates := r.selectCandidates(artifacts, stages, req)
	r.info("reprocessing run starting",
		"corpus", len(artifacts), "candidates", len(candidates), "force", req.Force)

	for i := range candidates {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = r.now()
			return report, fmt.Errorf("run cancelled: %w", err)
		}
		r.processArtifact(ctx, &candidates[i], stages, req.Force, &report)
	}

	report.FinishedAt = r.now()
	r.info("reprocessing run finished",
		"processed", report.TotalProcessed, "skipped", report.Skipped, "errors", report.Errors)
	return report, nil
}

func (r *Reprocessor) buildStages(set StageSet, snap *scoring.Snapshot) []Stage {
	var stages []Stage
	if set.Quality {
		if r.scorer != nil {
			stages = append(stages, &qualityStage{scorer: r.scorer, snap: snap, now: r.now})
		} else {
			r.warn("quality stage requested but no scorer configured")
		}
	}
	if set.Categorize {
		if r.classifier != nil {
			stages = append(stages, &categorizeStage{classifier: r.classifier, now: r.now})
		} else {
			r.warn("categorization stage requested but no classifier configured")
		}
	}
	if set.Multicategory {
		if r.classifier != nil {
			stages = append(stages, &multicategoryStage{classifier: r.classifier, now: r.now})
		} else {
			r.warn("multicategory stage requested but no classifier configured")
		}
	}
	if set.Wisdom {
		if r.extractor != nil {
			stages = append(stages, &wisdomStage{extractor: r.extractor, now: r.now})
		} else {
			r.warn("wisdom stage requested but no extractor configured")
		}
	}
	if set.Enhance {
		stages = append(stages, &enhanceStage{})
	}
	if set.Standardize {
		stages = append(stages, &standardizeStage{now: r.now})
	}
	return stages
}

// selectCandidates keeps artifacts with at least one incomplete selected
// stage (all of them when forced), oldest first, truncated to the limit.
func (r *Reprocessor) selectCandidates(artifacts []domain.Artifact, stages []Stage, req RunRequest) []domain.Artifact {
	var candidates []domain.Artifact
	for i := range artifacts {
		if req.Force || anyIncomplete(stages, &artifacts[i]) {
			candidates = append(candidates, artifacts[i])
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CollectedAt.Before(candidates[j].CollectedAt)
	})

	if req.Limit > 0 && len(candidates) > req.Limit {
		candidates = candidates[:req.Limit]
	}
	return candidates
}

func anyIncomplete(stages []Stage, a *domain.Artifact) bool {
	for _, stage := range stages {
		if !stage.Complete(a) {
			return true
		}
	}
	return false
}

func (r *Reprocessor) processArtifact(ctx context.Context, a *domain.Artifact, stages []Stage, force bool, report *domain.Report) {
	report.TotalProcessed++
	changed := false

	for _, stage := range stages {
		if !force && stage.Complete(a) {
			continue
		}

		stageChanged, err := r.applyStage(ctx, stage, a)
		if err != nil {
			report.Errors++
			r.warn("stage failed", "stage", stage.Name(), "artifact", a.ID, "error", err)
			continue
		}
		if stageChanged {
			changed = true
			bump(report, stage.Name())
		}
	}

	if !changed {
		report.Skipped++
		return
	}

	// Single upsert per changed artifact regardless of how many stages
	// touched it.
	if _, err := r.store.Upsert(ctx, *a); err != nil {
		report.Errors++
		r.warn("persist failed", "artifact", a.ID, "error", err)
	}
}

// applyStage shields the run from panicking stages; a panic is one more
// per-artifact error, not an aborted batch.
func (r *Reprocessor) applyStage(ctx context.Context, stage Stage, a *domain.Artifact) (changed bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			changed = false
			err = fmt.Errorf("stage %s panicked: %v", stage.Name(), p)
		}
	}()
	return stage.Apply(ctx, a)
}

func bump(report *domain.Report, stage string) {
	switch stage {
	case StageQuality:
		report.QualityUpdated++
	case StageCategorize:
		report.CategoriesUpdated++
	case StageMulticategory:
		report.MulticategoryUpdated++
	case StageWisdom:
		report.WisdomUpdated++
	case StageEnhance:
		report.ContentEnhanced++
	case StageStandardize:
		report.MetadataStandardized++
	}
}

func (r *Reprocessor) info(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}

func (r *Reprocessor) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}
