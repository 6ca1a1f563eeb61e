package wisdom

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"CorpusReprocessor/internal/domain"
	"CorpusReprocessor/internal/ports"
)

// Extractor distills key insights from an artifact through the language
// model. It never returns an error: gateway failures, open-circuit
// rejections and unparseable responses all yield a tagged fallback result
// that is persisted like any other, so the run accounts for every
// artifact.
type Extractor struct {
	gateway ports.LLMGateway
	logger  *slog.Logger
}

// NewExtractor wires the breaker-guarded gateway.
func NewExtractor(gateway ports.LLMGateway, logger *slog.Logger) *Extractor {
	return &Extractor{gateway: gateway, logger: logger}
}

const (
	maxPromptContent      = 6000
	fallbackRelevance     = 0.2
	fallbackContentNote   = "content unavailable or too limited for extraction"
	unavailableGatewayErr = "language-model gateway not configured"
)

// Extract asks the model for insights and themes, degrading to a fallback
// result when the external service cannot deliver.
func (e *Extractor) Extract(ctx context.Context, a *domain.Artifact) domain.WisdomResult {
	if e.gateway == nil {
		return fallbackResult(unavailableGatewayErr)
	}

	raw, err := e.gateway.Invoke(ctx, buildPrompt(a))
	if err != nil {
		e.warn("wisdom extraction failed", "artifact", a.ID, "error", err)
		return fallbackResult(err.Error())
	}

	result, err := parseResponse(raw)
	if err != nil {
		e.warn("wisdom response unparseable", "artifact", a.ID, "error", err)
		return fallbackResult(err.Error())
	}

	return result
}

func fallbackResult(reason string) domain.WisdomResult {
	return domain.WisdomResult{
		Method:          domain.WisdomMethodFallback,
		RelevanceScore:  fallbackRelevance,
		ExtractionError: reason,
		ContentNote:     fallbackContentNote,
	}
}

func buildPrompt(a *domain.Artifact) string {
	content := a.Content
	if len(content) > maxPromptContent {
		content = content[:maxPromptContent]
	}
	var b strings.Builder
	b.WriteString("Extract the key insights of this document about AI and the workforce. Respond with JSON of the form ")
	b.WriteString(`{"key_insights":["..."],"themes":["..."],"relevance_score":0.0}`)
	b.WriteString(" where relevance_score is between 0 and 1.\n\n")
	fmt.Fprintf(&b, "Title: %s\n\nContent:\n%s\n", a.Title, content)
	return b.String()
}

func parseResponse(raw string) (domain.WisdomResult, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return domain.WisdomResult{}, fmt.Errorf("no JSON object in response")
	}

	var parsed struct {
		KeyInsights    []string `json:"key_insights"`
		Themes         []string `json:"themes"`
		RelevanceScore float64  `json:"relevance_score"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return domain.WisdomResult{}, fmt.Errorf("decode wisdom: %w", err)
	}
	if len(parsed.KeyInsights) == 0 {
		return domain.WisdomResult{}, fmt.Errorf("response carries no insights")
	}

	score := parsed.RelevanceScore
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return domain.WisdomResult{
		KeyInsights:    parsed.KeyInsights,
		Themes:         parsed.Themes,
		RelevanceScore: score,
		Method:         domain.WisdomMethodLLM,
	}, nil
}

func (e *Extractor) warn(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}
