package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"CorpusReprocessor/internal/domain"
	"CorpusReprocessor/internal/ports"
)

// LLMClassifier delegates classification to the external language model.
// Gateway failures, open-circuit rejections and unparseable responses all
// degrade to the deterministic keyword strategy rather than erroring.
type LLMClassifier struct {
	gateway  ports.LLMGateway
	fallback *KeywordClassifier
	logger   *slog.Logger
}

var _ Classifier = (*LLMClassifier)(nil)

// NewLLMClassifier wraps the gateway with a keyword fallback.
func NewLLMClassifier(gateway ports.LLMGateway, fallback *KeywordClassifier, logger *slog.Logger) *LLMClassifier {
	return &LLMClassifier{gateway: gateway, fallback: fallback, logger: logger}
}

const maxPromptContent = 4000

// Classify prompts the model for per-category confidences and evidence,
// then applies the shared retention filter and fallback.
func (l *LLMClassifier) Classify(ctx context.Context, title, content string) (domain.CategoryAssignment, error) {
	raw, err := l.gateway.Invoke(ctx, buildClassifyPrompt(title, content))
	if err != nil {
		l.warn("llm classification failed, using keyword fallback", "error", err)
		return l.fallback.Classify(ctx, title, content)
	}

	candidates, err := parseClassifyResponse(raw)
	if err != nil {
		l.warn("llm classification unparseable, using keyword fallback", "error", err)
		return l.fallback.Classify(ctx, title, content)
	}

	return finalize(candidates), nil
}

func buildClassifyPrompt(title, content string) string {
	if len(content) > maxPromptContent {
		content = content[:maxPromptContent]
	}
	var b strings.Builder
	b.WriteString("Classify the workforce impact of this document. For each applicable category of ")
	b.WriteString(strings.Join(Categories, ", "))
	b.WriteString(" respond with JSON of the form ")
	b.WriteString(`{"categories":{"<name>":{"confidence":0.0,"evidence":["..."]}}}`)
	b.WriteString(" using confidence values between 0 and 1. Omit categories that do not apply.\n\n")
	fmt.Fprintf(&b, "Title: %s\n\nContent:\n%s\n", title, content)
	return b.String()
}

func parseClassifyResponse(raw string) (domain.CategoryAssignment, error) {
	payload := extractJSONObject(raw)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var parsed struct {
		Categories map[string]struct {
			Confidence float64  `json:"confidence"`
			Evidence   []string `json:"evidence"`
		} `json:"categories"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("decode classification: %w", err)
	}
	if len(parsed.Categories) == 0 {
		return nil, fmt.Errorf("response carries no categories")
	}

	known := map[string]bool{}
	for _, c := range Categories {
		known[c] = true
	}

	candidates := domain.CategoryAssignment{}
	for name, entry := range parsed.Categories {
		if !known[name] {
			continue
		}
		confidence := entry.Confidence
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}
		candidates[name] = domain.CategoryScore{
			Confidence: confidence,
			Evidence:   entry.Evidence,
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("response carries no known categories")
	}
	return candidates, nil
}

// extractJSONObject pulls the outermost {...} from a response that may be
// wrapped in prose or a markdown fence.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

func (l *LLMClassifier) warn(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Warn(msg, args...)
	}
}
