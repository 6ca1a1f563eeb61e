package llm

import (
	"context"

	"CorpusReprocessor/internal/breaker"
	"CorpusReprocessor/internal/ports"
)

// GuardedGateway routes every gateway call through one shared circuit
// breaker, so repeated failures against the language-model service
// suppress all subsequent uses until the recovery window passes.
type GuardedGateway struct {
	inner   ports.LLMGateway
	breaker *breaker.CircuitBreaker
}

var _ ports.LLMGateway = (*GuardedGateway)(nil)

// NewGuarded wraps a gateway with the breaker.
func NewGuarded(inner ports.LLMGateway, b *breaker.CircuitBreaker) *GuardedGateway {
	return &GuardedGateway{inner: inner, breaker: b}
}

// Invoke delegates under breaker protection; while the breaker is open it
// fails fast with breaker.ErrOpen.
func (g *GuardedGateway) Invoke(ctx context.Context, prompt string) (string, error) {
	var out string
	err := g.breaker.Call(func() error {
		var callErr error
		out, callErr = g.inner.Invoke(ctx, prompt)
		return callErr
	})
	if err != nil {
		return "", err
	}
	return out, nil
}
