// Package rerank packages the model's ranking plus request context into an
// instruction payload for a text-generation service and recovers the final
// ordered action list from its (possibly malformed) response.
package rerank

import (
	"context"
	"fmt"
	"log"
	"strings"

	"next-action-be/internal/entity"
	"next-action-be/pkg/llm"
)

// mutatingMethods are excluded from the final list when the caller asks
// for safe recommendations.
var mutatingMethods = map[string]bool{
	"DELETE": true,
	"PUT":    true,
	"PATCH":  true,
}

// Orchestrator drives the re-ranking call. Stateless apart from its
// injected collaborators; safe for concurrent use.
type Orchestrator struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewOrchestrator(provider llm.LLMProvider, logger *log.Logger) *Orchestrator {
	return &Orchestrator{provider: provider, logger: logger}
}

// Rerank renders history, catalog description and the model's ranking into
// one prompt, makes a single LLM call (cancellable through ctx) and parses
// the response. The returned items are NOT validated against the known
// action catalog; when excludeMutating is set, DELETE/PUT/PATCH entries
// are dropped from the final list.
//
// The list is truncated to k but never padded: a response carrying fewer
// than k items passes through with a warning, and the mutating-method
// filter shrinks it further. Callers get at MOST k items.
func (o *Orchestrator) Rerank(
	ctx context.Context,
	history []entity.Event,
	catalogDescription string,
	ranking []entity.RankedAction,
	k int,
	excludeMutating bool,
	extraContext string,
) ([]entity.RerankItem, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be a positive integer, got %d", k)
	}

	prompt := NewPromptBuilder(
		RenderHistory(history),
		catalogDescription,
		RenderRanking(ranking),
		extraContext,
		excludeMutating,
		k,
	).Build()

	raw, err := o.provider.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("re-rank generation failed: %w", err)
	}

	items, err := ParseItems(raw)
	if err != nil {
		o.logger.Printf("[ERROR] Re-rank response unrepairable: %v", err)
		return nil, err
	}

	if len(items) < k {
		o.logger.Printf("[WARN] Re-rank returned %d items, %d requested", len(items), k)
	}

	if excludeMutating {
		items = dropMutating(items)
	}
	if len(items) > k {
		items = items[:k]
	}
	return items, nil
}

func dropMutating(items []entity.RerankItem) []entity.RerankItem {
	kept := items[:0:0]
	for _, item := range items {
		method, _, _ := strings.Cut(strings.TrimSpace(item.Action), " ")
		if mutatingMethods[strings.ToUpper(method)] {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}
