// Package ranking expands one feature vector into a scoring batch over the
// fixed action catalog and returns the model's top-k.
package ranking

import (
	"fmt"
	"sort"

	"next-action-be/internal/entity"
	"next-action-be/pkg/feature"
)

// Engine scores every known action against a feature vector. The action
// list is the fixed vocabulary the model was trained on, injected at
// construction; it is read-only and safe for concurrent use.
type Engine struct {
	actions []string
	model   Model
}

func NewEngine(actions []string, model Model) *Engine {
	return &Engine{actions: actions, model: model}
}

// Actions returns the engine's action vocabulary in declaration order.
func (e *Engine) Actions() []string {
	out := make([]string, len(e.actions))
	copy(out, e.actions)
	return out
}

// Rank scores all actions in one batch and returns the top k by score
// descending. Ties keep declaration order (stable sort). k must be
// positive; k larger than the catalog returns the full ranked catalog.
func (e *Engine) Rank(v feature.Vector, k int) ([]entity.RankedAction, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be a positive integer, got %d", k)
	}
	if len(e.actions) == 0 {
		return nil, fmt.Errorf("ranking engine has no actions")
	}

	batch := make([]Candidate, len(e.actions))
	for i, action := range e.actions {
		batch[i] = Candidate{Features: v, CandidateAction: action}
	}

	scores, err := e.model.Score(batch)
	if err != nil {
		return nil, fmt.Errorf("score batch: %w", err)
	}
	if len(scores) != len(batch) {
		return nil, fmt.Errorf("model returned %d scores for %d candidates", len(scores), len(batch))
	}

	ranked := make([]entity.RankedAction, len(e.actions))
	for i, action := range e.actions {
		ranked[i] = entity.RankedAction{Action: action, Score: scores[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k], nil
}
