// Package xgb evaluates a pretrained gradient-boosted tree ranker exported
// as a JSON dump (trees plus the training-time categorical vocabularies).
// The model file is produced offline by the training job; this package
// only loads and scores it.
package xgb

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"next-action-be/pkg/feature"
	"next-action-be/pkg/ranking"
)

// UnseenPolicy classifies what happens when a categorical value was never
// seen during training.
type UnseenPolicy int

const (
	// UnseenAsMissing encodes unknown categories as a missing value; tree
	// traversal takes each node's default branch. This mirrors how the
	// booster handled missing cells during training.
	UnseenAsMissing UnseenPolicy = iota
	// UnseenError rejects the whole batch with a clear error instead.
	UnseenError
)

// Feature frame column layout. The exporter writes vocabularies keyed by
// these names; tree split indices refer to positions in this slice.
var columns = []string{
	"seconds_since_midnight",
	"session_continuity_1",
	"session_continuity_2",
	"session_continuity_3",
	"day",
	"month",
	"week",
	"year",
	"prev_action_1",
	"prev_action_2",
	"prev_action_3",
	"para_1",
	"para_2",
	"para_3",
	"candidate_action",
}

const candidateActionColumn = "candidate_action"

var categoricalColumns = map[string]bool{
	"prev_action_1":    true,
	"prev_action_2":    true,
	"prev_action_3":    true,
	"para_1":           true,
	"para_2":           true,
	"para_3":           true,
	"candidate_action": true,
}

// Node is one tree node. A node with no split feature is a leaf.
type Node struct {
	Feature   *int    `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
	Missing   int     `json:"missing,omitempty"`
	Leaf      float64 `json:"leaf,omitempty"`
}

// ModelSpec is the on-disk model format.
type ModelSpec struct {
	BaseScore  float64             `json:"base_score"`
	Categories map[string][]string `json:"categories"`
	Trees      [][]Node            `json:"trees"`
}

// Ranker is a loaded model. Read-only after construction, safe for
// concurrent scoring.
type Ranker struct {
	spec   ModelSpec
	codes  map[string]map[string]float64 // column -> category -> ordinal code
	policy UnseenPolicy
}

// Load reads and validates a model dump from disk.
func Load(path string, policy UnseenPolicy) (*Ranker, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	var spec ModelSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("parse model file %s: %w", path, err)
	}
	return New(spec, policy)
}

// New builds a Ranker from an in-memory spec (tests inject fixtures here).
func New(spec ModelSpec, policy UnseenPolicy) (*Ranker, error) {
	if len(spec.Categories[candidateActionColumn]) == 0 {
		return nil, fmt.Errorf("model has no %s vocabulary", candidateActionColumn)
	}
	for ti, tree := range spec.Trees {
		for ni, n := range tree {
			if n.Feature == nil {
				continue
			}
			if *n.Feature < 0 || *n.Feature >= len(columns) {
				return nil, fmt.Errorf("tree %d node %d: feature index %d out of range", ti, ni, *n.Feature)
			}
			for _, child := range []int{n.Left, n.Right, n.Missing} {
				if child < 0 || child >= len(tree) {
					return nil, fmt.Errorf("tree %d node %d: child index %d out of range", ti, ni, child)
				}
				// Children must appear after their parent; this rules out
				// cycles, so every traversal reaches a leaf.
				if child <= ni {
					return nil, fmt.Errorf("tree %d node %d: child index %d does not advance past its parent", ti, ni, child)
				}
			}
		}
	}

	codes := make(map[string]map[string]float64, len(spec.Categories))
	for col, vocab := range spec.Categories {
		m := make(map[string]float64, len(vocab))
		for i, cat := range vocab {
			m[cat] = float64(i)
		}
		codes[col] = m
	}
	return &Ranker{spec: spec, codes: codes, policy: policy}, nil
}

// Actions returns the candidate-action vocabulary in training order. This
// is the fixed catalog the ranking engine enumerates.
func (r *Ranker) Actions() []string {
	vocab := r.spec.Categories[candidateActionColumn]
	out := make([]string, len(vocab))
	copy(out, vocab)
	return out
}

var _ ranking.Model = (*Ranker)(nil)

// Score evaluates the ensemble over the whole batch.
func (r *Ranker) Score(batch []ranking.Candidate) ([]float64, error) {
	scores := make([]float64, len(batch))
	for i, c := range batch {
		row, err := r.encode(c)
		if err != nil {
			return nil, err
		}
		scores[i] = r.eval(row)
	}
	return scores, nil
}

func (r *Ranker) encode(c ranking.Candidate) ([]float64, error) {
	v := c.Features
	row := make([]float64, len(columns))
	row[0] = float64(v.SecondsSinceMidnight)
	for i := 0; i < feature.PrevActionDepth; i++ {
		row[1+i] = boolToFloat(v.SessionContinuity[i])
	}
	row[4] = float64(v.Day)
	row[5] = float64(v.Month)
	row[6] = float64(v.Week)
	row[7] = float64(v.Year)

	cats := map[string]string{
		"prev_action_1":    v.PrevActions[0],
		"prev_action_2":    v.PrevActions[1],
		"prev_action_3":    v.PrevActions[2],
		"para_1":           v.Params[0],
		"para_2":           v.Params[1],
		"para_3":           v.Params[2],
		"candidate_action": c.CandidateAction,
	}
	for idx, col := range columns {
		if !categoricalColumns[col] {
			continue
		}
		code, ok := r.codes[col][cats[col]]
		if !ok {
			if r.policy == UnseenError {
				return nil, fmt.Errorf("column %s: value %q not in training vocabulary", col, cats[col])
			}
			code = math.NaN() // missing: default-branch traversal
		}
		row[idx] = code
	}
	return row, nil
}

func (r *Ranker) eval(row []float64) float64 {
	score := r.spec.BaseScore
	for _, tree := range r.spec.Trees {
		if len(tree) == 0 {
			continue
		}
		idx := 0
		for tree[idx].Feature != nil {
			n := tree[idx]
			x := row[*n.Feature]
			switch {
			case math.IsNaN(x):
				idx = n.Missing
			case x < n.Threshold:
				idx = n.Left
			default:
				idx = n.Right
			}
		}
		score += tree[idx].Leaf
	}
	return score
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
