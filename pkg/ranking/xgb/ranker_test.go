package xgb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"next-action-be/pkg/feature"
	"next-action-be/pkg/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(i int) *int { return &i }

// testSpec: one tree splitting on candidate_action code, one tree
// splitting on seconds_since_midnight.
func testSpec() ModelSpec {
	return ModelSpec{
		BaseScore: 0.5,
		Categories: map[string][]string{
			"candidate_action": {"GET /tickets", "POST /tickets", "DELETE /tickets/{ticketId}"},
			"prev_action_1":    {"", "GET /tickets", "POST /tickets"},
			"prev_action_2":    {""},
			"prev_action_3":    {""},
			"para_1":           {""},
			"para_2":           {""},
			"para_3":           {""},
		},
		Trees: [][]Node{
			{
				// candidate_action code < 1 ? +0.4 : -0.2 (missing goes left)
				{Feature: intp(14), Threshold: 1, Left: 1, Right: 2, Missing: 1},
				{Leaf: 0.4},
				{Leaf: -0.2},
			},
			{
				// morning (< noon) ? +0.1 : -0.1
				{Feature: intp(0), Threshold: 43200, Left: 1, Right: 2, Missing: 2},
				{Leaf: 0.1},
				{Leaf: -0.1},
			},
		},
	}
}

func morningVector() feature.Vector {
	return feature.Vector{SecondsSinceMidnight: 10 * 3600}
}

func TestScoreEnsembleSum(t *testing.T) {
	r, err := New(testSpec(), UnseenAsMissing)
	require.NoError(t, err)

	scores, err := r.Score([]ranking.Candidate{
		{Features: morningVector(), CandidateAction: "GET /tickets"},
		{Features: morningVector(), CandidateAction: "POST /tickets"},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.5+0.4+0.1, scores[0], 1e-9)
	assert.InDelta(t, 0.5-0.2+0.1, scores[1], 1e-9)
}

func TestScoreNumericSplit(t *testing.T) {
	r, err := New(testSpec(), UnseenAsMissing)
	require.NoError(t, err)

	evening := feature.Vector{SecondsSinceMidnight: 20 * 3600}
	scores, err := r.Score([]ranking.Candidate{
		{Features: evening, CandidateAction: "GET /tickets"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.5+0.4-0.1, scores[0], 1e-9)
}

func TestUnseenAsMissingTakesDefaultBranch(t *testing.T) {
	r, err := New(testSpec(), UnseenAsMissing)
	require.NoError(t, err)

	scores, err := r.Score([]ranking.Candidate{
		{Features: morningVector(), CandidateAction: "PATCH /brand-new"},
	})
	require.NoError(t, err)
	// Missing branch of tree 1 is the +0.4 leaf.
	assert.InDelta(t, 0.5+0.4+0.1, scores[0], 1e-9)
}

func TestUnseenErrorRejectsBatch(t *testing.T) {
	r, err := New(testSpec(), UnseenError)
	require.NoError(t, err)

	_, err = r.Score([]ranking.Candidate{
		{Features: morningVector(), CandidateAction: "PATCH /brand-new"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "candidate_action")
}

func TestUnseenPrevActionFollowsPolicy(t *testing.T) {
	r, err := New(testSpec(), UnseenError)
	require.NoError(t, err)

	v := morningVector()
	v.PrevActions[0] = "GET /never-logged"
	_, err = r.Score([]ranking.Candidate{{Features: v, CandidateAction: "GET /tickets"}})
	assert.Error(t, err)
}

func TestActionsReturnsTrainingVocabulary(t *testing.T) {
	r, err := New(testSpec(), UnseenAsMissing)
	require.NoError(t, err)

	assert.Equal(t, []string{"GET /tickets", "POST /tickets", "DELETE /tickets/{ticketId}"}, r.Actions())
}

func TestNewValidatesSpec(t *testing.T) {
	spec := testSpec()
	spec.Categories["candidate_action"] = nil
	_, err := New(spec, UnseenAsMissing)
	assert.Error(t, err)

	spec = testSpec()
	spec.Trees[0][0].Feature = intp(99)
	_, err = New(spec, UnseenAsMissing)
	assert.Error(t, err)

	spec = testSpec()
	spec.Trees[0][0].Left = 42
	_, err = New(spec, UnseenAsMissing)
	assert.Error(t, err)
}

func TestNewRejectsNonTerminatingTrees(t *testing.T) {
	// A self-referencing split would loop forever during eval.
	spec := testSpec()
	spec.Trees[0][0].Missing = 0
	_, err := New(spec, UnseenAsMissing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not advance")

	// A backward edge deeper in the tree is just as non-terminating.
	spec = testSpec()
	spec.Trees[1] = []Node{
		{Feature: intp(0), Threshold: 43200, Left: 1, Right: 2, Missing: 2},
		{Feature: intp(4), Threshold: 15, Left: 0, Right: 2, Missing: 2},
		{Leaf: -0.1},
	}
	_, err = New(spec, UnseenAsMissing)
	assert.Error(t, err)
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranker.json")
	raw, err := json.Marshal(testSpec())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	r, err := Load(path, UnseenAsMissing)
	require.NoError(t, err)
	assert.Len(t, r.Actions(), 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"), UnseenAsMissing)
	assert.Error(t, err)
}
