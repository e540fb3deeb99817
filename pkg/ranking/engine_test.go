package ranking

import (
	"testing"

	"next-action-be/pkg/feature"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedModel returns predefined scores and records how it was called.
type scriptedModel struct {
	scores []float64
	calls  int
	seen   []Candidate
}

func (m *scriptedModel) Score(batch []Candidate) ([]float64, error) {
	m.calls++
	m.seen = batch
	return m.scores, nil
}

var testActions = []string{"GET /a", "POST /b", "GET /c", "DELETE /d"}

func TestRankSortsDescending(t *testing.T) {
	m := &scriptedModel{scores: []float64{0.1, 0.9, 0.5, 0.3}}
	e := NewEngine(testActions, m)

	ranked, err := e.Rank(feature.Vector{}, 4)
	require.NoError(t, err)

	assert.Equal(t, "POST /b", ranked[0].Action)
	assert.Equal(t, "GET /c", ranked[1].Action)
	assert.Equal(t, "DELETE /d", ranked[2].Action)
	assert.Equal(t, "GET /a", ranked[3].Action)
}

func TestRankStableTieBreakByCatalogOrder(t *testing.T) {
	m := &scriptedModel{scores: []float64{0.5, 0.5, 0.9, 0.5}}
	e := NewEngine(testActions, m)

	ranked, err := e.Rank(feature.Vector{}, 4)
	require.NoError(t, err)

	assert.Equal(t, "GET /c", ranked[0].Action)
	assert.Equal(t, "GET /a", ranked[1].Action)
	assert.Equal(t, "POST /b", ranked[2].Action)
	assert.Equal(t, "DELETE /d", ranked[3].Action)
}

func TestRankSingleBatchCoversEveryAction(t *testing.T) {
	m := &scriptedModel{scores: []float64{1, 2, 3, 4}}
	e := NewEngine(testActions, m)

	_, err := e.Rank(feature.Vector{}, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, m.calls, "scoring must be one batched call")
	require.Len(t, m.seen, len(testActions))
	for i, c := range m.seen {
		assert.Equal(t, testActions[i], c.CandidateAction)
	}
}

func TestRankKBounds(t *testing.T) {
	m := &scriptedModel{scores: []float64{1, 2, 3, 4}}
	e := NewEngine(testActions, m)

	ranked, err := e.Rank(feature.Vector{}, 2)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)

	ranked, err = e.Rank(feature.Vector{}, 100)
	require.NoError(t, err)
	assert.Len(t, ranked, len(testActions), "k beyond catalog size returns the full ranked catalog")

	_, err = e.Rank(feature.Vector{}, 0)
	assert.Error(t, err)
	_, err = e.Rank(feature.Vector{}, -3)
	assert.Error(t, err)
}

func TestRankScoreCountMismatch(t *testing.T) {
	m := &scriptedModel{scores: []float64{1}}
	e := NewEngine(testActions, m)

	_, err := e.Rank(feature.Vector{}, 2)
	assert.Error(t, err)
}
