package rerank

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemsStrictJSON(t *testing.T) {
	items, err := ParseItems(`[{"action": "GET /tickets", "reasoning": "next step"}]`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "GET /tickets", items[0].Action)
	assert.Equal(t, "next step", items[0].Reasoning)
}

func TestParseItemsCodeFenceAndProse(t *testing.T) {
	raw := "Here is the ranking you asked for:\n```json\n[{\"action\": \"GET /a\", \"reasoning\": \"r\"}]\n```\nLet me know if you need more."
	items, err := ParseItems(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "GET /a", items[0].Action)
}

func TestParseItemsTrailingCommas(t *testing.T) {
	items, err := ParseItems(`[{"action": "GET /a", "reasoning": "r",}, {"action": "GET /b", "reasoning": "s"},]`)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "GET /b", items[1].Action)
}

func TestParseItemsSingleQuotes(t *testing.T) {
	items, err := ParseItems(`[{'action': 'GET /a', 'reasoning': 'the user\'s next step'}]`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "the user's next step", items[0].Reasoning)
}

func TestParseItemsUnquotedKeys(t *testing.T) {
	items, err := ParseItems(`[{action: "GET /a", reasoning: "r"}]`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "GET /a", items[0].Action)
}

func TestParseItemsPythonLiterals(t *testing.T) {
	repaired, err := RepairJSON(`{"action": "GET /a", "reasoning": None, "extra": True}`)
	require.NoError(t, err)
	assert.Contains(t, repaired, `"reasoning": null`)
	assert.Contains(t, repaired, `"extra": true`)
}

func TestParseItemsSingleObjectTolerated(t *testing.T) {
	items, err := ParseItems(`{"action": "GET /a", "reasoning": "only one"}`)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestParseItemsUnrepairable(t *testing.T) {
	_, err := ParseItems("I am sorry, I cannot answer that.")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "I am sorry, I cannot answer that.", parseErr.Raw, "raw text must survive for diagnostics")
}

func TestRepairJSONNumbersPassThrough(t *testing.T) {
	repaired, err := RepairJSON(`[{"action": "GET /a", "score": 0.93, "rank": 1}]`)
	require.NoError(t, err)
	assert.Contains(t, repaired, `"score": 0.93`)
	assert.Contains(t, repaired, `"rank": 1`)
}
