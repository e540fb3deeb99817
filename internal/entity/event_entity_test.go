package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamBagObjectKeepsMemberOrder(t *testing.T) {
	var bag ParamBag
	require.NoError(t, json.Unmarshal([]byte(`{"zeta": 1, "alpha": "two", "done": true, "gone": null}`), &bag))

	assert.Equal(t, []string{"1", "two", "true", ""}, bag.Values())
	pairs := bag.Pairs()
	require.Len(t, pairs, 4)
	assert.Equal(t, "zeta", pairs[0].Key)
	assert.Equal(t, "alpha", pairs[1].Key)
}

func TestParamBagArray(t *testing.T) {
	var bag ParamBag
	require.NoError(t, json.Unmarshal([]byte(`[42, "draft", false]`), &bag))
	assert.Equal(t, []string{"42", "draft", "false"}, bag.Values())
}

func TestParamBagNestedValuesRenderEmpty(t *testing.T) {
	var bag ParamBag
	require.NoError(t, json.Unmarshal([]byte(`{"filter": {"status": "open"}, "id": 3}`), &bag))
	assert.Equal(t, []string{"", "3"}, bag.Values())
}

func TestParamBagScalarDegradesToEmpty(t *testing.T) {
	var bag ParamBag
	require.NoError(t, json.Unmarshal([]byte(`"oops"`), &bag))
	assert.True(t, bag.IsEmpty())
}

func TestParamBagNumberPrecision(t *testing.T) {
	var bag ParamBag
	require.NoError(t, json.Unmarshal([]byte(`[482]`), &bag))
	assert.Equal(t, []string{"482"}, bag.Values(), "integers must not pick up a float suffix")
}

func TestParamBagMarshalRoundTrip(t *testing.T) {
	var bag ParamBag
	require.NoError(t, json.Unmarshal([]byte(`{"a": "1", "b": "2"}`), &bag))

	out, err := json.Marshal(bag)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": "1", "b": "2"}`, string(out))
}

func TestActionLabelFallback(t *testing.T) {
	ev := Event{Endpoint: "GET /tickets/42"}
	assert.Equal(t, "GET /tickets/42", ev.ActionLabel())
	ev.Action = "GET /tickets/{ticketId}"
	assert.Equal(t, "GET /tickets/{ticketId}", ev.ActionLabel())
}
