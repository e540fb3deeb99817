package rerank

import (
	"encoding/json"
	"testing"

	"next-action-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHistoryEmpty(t *testing.T) {
	assert.Equal(t, "No events recorded.", RenderHistory(nil))
}

func TestRenderHistoryTimeline(t *testing.T) {
	var params entity.ParamBag
	require.NoError(t, json.Unmarshal([]byte(`{"ticketId": 42, "note": ""}`), &params))

	events := []entity.Event{
		{Timestamp: "2025-03-10T10:00:00Z", Action: "GET /tickets"},
		{Timestamp: "2025-03-10T10:06:00Z", Action: "POST /tickets/{ticketId}/transitions", Params: params},
	}

	out := RenderHistory(events)
	assert.Equal(t, "Event Timeline:\n10:00:00 - GET /tickets\n10:06:00 - POST /tickets/{ticketId}/transitions (ticketId=42)", out)
}

func TestRenderHistoryBadTimestampSentinel(t *testing.T) {
	out := RenderHistory([]entity.Event{{Timestamp: "not-a-time", Action: "GET /tickets"}})
	assert.Contains(t, out, "Unknown - GET /tickets")
}

func TestRenderHistoryFallsBackToEndpoint(t *testing.T) {
	out := RenderHistory([]entity.Event{{Timestamp: "2025-03-10T10:00:00Z", Endpoint: "GET /tickets/42"}})
	assert.Contains(t, out, "GET /tickets/42")
}

func TestRenderRanking(t *testing.T) {
	out := RenderRanking([]entity.RankedAction{
		{Action: "GET /tickets", Score: 0.93219},
		{Action: "POST /tickets", Score: 0.1},
	})
	assert.Equal(t, "1. GET /tickets: 0.9322\n2. POST /tickets: 0.1000\n", out)
}
