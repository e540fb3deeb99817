package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSnapshot(t *testing.T) {
	csvDoc := `user_id,session_id,ts,endpoint,params
u1,S1,2025-03-10T10:00:00Z,GET /tickets,
u1,S1,2025-03-10T10:05:00Z,POST /tickets,"{""title"": ""broken build""}"
u2,S9,2025-03-10T11:00:00Z,GET /tickets/7,"[7]"
`
	events, err := Read(strings.NewReader(csvDoc))
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "u1", events[0].UserId)
	assert.Equal(t, "GET /tickets", events[0].Endpoint)
	assert.True(t, events[0].Params.IsEmpty())

	assert.Equal(t, []string{"broken build"}, events[1].Params.Values())
	assert.Equal(t, []string{"7"}, events[2].Params.Values())
}

func TestReadMalformedParamsDegrade(t *testing.T) {
	csvDoc := `user_id,session_id,ts,endpoint,params
u1,S1,2025-03-10T10:00:00Z,GET /tickets,not-json
`
	events, err := Read(strings.NewReader(csvDoc))
	require.NoError(t, err)
	assert.True(t, events[0].Params.IsEmpty())
}

func TestReadMissingColumn(t *testing.T) {
	_, err := Read(strings.NewReader("user_id,ts\nu1,2025-03-10T10:00:00Z\n"))
	assert.Error(t, err)
}

func TestReadRowsMayOmitParams(t *testing.T) {
	csvDoc := "user_id,session_id,ts,endpoint,params\nu1,S1,2025-03-10T10:00:00Z,GET /tickets\n"
	events, err := Read(strings.NewReader(csvDoc))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].Params.IsEmpty())
}
