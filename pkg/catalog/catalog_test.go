package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `# Ticket Management
- GET /tickets - Retrieve all tickets with optional filters
- POST /tickets - Create a new ticket
- GET /tickets/{ticketId} - Retrieve one ticket
- POST /tickets/{ticketId}/transitions - Transition a ticket

# Projects
- GET /projects/{projectId} - Retrieve one project
- DELETE /tickets/{ticketId} - Delete a ticket

not a catalog line
-
- MALFORMED
`

func TestParseKeepsOrderAndSkipsNoise(t *testing.T) {
	c := Parse(sampleDoc)

	actions := c.Actions()
	require.Len(t, actions, 6, "headers, blanks and malformed lines must be dropped")
	assert.Equal(t, "GET /tickets", actions[0].Label())
	assert.Equal(t, "POST /tickets", actions[1].Label())
	assert.Equal(t, "GET /tickets/{ticketId}", actions[2].Label())
	assert.Equal(t, "POST /tickets/{ticketId}/transitions", actions[3].Label())
	assert.Equal(t, "GET /projects/{projectId}", actions[4].Label())
	assert.Equal(t, "DELETE /tickets/{ticketId}", actions[5].Label())
}

func TestParseKeepsDuplicates(t *testing.T) {
	c := Parse("- GET /a - first\n- GET /a - again\n")
	assert.Equal(t, 2, c.Len())
}

func TestMatchPlaceholderInstantiation(t *testing.T) {
	c := Parse(sampleDoc)

	a, ok := c.Match("GET /tickets/482")
	require.True(t, ok)
	assert.Equal(t, "GET /tickets/{ticketId}", a.Label())

	a, ok = c.Match("POST /tickets/42/transitions")
	require.True(t, ok)
	assert.Equal(t, "POST /tickets/{ticketId}/transitions", a.Label())
}

func TestMatchTrimsSlashes(t *testing.T) {
	c := Parse("- GET /tickets/ - trailing slash in template\n")

	_, ok := c.Match("GET tickets")
	assert.True(t, ok)
	_, ok = c.Match("GET /tickets/")
	assert.True(t, ok)
}

func TestMatchSegmentCountMustAgree(t *testing.T) {
	c := Parse(sampleDoc)

	_, ok := c.Match("GET /tickets/482/comments/9")
	assert.False(t, ok, "no template of this method has four segments")
}

func TestMatchIsCaseSensitiveAndMethodScoped(t *testing.T) {
	c := Parse(sampleDoc)

	_, ok := c.Match("GET /Tickets")
	assert.False(t, ok)
	_, ok = c.Match("PUT /tickets")
	assert.False(t, ok)
}

func TestMatchNoSpaceSeparator(t *testing.T) {
	c := Parse(sampleDoc)

	_, ok := c.Match("/tickets/482")
	assert.False(t, ok)
}

func TestMatchFirstEntryWins(t *testing.T) {
	// Both two-segment templates match "GET /tickets/recent"; document
	// order decides.
	c := Parse("- GET /tickets/recent - literal first\n- GET /tickets/{ticketId} - placeholder second\n")
	a, ok := c.Match("GET /tickets/recent")
	require.True(t, ok)
	assert.Equal(t, "GET /tickets/recent", a.Label())

	reversed := Parse("- GET /tickets/{ticketId} - placeholder first\n- GET /tickets/recent - literal second\n")
	a, ok = reversed.Match("GET /tickets/recent")
	require.True(t, ok)
	assert.Equal(t, "GET /tickets/{ticketId}", a.Label(), "first-match resolution is order-dependent")
}

func TestMatchStrictReportsAmbiguity(t *testing.T) {
	c := Parse("- GET /tickets/{ticketId} - one\n- GET /tickets/recent - two\n")

	_, err := c.MatchStrict("GET /tickets/recent")
	assert.Error(t, err)

	a, err := c.MatchStrict("GET /tickets/77")
	require.NoError(t, err)
	assert.Equal(t, "GET /tickets/{ticketId}", a.Label())
}
