package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratchetworks/ratchet/pkg/domain"
)

const orderYAML = `
name: order
initial: draft
states: [draft, submitted, completed, rejected]
transitions:
  - name: submit
    source: draft
    destination: submitted
    date_field: submitted_at
    label: Submit order
  - name: complete
    source: [submitted]
    destination: completed
  - name: reject
    source: "*"
    destination: rejected
events:
  order-submitted: submit
`

func TestLoad(t *testing.T) {
	def, err := Load(strings.NewReader(orderYAML))
	require.NoError(t, err)

	assert.Equal(t, "order", def.Name)
	assert.Equal(t, domain.State("draft"), def.InitialState())
	assert.Len(t, def.States, 4)
	require.Len(t, def.Transitions, 3)

	submit := def.Transitions[0]
	assert.Equal(t, "submit", submit.Name)
	assert.True(t, submit.Source.Matches("draft"))
	assert.False(t, submit.Source.Matches("submitted"))
	assert.Equal(t, domain.State("submitted"), submit.Destination)
	assert.Equal(t, "submitted_at", submit.DateField)
	assert.Equal(t, "Submit order", submit.Label)

	complete := def.Transitions[1]
	assert.True(t, complete.Source.Matches("submitted"))

	reject := def.Transitions[2]
	assert.True(t, reject.Source.IsAny())
	assert.True(t, reject.Source.Matches("anything"))

	assert.Equal(t, "submit", def.Events["order-submitted"])
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(`
name: order
states: [draft]
transitons:
  - name: submit
`))
	require.Error(t, err, "misspelled keys must not be silently dropped")
}

func TestParse_RejectsUndeclaredDestination(t *testing.T) {
	_, err := Parse([]byte(`
name: order
states: [draft]
transitions:
  - name: submit
    source: draft
    destination: submitted
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a declared state")
}

func TestParse_RejectsWildcardInSourceList(t *testing.T) {
	_, err := Parse([]byte(`
name: order
states: [draft, rejected]
transitions:
  - name: reject
    source: ["draft", "*"]
    destination: rejected
`))
	require.Error(t, err)
}

func TestParse_MissingSource(t *testing.T) {
	_, err := Parse([]byte(`
name: order
states: [draft, submitted]
transitions:
  - name: submit
    destination: submitted
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source is required")
}

func TestParse_BadYAML(t *testing.T) {
	_, err := Parse([]byte("{not yaml"))
	require.Error(t, err)
}
