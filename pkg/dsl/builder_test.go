package dsl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratchetworks/ratchet/pkg/domain"
	"github.com/ratchetworks/ratchet/pkg/schema"
)

func TestBuildOrderWorkflow(t *testing.T) {
	def, err := New("order").
		States("draft", "submitted", "completed", "rejected").
		Initial("draft").
		Add("submit").From("draft").To("submitted").StampInto("submitted_at").
		Add("complete").From("submitted").To("completed").Label("Complete the order").
		Add("reject").FromAny().To("rejected").
		Builder().
		MapEvent("order-submitted", "submit").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "order", def.Name)
	assert.Equal(t, domain.State("draft"), def.InitialState())
	require.Len(t, def.Transitions, 3)

	// Declaration order is preserved.
	assert.Equal(t, "submit", def.Transitions[0].Name)
	assert.Equal(t, "complete", def.Transitions[1].Name)
	assert.Equal(t, "reject", def.Transitions[2].Name)

	submit := def.Transitions[0]
	assert.True(t, submit.Source.Matches("draft"))
	assert.False(t, submit.Source.Matches("submitted"))
	assert.Equal(t, "submitted_at", submit.DateField)

	assert.Equal(t, "Complete the order", def.Transitions[1].Label)
	assert.True(t, def.Transitions[2].Source.IsAny())

	assert.Equal(t, "submit", def.Events["order-submitted"])
}

func TestBuildValidates(t *testing.T) {
	_, err := New("broken").
		States("draft").
		Initial("draft").
		Add("submit").From("draft").To("nowhere").
		Builder().
		Build()
	require.Error(t, err)

	var aggr *schema.AggregateError
	assert.True(t, errors.As(err, &aggr))
}

func TestAddChaining(t *testing.T) {
	def, err := New("pipeline").
		States("a", "b", "c").
		Initial("a").
		Add("first").From("a").To("b").
		Add("second").From("b").To("c").
		Builder().
		Build()
	require.NoError(t, err)
	require.Len(t, def.Transitions, 2)
	assert.Equal(t, domain.State("c"), def.Transitions[1].Destination)
}
