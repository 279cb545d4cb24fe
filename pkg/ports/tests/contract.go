package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratchetworks/ratchet"
	"github.com/ratchetworks/ratchet/pkg/domain"
	"github.com/ratchetworks/ratchet/pkg/ports"
)

// SubjectContract is a reusable test suite that verifies an adapter complies
// with ports.Subject. newSubject must return a fresh subject in the given
// state.
func SubjectContract(t *testing.T, newSubject func(initial domain.State) ports.Subject) {
	t.Helper()
	ctx := context.Background()

	t.Run("State", func(t *testing.T) {
		subject := newSubject("draft")
		assert.Equal(t, domain.State("draft"), subject.State())
	})

	t.Run("SetState", func(t *testing.T) {
		subject := newSubject("draft")
		subject.SetState("submitted")
		assert.Equal(t, domain.State("submitted"), subject.State(),
			"SetState must be reflected by State")
	})

	t.Run("Save", func(t *testing.T) {
		subject := newSubject("draft")
		subject.SetState("submitted")
		require.NoError(t, subject.Save(ctx))
		assert.Equal(t, domain.State("submitted"), subject.State(),
			"Save must not alter the in-memory state")
	})

	t.Run("StampDate", func(t *testing.T) {
		subject := newSubject("draft")
		stamper, ok := subject.(ports.DateStamper)
		if !ok {
			t.Skip("subject does not stamp dates")
		}
		stamper.StampDate("submitted_at", time.Now())
	})
}

// ExerciseAllTransitions drives a fresh subject through every transition the
// definition declares and asserts each one lands on its destination. Wildcard
// and multi-source transitions are exercised once per source state. Transition
// guards are not registered here; use it to prove a definition is fully
// walkable.
func ExerciseAllTransitions(t *testing.T, def domain.Definition, newSubject func(initial domain.State) ports.Subject, opts ...ratchet.Option) {
	t.Helper()
	ctx := context.Background()

	factory, err := ratchet.NewFactory(def, opts...)
	require.NoError(t, err)

	for _, transition := range def.Transitions {
		sources := transition.Source.States()
		if transition.Source.IsAny() {
			sources = def.States
		}

		for _, source := range sources {
			t.Run(transition.Name+"/"+string(source), func(t *testing.T) {
				subject := newSubject(source)
				_, err := factory.Bind(subject).Run(ctx, transition.Name, nil)
				require.NoError(t, err)
				assert.Equal(t, transition.Destination, subject.State())
			})
		}
	}
}
