package tests

import (
	"testing"

	"github.com/ratchetworks/ratchet/pkg/adapters/memory"
	"github.com/ratchetworks/ratchet/pkg/domain"
	"github.com/ratchetworks/ratchet/pkg/ports"
)

func newMemorySubject(initial domain.State) ports.Subject {
	return memory.NewSubject(initial)
}

func TestMemorySubjectContract(t *testing.T) {
	SubjectContract(t, newMemorySubject)
}

func TestExerciseOrderWorkflow(t *testing.T) {
	def := domain.Definition{
		Name:    "order",
		States:  []domain.State{"draft", "submitted", "completed", "rejected"},
		Initial: "draft",
		Transitions: []domain.Transition{
			{Name: "submit", Source: domain.From("draft"), Destination: "submitted"},
			{Name: "complete", Source: domain.From("submitted"), Destination: "completed"},
			{Name: "reject", Source: domain.FromAny(), Destination: "rejected"},
		},
	}
	ExerciseAllTransitions(t, def, newMemorySubject)
}
