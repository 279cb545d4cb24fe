package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ratchetworks/ratchet/internal/runtime"
	"github.com/ratchetworks/ratchet/pkg/domain"
)

func transitionNames(transitions []domain.Transition) []string {
	names := make([]string, len(transitions))
	for i, t := range transitions {
		names[i] = t.Name
	}
	return names
}

func TestAvailableTransitions_DeclarationOrder(t *testing.T) {
	subject := newFakeSubject("draft", nil)
	eng := runtime.NewEngine(subject, orderDefinition())

	got, err := eng.AvailableTransitions(context.Background(), domain.Query{})
	if err != nil {
		t.Fatalf("AvailableTransitions failed: %v", err)
	}

	names := transitionNames(got)
	if len(names) != 2 || names[0] != "submit" || names[1] != "reject" {
		t.Errorf("from draft = %v, want [submit reject] in declaration order", names)
	}
}

func TestAvailableTransitions_ExplicitState(t *testing.T) {
	subject := newFakeSubject("draft", nil)
	eng := runtime.NewEngine(subject, orderDefinition())

	got, err := eng.AvailableTransitions(context.Background(), domain.Query{From: "submitted"})
	if err != nil {
		t.Fatalf("AvailableTransitions failed: %v", err)
	}
	names := transitionNames(got)
	if len(names) != 2 || names[0] != "complete" || names[1] != "reject" {
		t.Errorf("from submitted = %v, want [complete reject]", names)
	}
}

func TestAvailableTransitions_CheckedFiltersGuardDenials(t *testing.T) {
	subject := newFakeSubject("draft", nil)
	eng := runtime.NewEngine(subject, orderDefinition(),
		runtime.WithCondition("submit", func(ctx context.Context, p domain.Params) (bool, error) {
			return false, nil
		}),
	)

	got, err := eng.AvailableTransitions(context.Background(), domain.Query{Checked: true})
	if err != nil {
		t.Fatalf("AvailableTransitions failed: %v", err)
	}
	names := transitionNames(got)
	if len(names) != 1 || names[0] != "reject" {
		t.Errorf("checked from draft = %v, want [reject]: denied candidates are filtered, not raised", names)
	}
}

func TestAvailableTransition_ByName(t *testing.T) {
	subject := newFakeSubject("draft", nil)
	eng := runtime.NewEngine(subject, orderDefinition(),
		runtime.WithCondition("submit", func(ctx context.Context, p domain.Params) (bool, error) {
			return false, nil
		}),
	)

	found, err := eng.AvailableTransition(context.Background(), "reject", "")
	if err != nil {
		t.Fatalf("AvailableTransition failed: %v", err)
	}
	if found == nil || found.Name != "reject" {
		t.Errorf("reject should be available, got %v", found)
	}

	denied, err := eng.AvailableTransition(context.Background(), "submit", "")
	if err != nil {
		t.Fatalf("AvailableTransition failed: %v", err)
	}
	if denied != nil {
		t.Error("guard-denied transition must resolve to nil")
	}
}

func TestNextStates_Projection(t *testing.T) {
	subject := newFakeSubject("draft", nil)
	def := orderDefinition()
	def.Transitions[0].Label = "Submit order"
	eng := runtime.NewEngine(subject, def)

	got, err := eng.NextStates(context.Background(), domain.Query{})
	if err != nil {
		t.Fatalf("NextStates failed: %v", err)
	}

	want := []domain.NextState{
		{State: "submitted", Transition: "submit", Label: "Submit order"},
		{State: "rejected", Transition: "reject"},
	}
	if len(got) != len(want) {
		t.Fatalf("NextStates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NextStates[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTransitionTo(t *testing.T) {
	subject := newFakeSubject("draft", nil)
	eng := runtime.NewEngine(subject, orderDefinition())

	// completed is two hops away: not reachable directly from draft.
	_, err := eng.TransitionTo(context.Background(), "completed")
	var notFound *domain.TransitionNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want TransitionNotFoundError", err)
	}
	if notFound.Current != "draft" || notFound.Target != "completed" {
		t.Errorf("error carries %s -> %s, want draft -> completed", notFound.Current, notFound.Target)
	}

	fire, err := eng.TransitionTo(context.Background(), "submitted")
	if err != nil {
		t.Fatalf("TransitionTo failed: %v", err)
	}
	if _, err := fire(context.Background(), nil); err != nil {
		t.Fatalf("executing resolved transition failed: %v", err)
	}
	if subject.state != "submitted" {
		t.Errorf("state = %s, want submitted", subject.state)
	}
}

func TestAdvance(t *testing.T) {
	subject := newFakeSubject("draft", nil)
	rejectable := true
	eng := runtime.NewEngine(subject, orderDefinition(),
		runtime.WithCondition("reject", func(ctx context.Context, p domain.Params) (bool, error) {
			return rejectable, nil
		}),
	)

	// Both submit and reject are eligible from draft.
	err := eng.Advance(context.Background())
	var ambiguous *domain.TransitionAmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("err = %v, want TransitionAmbiguousError", err)
	}
	if ambiguous.Count != 2 {
		t.Errorf("Count = %d, want 2", ambiguous.Count)
	}

	// With reject denied, submit is the single choice.
	rejectable = false
	if err := eng.Advance(context.Background()); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if subject.state != "submitted" {
		t.Errorf("state = %s, want submitted", subject.state)
	}
}

func TestAdvance_Unavailable(t *testing.T) {
	subject := newFakeSubject("completed", nil)
	def := domain.Definition{
		Name:   "order",
		States: []domain.State{"draft", "completed"},
		Transitions: []domain.Transition{
			{Name: "complete", Source: domain.From("draft"), Destination: "completed"},
		},
	}
	eng := runtime.NewEngine(subject, def)

	err := eng.Advance(context.Background())
	var unavailable *domain.TransitionUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("err = %v, want TransitionUnavailableError", err)
	}
	if unavailable.Current != "completed" {
		t.Errorf("Current = %s, want completed", unavailable.Current)
	}
}

func TestRunToCompletion_LinearChain(t *testing.T) {
	subject := newFakeSubject("draft", nil)
	def := domain.Definition{
		Name:   "pipeline",
		States: []domain.State{"draft", "submitted", "completed"},
		Transitions: []domain.Transition{
			{Name: "submit", Source: domain.From("draft"), Destination: "submitted"},
			{Name: "complete", Source: domain.From("submitted"), Destination: "completed"},
		},
	}
	eng := runtime.NewEngine(subject, def)

	if err := eng.RunToCompletion(context.Background()); err != nil {
		t.Fatalf("RunToCompletion failed: %v", err)
	}
	if subject.state != "completed" {
		t.Errorf("state = %s, want completed", subject.state)
	}
	if subject.saves != 2 {
		t.Errorf("saves = %d, want one per transition", subject.saves)
	}
}

func TestRunToCompletion_DetectsCycles(t *testing.T) {
	subject := newFakeSubject("ping", nil)
	def := domain.Definition{
		Name:   "pingpong",
		States: []domain.State{"ping", "pong"},
		Transitions: []domain.Transition{
			{Name: "serve", Source: domain.From("ping"), Destination: "pong"},
			{Name: "return", Source: domain.From("pong"), Destination: "ping"},
		},
	}
	eng := runtime.NewEngine(subject, def)

	err := eng.RunToCompletion(context.Background())
	var circular *domain.CircularWorkflowError
	if !errors.As(err, &circular) {
		t.Fatalf("err = %v, want CircularWorkflowError", err)
	}
}
