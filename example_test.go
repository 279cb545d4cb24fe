package ratchet_test

import (
	"context"
	"fmt"

	"github.com/ratchetworks/ratchet"
	"github.com/ratchetworks/ratchet/pkg/adapters/memory"
	"github.com/ratchetworks/ratchet/pkg/domain"
)

func ExampleNew() {
	def := domain.Definition{
		Name:    "ticket",
		States:  []domain.State{"open", "resolved", "closed"},
		Initial: "open",
		Transitions: []domain.Transition{
			{Name: "resolve", Source: domain.From("open"), Destination: "resolved"},
			{Name: "close", Source: domain.From("resolved"), Destination: "closed"},
		},
	}

	subject := memory.NewSubject(def.InitialState())
	wf, err := ratchet.New(subject, def,
		ratchet.Before("resolve", func(ctx context.Context, params domain.Params) error {
			fmt.Println("resolving ticket", params["id"])
			return nil
		}),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	if _, err := wf.Run(ctx, "resolve", domain.Params{"id": 42}); err != nil {
		panic(err)
	}
	fmt.Println("state:", wf.State())

	if err := wf.RunToCompletion(ctx); err != nil {
		panic(err)
	}
	fmt.Println("state:", wf.State())

	// Output:
	// resolving ticket 42
	// state: resolved
	// state: closed
}
