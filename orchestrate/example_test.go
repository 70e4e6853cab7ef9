package orchestrate_test

import (
	"context"
	"fmt"

	"github.com/tailored-agentic-units/statekit/async"
	"github.com/tailored-agentic-units/statekit/orchestrate"
)

type listState struct {
	IsLoading bool
	Titles    []string
}

type titleCatalog struct {
	titles []string
}

func (c titleCatalog) List(ctx context.Context) ([]string, error) {
	return c.titles, nil
}

func ExampleExecute() {
	catalog := titleCatalog{titles: []string{"Metropolis", "Stalker"}}

	list := func(ctx context.Context, _ struct{}) ([]string, error) {
		return catalog.List(ctx)
	}

	fold := func(s listState, r async.Result[[]string]) listState {
		s.IsLoading = r.IsLoading()
		s.Titles, _ = r.Value()
		return s
	}

	state := listState{}
	for update := range orchestrate.Execute(context.Background(), struct{}{}, list, fold) {
		state = update(state)
		fmt.Println(state.IsLoading, state.Titles)
	}
	// Output:
	// true []
	// false [Metropolis Stalker]
}
