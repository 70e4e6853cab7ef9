package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/tailored-agentic-units/statekit/examples/movies"
	"github.com/tailored-agentic-units/statekit/machine"
)

// run walks the machine through every action kind, including a superseded
// load and a cancelled selection.
func run(ctx context.Context, m *machine.Machine[movies.State, movies.Action]) error {
	steps := []func() error{
		func() error { return m.Reduce(movies.LoadMovies{}) },
		func() error { return m.Reduce(movies.LoadMovies{}) },
		func() error { return m.Wait(ctx) },
		func() error { return m.Reduce(movies.SelectMovie{ID: "1"}) },
		func() error { return m.Cancel(movies.SelectMovie{ID: "1"}, movies.RollbackSelection) },
		func() error { return m.Reduce(movies.SelectMovie{ID: "2"}) },
		func() error { return m.Wait(ctx) },
		func() error { return m.Reduce(movies.LoadAll{Limit: 2}) },
		func() error { return m.Wait(ctx) },
	}

	for i, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func describe(s movies.State) string {
	var b strings.Builder

	fmt.Fprintf(&b, "loading=%t movies=%d", s.IsLoading, len(s.Movies))
	if s.SelectedMovie != nil {
		fmt.Fprintf(&b, " selected=%q", s.SelectedMovie.String())
	}
	fmt.Fprintf(&b, " pages=%d/%d", s.Page.Count(), s.Page.Available)
	if s.Page.IsLoading {
		b.WriteString(" (paging)")
	}
	if s.Page.HasLoadedEverything() {
		b.WriteString(" complete")
	}
	if s.Err != nil {
		fmt.Fprintf(&b, " err=%q", s.Err)
	}
	return b.String()
}
