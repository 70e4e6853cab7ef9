package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailored-agentic-units/statekit/config"
	"github.com/tailored-agentic-units/statekit/examples/movies"
)

func TestRun(t *testing.T) {
	m, err := movies.NewMachine(movies.NewMemoryCatalog(time.Millisecond, movies.DefaultMovies()...),
		config.MachineConfig{Name: "demo"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, run(ctx, m))
	require.NoError(t, m.Close())

	final := m.State()
	assert.Len(t, final.Movies, 3)
	require.NotNil(t, final.SelectedMovie)
	assert.Equal(t, "2", final.SelectedMovie.ID)
	assert.True(t, final.Page.HasLoadedEverything())

	metrics := m.Metrics()
	assert.GreaterOrEqual(t, metrics.JobsCancelled, int64(1))
}

func TestDescribe(t *testing.T) {
	s := movies.InitialState()
	assert.Equal(t, "loading=false movies=0 pages=0/0", describe(s))

	selected := movies.DefaultMovies()[0]
	s.IsLoading = true
	s.SelectedMovie = &selected
	s.Err = errors.New("boom")
	assert.Equal(t, `loading=true movies=0 selected="Metropolis (1927)" pages=0/0 err="boom"`, describe(s))
}
