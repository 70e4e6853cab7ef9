package jobs_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailored-agentic-units/statekit/jobs"
)

// blockUntilCancelled returns a job function that signals started and then
// waits for its context.
func blockUntilCancelled(started chan<- struct{}) func(job *jobs.Job) {
	return func(job *jobs.Job) {
		close(started)
		<-job.Context().Done()
	}
}

func waitDone(t *testing.T, job *jobs.Job) {
	t.Helper()
	select {
	case <-job.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("job %s did not finish", job.Key)
	}
}

func TestRegistry_LaunchCompletes(t *testing.T) {
	reg := jobs.NewRegistry()

	ran := make(chan struct{})
	job, previous, err := reg.Launch(context.Background(), "LoadMovies", func(job *jobs.Job) {
		close(ran)
	})
	require.NoError(t, err)
	assert.Nil(t, previous)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "LoadMovies", job.Key)

	<-ran
	waitDone(t, job)

	assert.Equal(t, jobs.StatusCompleted, job.Status())
	assert.False(t, reg.Running("LoadMovies"))
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_LaunchSupersedesSameKey(t *testing.T) {
	reg := jobs.NewRegistry()

	started := make(chan struct{})
	first, _, err := reg.Launch(context.Background(), "SelectMovie:1", blockUntilCancelled(started))
	require.NoError(t, err)
	<-started

	release := make(chan struct{})
	second, previous, err := reg.Launch(context.Background(), "SelectMovie:1", func(job *jobs.Job) {
		<-release
	})
	require.NoError(t, err)
	assert.Same(t, first, previous)

	waitDone(t, first)
	assert.Equal(t, jobs.StatusCancelled, first.Status())
	assert.ErrorIs(t, first.Context().Err(), context.Canceled)

	live, ok := reg.Get("SelectMovie:1")
	require.True(t, ok)
	assert.Same(t, second, live)
	assert.NotEqual(t, first.ID, second.ID)

	close(release)
	waitDone(t, second)
	assert.Equal(t, jobs.StatusCompleted, second.Status())
	assert.False(t, reg.Running("SelectMovie:1"))
}

func TestRegistry_DistinctKeysRunIndependently(t *testing.T) {
	reg := jobs.NewRegistry()

	startedA := make(chan struct{})
	startedB := make(chan struct{})
	a, _, err := reg.Launch(context.Background(), "SelectMovie:1", blockUntilCancelled(startedA))
	require.NoError(t, err)
	b, _, err := reg.Launch(context.Background(), "SelectMovie:2", blockUntilCancelled(startedB))
	require.NoError(t, err)
	<-startedA
	<-startedB

	assert.Equal(t, 2, reg.Len())
	assert.ElementsMatch(t, []string{"SelectMovie:1", "SelectMovie:2"}, reg.Keys())
	assert.Equal(t, jobs.StatusRunning, a.Status())

	_, cancelled := reg.Cancel("SelectMovie:1")
	assert.True(t, cancelled)
	waitDone(t, a)

	assert.Equal(t, jobs.StatusRunning, b.Status())
	assert.True(t, reg.Running("SelectMovie:2"))

	require.NoError(t, reg.Close(context.Background()))
	assert.Equal(t, jobs.StatusCancelled, b.Status())
}

func TestRegistry_CancelUnknownKey(t *testing.T) {
	reg := jobs.NewRegistry()

	job, cancelled := reg.Cancel("nothing")
	assert.Nil(t, job)
	assert.False(t, cancelled)
}

func TestRegistry_InvalidLaunch(t *testing.T) {
	reg := jobs.NewRegistry()

	_, _, err := reg.Launch(context.Background(), "", func(*jobs.Job) {})
	assert.ErrorIs(t, err, jobs.ErrEmptyKey)

	_, _, err = reg.Launch(context.Background(), "key", nil)
	assert.ErrorIs(t, err, jobs.ErrNilRun)
}

func TestRegistry_CloseCancelsAndRejects(t *testing.T) {
	reg := jobs.NewRegistry()

	started := make(chan struct{})
	job, _, err := reg.Launch(context.Background(), "LoadMovies", blockUntilCancelled(started))
	require.NoError(t, err)
	<-started

	require.NoError(t, reg.Close(context.Background()))
	assert.Equal(t, jobs.StatusCancelled, job.Status())
	assert.Equal(t, 0, reg.Len())

	_, _, err = reg.Launch(context.Background(), "LoadMovies", func(*jobs.Job) {})
	assert.ErrorIs(t, err, jobs.ErrClosed)

	assert.NoError(t, reg.Close(context.Background()))
}

func TestRegistry_CloseTimesOutOnUncooperativeJob(t *testing.T) {
	reg := jobs.NewRegistry()

	release := make(chan struct{})
	defer close(release)

	started := make(chan struct{})
	_, _, err := reg.Launch(context.Background(), "stubborn", func(job *jobs.Job) {
		close(started)
		<-release
	})
	require.NoError(t, err)
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = reg.Close(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRegistry_Wait(t *testing.T) {
	reg := jobs.NewRegistry()

	var mu sync.Mutex
	finished := 0
	for _, key := range []string{"a", "b", "c"} {
		_, _, err := reg.Launch(context.Background(), key, func(job *jobs.Job) {
			time.Sleep(10 * time.Millisecond)
			mu.Lock()
			finished++
			mu.Unlock()
		})
		require.NoError(t, err)
	}

	require.NoError(t, reg.Wait(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, finished)
}

func TestRegistry_WaitHonoursContext(t *testing.T) {
	reg := jobs.NewRegistry()
	defer reg.Close(context.Background())

	started := make(chan struct{})
	_, _, err := reg.Launch(context.Background(), "forever", blockUntilCancelled(started))
	require.NoError(t, err)
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, reg.Wait(ctx), context.DeadlineExceeded)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "idle", jobs.StatusIdle.String())
	assert.Equal(t, "running", jobs.StatusRunning.String())
	assert.Equal(t, "completed", jobs.StatusCompleted.String())
	assert.Equal(t, "cancelled", jobs.StatusCancelled.String())
	assert.True(t, jobs.StatusCancelled.Terminal())
	assert.False(t, jobs.StatusRunning.Terminal())
}
