package crossview

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessLifecycle(t *testing.T) {
	pm := NewProcessManager()

	started := make(chan struct{})
	stopped := make(chan struct{})
	pm.StartProcess("worker", "test worker", func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(stopped)
	})

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("process never started")
	}
	assert.Equal(t, 1, pm.ProcessCount())

	pm.StopProcess("worker")
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("process never observed cancellation")
	}
	assert.Zero(t, pm.ProcessCount())

	// Stopping an unknown name is a no-op.
	pm.StopProcess("ghost")
}

func TestShutdownCancelsEverything(t *testing.T) {
	pm := NewProcessManager()

	for _, name := range []string{"a", "b", "c"} {
		pm.StartProcess(name, "test worker", func(ctx context.Context) {
			<-ctx.Done()
		})
	}
	require.Equal(t, 3, pm.ProcessCount())

	assert.NoError(t, pm.Shutdown(time.Second))
}

func TestShutdownTimesOutOnStuckProcess(t *testing.T) {
	pm := NewProcessManager()

	blocker := make(chan struct{})
	defer close(blocker)
	pm.StartProcess("stuck", "ignores cancellation", func(ctx context.Context) {
		<-blocker
	})

	assert.ErrorIs(t, pm.Shutdown(20*time.Millisecond), context.DeadlineExceeded)
}

func TestPanicInProcessIsRecovered(t *testing.T) {
	pm := NewProcessManager()

	pm.StartProcess("panicky", "test worker", func(ctx context.Context) {
		panic("boom")
	})

	// Shutdown still completes; the panic did not take down the manager.
	assert.NoError(t, pm.Shutdown(time.Second))
}
