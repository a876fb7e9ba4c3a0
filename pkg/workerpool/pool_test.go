package workerpool_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shashiranjanraj/souq/pkg/workerpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRunsEveryTask(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	const n = 100
	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		require.NoError(t, pool.Submit(context.Background(), func() {
			defer wg.Done()
			count.Add(1)
		}))
	}
	wg.Wait()

	assert.EqualValues(t, n, count.Load())
}

func TestTrySubmitReportsFull(t *testing.T) {
	pool := workerpool.New(1)
	release := make(chan struct{})
	started := make(chan struct{})
	defer func() {
		close(release)
		pool.Shutdown()
	}()

	require.NoError(t, pool.TrySubmit(func() {
		close(started)
		<-release
	}))
	<-started

	// queue holds 2 for a single worker
	require.NoError(t, pool.TrySubmit(func() {}))
	require.NoError(t, pool.TrySubmit(func() {}))
	assert.ErrorIs(t, pool.TrySubmit(func() {}), workerpool.ErrFull)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Submit(ctx, func() {}), context.DeadlineExceeded)
}

func TestShutdownDrainsAndRejects(t *testing.T) {
	pool := workerpool.New(2)

	var count atomic.Int64
	for i := 0; i < 4; i++ {
		require.NoError(t, pool.Submit(context.Background(), func() {
			time.Sleep(5 * time.Millisecond)
			count.Add(1)
		}))
	}
	pool.Shutdown()
	pool.Shutdown()

	assert.EqualValues(t, 4, count.Load())
	assert.ErrorIs(t, pool.TrySubmit(func() {}), workerpool.ErrClosed)
	assert.ErrorIs(t, pool.Submit(context.Background(), func() {}), workerpool.ErrClosed)
}

func TestPanickingTaskKeepsWorker(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	require.NoError(t, pool.Submit(context.Background(), func() { panic("boom") }))
	done := make(chan struct{})
	require.NoError(t, pool.Submit(context.Background(), func() { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker died after panic")
	}
}
