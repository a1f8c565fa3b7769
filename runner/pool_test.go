package runner_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/reugn/go-runner/internal/assert"
	"github.com/reugn/go-runner/logger"
	"github.com/reugn/go-runner/runner"
)

type gauge struct {
	mtx     sync.Mutex
	current int
	max     int
}

func (g *gauge) enter() {
	g.mtx.Lock()
	g.current++
	if g.current > g.max {
		g.max = g.current
	}
	g.mtx.Unlock()
}

func (g *gauge) exit() {
	g.mtx.Lock()
	g.current--
	g.mtx.Unlock()
}

func (g *gauge) maxConcurrent() int {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	return g.max
}

type gaugeTask struct {
	g *gauge
}

var _ runner.Task = (*gaugeTask)(nil)

func (gt *gaugeTask) Execute(_ context.Context) error {
	gt.g.enter()
	time.Sleep(20 * time.Millisecond)
	gt.g.exit()
	return nil
}

func (gt *gaugeTask) Description() string {
	return "gaugeTask"
}

func TestWorkerPool_BoundsConcurrency(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const workerLimit = 3
	pool := runner.NewWorkerPool(runner.WorkerPoolOptions{
		WorkerLimit:   workerLimit,
		QueueCapacity: 32,
		Logger:        logger.NoOpLogger{},
	})
	pool.Start(ctx)

	g := &gauge{}
	futures := make([]*runner.Future, 0, 12)
	for i := 0; i < 12; i++ {
		future, err := pool.Submit(ctx, runner.NewTaskDetail(&gaugeTask{g}, "gauge"))
		assert.IsNil(t, err)
		futures = append(futures, future)
	}
	for _, future := range futures {
		assert.IsNil(t, future.Wait(ctx))
	}

	if g.maxConcurrent() > workerLimit {
		t.Fatalf("concurrency %d exceeded the worker limit %d",
			g.maxConcurrent(), workerLimit)
	}

	pool.Stop()
	pool.Wait(ctx)
}

func TestWorkerPool_SubmitBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := runner.NewWorkerPool(runner.WorkerPoolOptions{
		Logger: logger.NoOpLogger{},
	})
	_, err := pool.Submit(ctx, runner.NewTaskDetail(&gaugeTask{&gauge{}}, "early"))
	assert.ErrorIs(t, err, runner.ErrPoolClosed)
}

func TestWorkerPool_SubmitAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := runner.NewWorkerPool(runner.WorkerPoolOptions{
		WorkerLimit: 1,
		Logger:      logger.NoOpLogger{},
	})
	pool.Start(ctx)
	assert.Equal(t, pool.IsStarted(), true)
	pool.Start(ctx) // repeated start is a no-op

	pool.Stop()
	pool.Stop() // repeated stop is a no-op
	assert.Equal(t, pool.IsStarted(), false)

	_, err := pool.Submit(ctx, runner.NewTaskDetail(&gaugeTask{&gauge{}}, "late"))
	assert.ErrorIs(t, err, runner.ErrPoolClosed)

	pool.Wait(ctx)
}

func TestWorkerPool_IllegalArgument(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := runner.NewWorkerPool(runner.WorkerPoolOptions{
		Logger: logger.NoOpLogger{},
	})
	pool.Start(ctx)
	defer pool.Stop()

	_, err := pool.Submit(ctx, nil)
	assert.ErrorIs(t, err, runner.ErrIllegalArgument)
}

func TestWorkerPool_ContextCancelStopsPool(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	pool := runner.NewWorkerPool(runner.WorkerPoolOptions{
		WorkerLimit: 2,
		Logger:      logger.NoOpLogger{},
	})
	pool.Start(ctx)

	var n atomic.Int32
	future, err := pool.Submit(ctx, runner.NewTaskDetail(newCountTask(&n), "count"))
	assert.IsNil(t, err)
	assert.IsNil(t, future.Wait(context.Background()))
	assert.Equal(t, n.Load(), int32(1))

	cancel()
	pool.Wait(context.Background())
	for i := 0; pool.IsStarted() && i < 100; i++ {
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, pool.IsStarted(), false)
}

func TestWorkerPool_SubmitBlocksWhenQueueFull(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := runner.NewWorkerPool(runner.WorkerPoolOptions{
		WorkerLimit:   1,
		QueueCapacity: 0,
		Logger:        logger.NoOpLogger{},
	})
	pool.Start(ctx)

	// with an unbuffered queue the first submit hands the task straight
	// to the single worker, which then blocks on the release channel
	blocker := newFlagTask()
	first, err := pool.Submit(ctx, runner.NewTaskDetail(blocker, "blocker"))
	assert.IsNil(t, err)

	var n atomic.Int32
	var second *runner.Future
	submitted := make(chan struct{})
	go func() {
		defer close(submitted)
		future, err := pool.Submit(ctx, runner.NewTaskDetail(newCountTask(&n), "queued"))
		if err != nil {
			t.Error(err)
			return
		}
		second = future
	}()

	select {
	case <-submitted:
		t.Fatal("submit did not block on a full queue")
	case <-time.After(50 * time.Millisecond):
	}

	// a submit bounded by a context gives up with the context error
	expiring, expiringCancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer expiringCancel()
	_, err = pool.Submit(expiring, runner.NewTaskDetail(newCountTask(&n), "bounded"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(blocker.release)
	<-submitted
	assert.IsNil(t, first.Wait(ctx))
	assert.IsNil(t, second.Wait(ctx))
	assert.Equal(t, n.Load(), int32(1))

	pool.Stop()
	pool.Wait(ctx)
}

func TestWorkerPool_StopResolvesSubmittedFutures(t *testing.T) {
	for i := 0; i < 50; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		pool := runner.NewWorkerPool(runner.WorkerPoolOptions{
			WorkerLimit:   1,
			QueueCapacity: 2,
			Logger:        logger.NoOpLogger{},
		})
		pool.Start(ctx)

		var n atomic.Int32
		var wg sync.WaitGroup
		futures := make(chan *runner.Future, 8)
		for j := 0; j < 8; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				future, err := pool.Submit(ctx, runner.NewTaskDetail(newCountTask(&n), "raced"))
				if err == nil {
					futures <- future
				}
			}()
		}
		pool.Stop()
		wg.Wait()
		close(futures)

		// every accepted submission resolves: executed, or rejected on
		// shutdown, but never left pending
		waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
		for future := range futures {
			err := future.Wait(waitCtx)
			if errors.Is(err, context.DeadlineExceeded) {
				t.Fatal("submitted future never completed")
			}
			if err != nil && !errors.Is(err, runner.ErrPoolClosed) {
				t.Fatal(err)
			}
		}
		waitCancel()
		pool.Wait(context.Background())
		cancel()
	}
}

type countTask struct {
	n *atomic.Int32
}

func newCountTask(n *atomic.Int32) *countTask {
	return &countTask{n: n}
}

var _ runner.Task = (*countTask)(nil)

func (ct *countTask) Execute(_ context.Context) error {
	ct.n.Add(1)
	return nil
}

func (ct *countTask) Description() string {
	return "countTask"
}
