package runner

import (
	"context"
	"runtime"
	"sync"

	"github.com/reugn/go-runner/logger"
)

// WorkerPoolOptions represents the configuration of a WorkerPool.
type WorkerPoolOptions struct {
	// WorkerLimit is the number of worker goroutines processing the
	// task queue. Concurrency never exceeds this value.
	// When zero or negative, runtime.NumCPU() is used.
	WorkerLimit int

	// QueueCapacity is the capacity of the task queue. Submit blocks
	// when the queue is full until a worker becomes available.
	// When negative, an unbuffered queue is used.
	QueueCapacity int

	// Logger is used to log the task lifecycle events of the pool.
	// When nil, the package default logger is used.
	Logger logger.Logger
}

// WorkerPool executes submitted tasks on a bounded set of worker
// goroutines fed by a task queue. It replaces unbounded
// one-goroutine-per-task spawning where a cap on resource usage
// is required.
type WorkerPool struct {
	mtx      sync.Mutex
	wg       sync.WaitGroup
	submitWG sync.WaitGroup
	queue    chan *poolTask
	ctx      context.Context
	cancel   context.CancelFunc
	started  bool
	opts     WorkerPoolOptions
}

type poolTask struct {
	detail *TaskDetail
	future *Future
}

// NewWorkerPool returns a new WorkerPool configured as specified.
func NewWorkerPool(opts WorkerPoolOptions) *WorkerPool {
	if opts.WorkerLimit <= 0 {
		opts.WorkerLimit = runtime.NumCPU()
	}
	if opts.QueueCapacity < 0 {
		opts.QueueCapacity = 0
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	return &WorkerPool{
		queue: make(chan *poolTask, opts.QueueCapacity),
		opts:  opts,
	}
}

// Start launches the pool workers. The pool will run until the Stop
// method is called or the context is canceled. Use the Wait method to
// block until all workers have returned.
func (p *WorkerPool) Start(ctx context.Context) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.started {
		p.opts.Logger.Info("Worker pool is already running")
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.ctx = ctx
	go func() { <-ctx.Done(); p.Stop() }()

	p.opts.Logger.Debug("Starting pool workers", "count", p.opts.WorkerLimit)
	for i := 0; i < p.opts.WorkerLimit; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}

	p.started = true
}

// IsStarted determines whether the pool has been started.
func (p *WorkerPool) IsStarted() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.started
}

// Submit enqueues the task for execution by the pool workers and
// returns a Future for its completion. If the task queue is full,
// Submit blocks until a slot is available or the context expires.
// Submitting to a pool that is not running returns ErrPoolClosed.
func (p *WorkerPool) Submit(ctx context.Context, detail *TaskDetail) (*Future, error) {
	if detail == nil || detail.Task() == nil {
		return nil, illegalArgumentError("detail is nil")
	}

	// register the submission under the lock so that Stop can wait for
	// pending submissions before it drains the queue
	p.mtx.Lock()
	if !p.started {
		p.mtx.Unlock()
		return nil, ErrPoolClosed
	}
	poolCtx := p.ctx
	p.submitWG.Add(1)
	p.mtx.Unlock()
	defer p.submitWG.Done()

	pt := &poolTask{
		detail: detail,
		future: newFuture(),
	}
	select {
	case p.queue <- pt:
		p.opts.Logger.Trace("Task enqueued", "id", detail.ID(), "name", detail.Name())
		return pt.future, nil
	case <-poolCtx.Done():
		return nil, ErrPoolClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stop shuts down the pool. Tasks still sitting in the queue are not
// executed; their futures complete with ErrPoolClosed.
func (p *WorkerPool) Stop() {
	p.mtx.Lock()
	if !p.started {
		p.opts.Logger.Info("Worker pool is not running")
		p.mtx.Unlock()
		return
	}
	p.opts.Logger.Info("Closing the worker pool")
	p.cancel()
	p.started = false
	p.mtx.Unlock()

	// wait for pending submissions, then resolve the futures of tasks
	// the workers will never pick up
	p.submitWG.Wait()
	for {
		select {
		case pt := <-p.queue:
			pt.future.complete(ErrPoolClosed)
		default:
			return
		}
	}
}

// Wait blocks until the pool stops running and all workers have
// returned. Wait will return early when the context passed to it
// has expired.
func (p *WorkerPool) Wait(ctx context.Context) {
	sig := make(chan struct{})
	go func() { defer close(sig); p.wg.Wait() }()
	select {
	case <-ctx.Done():
	case <-sig:
	}
}

func (p *WorkerPool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case pt := <-p.queue:
			p.opts.Logger.Debug("Executing task", "id", pt.detail.ID(),
				"name", pt.detail.Name())
			err := executeTask(ctx, pt.detail.Task())
			if err != nil {
				p.opts.Logger.Error("Task failed", "id", pt.detail.ID(),
					"name", pt.detail.Name(), "error", err)
			}
			pt.future.complete(err)
		}
	}
}
