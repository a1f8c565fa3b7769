package runner

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reugn/go-runner/logger"
)

// SchedulerOptions represents the configuration of a Scheduler.
type SchedulerOptions struct {
	// When the scheduler attempts to dispatch a task, if the task is
	// overdue by more than this value, the run is skipped and the task
	// is rescheduled using its trigger.
	// Default: 100ms.
	OutdatedThreshold time.Duration

	// Logger is used to log the lifecycle events of the scheduler.
	// When nil, the package default logger is used.
	Logger logger.Logger
}

// Scheduler submits tasks for execution at the times dictated by their
// triggers. Execution is delegated to a WorkerPool when one is
// configured; otherwise each due task runs on a new goroutine.
type Scheduler struct {
	mtx       sync.Mutex
	wg        sync.WaitGroup
	queue     *taskQueue
	interrupt chan struct{}
	cancel    context.CancelFunc
	feeder    chan *scheduledTask
	pool      *WorkerPool
	started   bool
	opts      SchedulerOptions
}

// NewScheduler returns a new Scheduler with the default configuration,
// executing each due task on a new goroutine.
func NewScheduler() *Scheduler {
	return NewSchedulerWithOptions(SchedulerOptions{}, nil)
}

// NewSchedulerWithOptions returns a new Scheduler configured as
// specified. A WorkerPool can be provided to bound the concurrency of
// task execution; pass in nil to run each due task on a new goroutine.
func NewSchedulerWithOptions(opts SchedulerOptions, pool *WorkerPool) *Scheduler {
	if opts.OutdatedThreshold <= 0 {
		opts.OutdatedThreshold = 100 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	return &Scheduler{
		queue:     &taskQueue{},
		interrupt: make(chan struct{}, 1),
		feeder:    make(chan *scheduledTask),
		pool:      pool,
		opts:      opts,
	}
}

// ScheduleTask schedules a task using the specified trigger.
func (s *Scheduler) ScheduleTask(ctx context.Context, detail *TaskDetail,
	trigger Trigger) error {
	if detail == nil || detail.Task() == nil {
		return illegalArgumentError("detail is nil")
	}
	if trigger == nil {
		return illegalArgumentError("trigger is nil")
	}

	nextRunTime, err := trigger.NextFireTime(NowNano())
	if err != nil {
		return err
	}

	select {
	case s.feeder <- &scheduledTask{
		detail:   detail,
		trigger:  trigger,
		priority: nextRunTime,
	}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start starts the scheduler execution loop. The scheduler will run
// until the Stop method is called or the context is canceled. Use the
// Wait method to block until all running tasks have completed.
func (s *Scheduler) Start(ctx context.Context) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.started {
		s.opts.Logger.Info("Scheduler is already running")
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	go func() { <-ctx.Done(); s.Stop() }()

	s.wg.Add(2)
	go s.startFeedReader(ctx)
	go s.startExecutionLoop(ctx)

	s.started = true
}

// IsStarted determines whether the scheduler has been started.
func (s *Scheduler) IsStarted() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.started
}

// ScheduledTaskIDs returns the ids of all of the scheduled tasks.
func (s *Scheduler) ScheduledTaskIDs() []uuid.UUID {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ids := make([]uuid.UUID, 0, s.queue.Len())
	for _, scheduled := range *s.queue {
		ids = append(ids, scheduled.TaskDetail().ID())
	}
	return ids
}

// GetScheduledTask returns the scheduled task with the specified id.
func (s *Scheduler) GetScheduledTask(id uuid.UUID) (ScheduledTask, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, scheduled := range *s.queue {
		if scheduled.TaskDetail().ID() == id {
			return scheduled, nil
		}
	}
	return nil, taskNotFoundError(id.String())
}

// DeleteTask removes the task with the specified id from the
// scheduler's execution queue.
func (s *Scheduler) DeleteTask(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for i, scheduled := range *s.queue {
		if scheduled.TaskDetail().ID() == id {
			_ = s.queue.remove(i)
			s.reset(ctx)
			return nil
		}
	}
	return taskNotFoundError(id.String())
}

// Clear removes all of the scheduled tasks.
func (s *Scheduler) Clear() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	*s.queue = (*s.queue)[:0]
}

// Wait blocks until the scheduler stops running and all dispatched
// tasks have returned. Wait will return early when the context passed
// to it has expired.
func (s *Scheduler) Wait(ctx context.Context) {
	sig := make(chan struct{})
	go func() { defer close(sig); s.wg.Wait() }()
	select {
	case <-ctx.Done():
	case <-sig:
	}
}

// Stop exits the scheduler execution loop.
func (s *Scheduler) Stop() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.started {
		s.opts.Logger.Info("Scheduler is not running")
		return
	}

	s.opts.Logger.Info("Closing the scheduler")
	s.cancel()
	s.started = false
}

func (s *Scheduler) startExecutionLoop(ctx context.Context) {
	defer s.wg.Done()
	for {
		if s.queueLen() == 0 {
			select {
			case <-s.interrupt:
			case <-ctx.Done():
				s.opts.Logger.Debug("Exit the empty execution loop")
				return
			}
		} else {
			t := time.NewTimer(s.calculateNextTick())
			select {
			case <-t.C:
				s.executeAndReschedule(ctx)
			case <-s.interrupt:
				t.Stop()
			case <-ctx.Done():
				s.opts.Logger.Debug("Exit the execution loop")
				t.Stop()
				return
			}
		}
	}
}

func (s *Scheduler) queueLen() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.queue.Len()
}

func (s *Scheduler) calculateNextTick() time.Duration {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.queue.Len() > 0 {
		return time.Duration(parkTime(s.queue.head().NextRunTime()))
	}
	return s.opts.OutdatedThreshold
}

func (s *Scheduler) executeAndReschedule(ctx context.Context) {
	s.mtx.Lock()
	if s.queue.Len() == 0 {
		s.mtx.Unlock()
		return
	}
	scheduled := heap.Pop(s.queue).(*scheduledTask)
	s.mtx.Unlock()

	// check if the task is due to be processed
	if scheduled.NextRunTime() > NowNano() {
		s.opts.Logger.Trace("Task is not due to run yet",
			"id", scheduled.TaskDetail().ID())
		s.rescheduleTask(ctx, scheduled, scheduled.NextRunTime())
		return
	}

	if s.taskIsUpToDate(scheduled) {
		s.opts.Logger.Debug("Task is about to be executed",
			"id", scheduled.TaskDetail().ID())
		s.dispatch(ctx, scheduled.TaskDetail())
	} else {
		s.opts.Logger.Debug("Task skipped as outdated",
			"id", scheduled.TaskDetail().ID(),
			"nextRunTime", scheduled.NextRunTime())
	}

	// reschedule the task using its trigger
	nextRunTime, err := scheduled.Trigger().NextFireTime(scheduled.NextRunTime())
	if err != nil {
		s.opts.Logger.Debug("Task got out the execution loop",
			"id", scheduled.TaskDetail().ID(), "error", err)
		return
	}
	s.rescheduleTask(ctx, scheduled, nextRunTime)
}

func (s *Scheduler) dispatch(ctx context.Context, detail *TaskDetail) {
	if s.pool != nil && s.pool.IsStarted() {
		if _, err := s.pool.Submit(ctx, detail); err != nil {
			s.opts.Logger.Error("Failed to submit task to the pool",
				"id", detail.ID(), "error", err)
		}
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := executeTask(ctx, detail.Task()); err != nil {
			s.opts.Logger.Error("Task failed", "id", detail.ID(),
				"name", detail.Name(), "error", err)
		}
	}()
}

func (s *Scheduler) rescheduleTask(ctx context.Context, scheduled *scheduledTask,
	nextRunTime int64) {
	select {
	case <-ctx.Done():
	case s.feeder <- &scheduledTask{
		detail:   scheduled.detail,
		trigger:  scheduled.trigger,
		priority: nextRunTime,
	}:
	}
}

func (s *Scheduler) taskIsUpToDate(scheduled *scheduledTask) bool {
	return scheduled.NextRunTime() >
		NowNano()-s.opts.OutdatedThreshold.Nanoseconds()
}

func (s *Scheduler) startFeedReader(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case scheduled := <-s.feeder:
			s.mtx.Lock()
			heap.Push(s.queue, scheduled)
			s.reset(ctx)
			s.mtx.Unlock()
		case <-ctx.Done():
			s.opts.Logger.Debug("Exit the feed reader")
			return
		}
	}
}

func (s *Scheduler) reset(ctx context.Context) {
	select {
	case s.interrupt <- struct{}{}:
	case <-ctx.Done():
	default:
	}
}
