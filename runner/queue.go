package runner

import "container/heap"

// ScheduledTask represents a task with the Trigger associated with it
// and the next run epoch time.
type ScheduledTask interface {
	TaskDetail() *TaskDetail
	Trigger() Trigger
	NextRunTime() int64
}

// scheduledTask is the heap-managed queue item.
type scheduledTask struct {
	detail   *TaskDetail
	trigger  Trigger
	priority int64 // backed by the next run time
	index    int   // maintained by the heap.Interface methods
}

var _ ScheduledTask = (*scheduledTask)(nil)

func (st *scheduledTask) TaskDetail() *TaskDetail {
	return st.detail
}

func (st *scheduledTask) Trigger() Trigger {
	return st.trigger
}

func (st *scheduledTask) NextRunTime() int64 {
	return st.priority
}

// taskQueue is a time-ordered priority queue of scheduled tasks,
// implementing heap.Interface. The task with the earliest next run
// time is at the head.
type taskQueue []*scheduledTask

var _ heap.Interface = (*taskQueue)(nil)

func (tq taskQueue) Len() int { return len(tq) }

func (tq taskQueue) Less(i, j int) bool {
	return tq[i].priority < tq[j].priority
}

func (tq taskQueue) Swap(i, j int) {
	tq[i], tq[j] = tq[j], tq[i]
	tq[i].index = i
	tq[j].index = j
}

func (tq *taskQueue) Push(x any) {
	n := len(*tq)
	item := x.(*scheduledTask)
	item.index = n
	*tq = append(*tq, item)
}

func (tq *taskQueue) Pop() any {
	old := *tq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1 // for safety
	*tq = old[0 : n-1]
	return item
}

// head returns the first item of the queue without removing it.
func (tq *taskQueue) head() *scheduledTask {
	return (*tq)[0]
}

// remove removes and returns the element at index i from the queue.
func (tq *taskQueue) remove(i int) *scheduledTask {
	return heap.Remove(tq, i).(*scheduledTask)
}
