package driver

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

const (
	DefaultTickLength = time.Second
)

// Task is a deferred unit of work. It must tolerate the world having
// changed since it was scheduled, including its target entities having
// vanished.
type Task = func(context.Context)

// Scheduler runs tasks after a delay measured in whole game time units
// (one unit is a tick). Closing a session does not cancel timers aimed
// at its entity; the task itself resolves the staleness.
type Scheduler struct {
	tickLength time.Duration

	mu      sync.Mutex
	pending taskHeap
	wake    chan struct{}
}

func NewScheduler(opts ...SchedulerOpt) *Scheduler {
	s := &Scheduler{
		tickLength: DefaultTickLength,
		wake:       make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Schedule queues task to run after the given number of time units.
// Safe to call from any goroutine, including from a running task.
func (s *Scheduler) Schedule(units int, task Task) {
	at := time.Now().Add(time.Duration(units) * s.tickLength)

	s.mu.Lock()
	heap.Push(&s.pending, &pendingTask{at: at, task: task})
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	timer := time.NewTimer(s.tickLength)
	defer timer.Stop()

	for {
		for _, task := range s.due() {
			task(ctx)
		}

		timer.Reset(s.untilNext())

		select {
		case <-ctx.Done():
			return nil
		case <-s.wake:
		case <-timer.C:
		}
	}
}

// due pops every task whose fire time has passed.
func (s *Scheduler) due() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var tasks []Task
	for len(s.pending) > 0 && !s.pending[0].at.After(now) {
		tasks = append(tasks, heap.Pop(&s.pending).(*pendingTask).task)
	}
	return tasks
}

// untilNext bounds the wait at one tick so the loop stays responsive
// even with an empty queue.
func (s *Scheduler) untilNext() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.tickLength
	if len(s.pending) > 0 {
		if until := time.Until(s.pending[0].at); until < d {
			d = until
		}
	}
	if d < 0 {
		d = 0
	}
	return d
}

type pendingTask struct {
	at   time.Time
	task Task
}

type taskHeap []*pendingTask

func (h taskHeap) Len() int           { return len(h) }
func (h taskHeap) Less(i, j int) bool { return h[i].at.Before(h[j].at) }
func (h taskHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	*h = append(*h, x.(*pendingTask))
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
