package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")

// NoticeKind distinguishes the two notifications an activity deadline
// can produce.
type NoticeKind string

const (
	NoticeAtDeadline NoticeKind = "at_deadline"
	NoticeAtDayStart NoticeKind = "at_day_start"
)

// Notice is a pending local notification. ID is the opaque handle
// callers use to cancel it before it fires.
type Notice struct {
	ID         string
	ActivityID string
	Kind       NoticeKind
	Title      string
	Body       string
	TriggerAt  time.Time
}

type queueItem struct {
	notice Notice
}

type noticeQueue []queueItem

func (q noticeQueue) Len() int { return len(q) }

func (q noticeQueue) Less(i, j int) bool {
	return q[i].notice.TriggerAt.Before(q[j].notice.TriggerAt)
}

func (q noticeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *noticeQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *noticeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// Engine delivers notices on its output channel when their trigger time
// arrives. Notices are held in a min-heap keyed on trigger time; a
// single goroutine sleeps until the earliest one is due.
type Engine struct {
	mu      sync.Mutex
	queue   noticeQueue
	out     chan Notice
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(noticeQueue, 0),
		out:    make(chan Notice, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan Notice {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(n Notice) error {
	if n.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("scheduler: engine stopped")
	}

	heap.Push(&e.queue, queueItem{notice: n})
	e.signalWakeup()
	return nil
}

// Cancel removes the pending notice with the given handle. Cancelling a
// handle that has already fired, or was never scheduled, is a no-op.
func (e *Engine) Cancel(id string) {
	if id == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.queue {
		if e.queue[i].notice.ID == id {
			heap.Remove(&e.queue, i)
			e.signalWakeup()
			return
		}
	}
}

// Pending reports the number of notices still waiting to fire.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.TriggerAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now())
			for _, n := range due {
				select {
				case e.out <- n:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Notice, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Notice{}, false
	}
	return e.queue[0].notice, true
}

func (e *Engine) popDue(now time.Time) []Notice {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Notice, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].notice
		if next.TriggerAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.notice)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
