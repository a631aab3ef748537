package debounce

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrLoopClosed is returned when posting to a loop that has stopped.
var ErrLoopClosed = errors.New("debounce: loop closed")

// EventLoop runs posted tasks one at a time on the goroutine calling Run.
// Timers fire by posting their task, so timer callbacks never race with
// other tasks.
type EventLoop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// NewEventLoop creates a loop whose queue holds up to buffer tasks.
func NewEventLoop(buffer int) *EventLoop {
	if buffer < 1 {
		buffer = 64
	}
	return &EventLoop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run executes tasks until ctx is done.
func (l *EventLoop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Post queues fn. It blocks while the queue is full.
func (l *EventLoop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrLoopClosed
	default:
	}
	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrLoopClosed
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *EventLoop) Do(fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopClosed
	}
}

// AfterFunc posts fn to the loop once d has elapsed.
func (l *EventLoop) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		_ = l.Post(fn)
	})
}

// ManualLoop is a Loop driven by virtual time. Tasks run synchronously from
// Advance, on the caller's goroutine. It suits hosts that own their event
// loop and deterministic tests.
type ManualLoop struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// AfterFunc schedules fn at the current virtual time plus d.
func (l *ManualLoop) AfterFunc(d time.Duration, fn func()) Timer {
	l.seq++
	t := &manualTimer{at: l.now + d, seq: l.seq, fn: fn}
	l.timers = append(l.timers, t)
	return t
}

// Now returns the virtual time elapsed since the loop was created.
func (l *ManualLoop) Now() time.Duration { return l.now }

// Pending returns the number of armed timers.
func (l *ManualLoop) Pending() int {
	n := 0
	for _, t := range l.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, running every timer that falls
// due in order. Timers armed by those tasks run too if they fall due.
func (l *ManualLoop) Advance(d time.Duration) {
	target := l.now + d
	for {
		t := l.next(target)
		if t == nil {
			break
		}
		l.now = t.at
		t.fired = true
		t.fn()
	}
	l.now = target
	l.compact()
}

func (l *ManualLoop) next(until time.Duration) *manualTimer {
	var due []*manualTimer
	for _, t := range l.timers {
		if !t.stopped && !t.fired && t.at <= until {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

func (l *ManualLoop) compact() {
	kept := l.timers[:0]
	for _, t := range l.timers {
		if !t.stopped && !t.fired {
			kept = append(kept, t)
		}
	}
	l.timers = kept
}
