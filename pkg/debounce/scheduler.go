// ABOUTME: Debounced recompute scheduler
// ABOUTME: Coalesces bursts of edits into one run on the owning event loop

package debounce

import (
	"fmt"
	"time"
)

// DefaultDelay is the pause after the last edit before a run starts.
const DefaultDelay = 500 * time.Millisecond

// Timer is a pending single-shot task.
type Timer interface {
	// Stop cancels the task. It reports false if the task already ran or
	// was already stopped.
	Stop() bool
}

// Loop schedules single-shot tasks on the execution context that owns the
// scheduler. Tasks must run one at a time on that context.
type Loop interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// State is the state of a Scheduler.
type State int

const (
	Idle State = iota
	Pending
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Scheduler runs a function once input activity pauses.
//
//	Idle    --notify--> Pending (timer armed)
//	Pending --notify--> Pending (timer re-armed)
//	Pending --timer---> Running
//	Running --done----> Idle, or Pending when notified while running
//
// A Scheduler is not safe for concurrent use. All calls, and the timer
// callbacks, happen on the goroutine that owns the Loop.
type Scheduler struct {
	loop    Loop
	delay   time.Duration
	run     func()
	onRearm func()

	state State
	timer Timer
	gen   uint64
	dirty bool
	runs  int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithDelay sets the debounce interval.
func WithDelay(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.delay = d
		}
	}
}

// OnRearm registers fn to be called whenever a pending timer is restarted.
func OnRearm(fn func()) Option {
	return func(s *Scheduler) {
		s.onRearm = fn
	}
}

// New creates an idle scheduler that calls run on loop.
func New(loop Loop, run func(), opts ...Option) *Scheduler {
	s := &Scheduler{
		loop:  loop,
		delay: DefaultDelay,
		run:   run,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Scheduler) State() State { return s.state }

// Delay returns the debounce interval.
func (s *Scheduler) Delay() time.Duration { return s.delay }

// Runs returns how many times run has been called.
func (s *Scheduler) Runs() int { return s.runs }

// Notify records an edit event.
func (s *Scheduler) Notify() {
	switch s.state {
	case Idle:
		s.arm()
	case Pending:
		if s.timer != nil {
			s.timer.Stop()
		}
		if s.onRearm != nil {
			s.onRearm()
		}
		s.arm()
	case Running:
		s.dirty = true
	}
}

// Flush runs immediately if a run is pending.
func (s *Scheduler) Flush() {
	if s.state != Pending {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.fire(s.gen)
}

// Cancel drops a pending run.
func (s *Scheduler) Cancel() {
	if s.state != Pending {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.state = Idle
}

func (s *Scheduler) arm() {
	s.gen++
	gen := s.gen
	s.state = Pending
	s.timer = s.loop.AfterFunc(s.delay, func() { s.fire(gen) })
}

func (s *Scheduler) fire(gen uint64) {
	// A stopped timer may already have queued its task.
	if s.state != Pending || gen != s.gen {
		return
	}

	s.state = Running
	s.timer = nil
	s.dirty = false
	s.runs++
	s.run()

	if s.dirty {
		s.dirty = false
		s.arm()
		return
	}
	s.state = Idle
}
