package player

import (
	"sync"
	"time"
)

type Timer interface {
	Stop() bool
}

type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func SystemClock() Clock {
	return systemClock{}
}

// Dispatcher runs f on the session's single line of execution.
type Dispatcher interface {
	Do(f func())
}

// Loop serializes all work of one player session. Do must not be called
// from inside Do.
type Loop struct {
	mu sync.Mutex
}

func (l *Loop) Do(f func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f()
}

// Slot holds at most one pending task. Scheduling replaces the pending
// task; a task that fires after being replaced or cancelled is dropped.
// Slot methods must be called through the slot's Dispatcher.
type Slot struct {
	clock Clock
	d     Dispatcher
	timer Timer
	gen   uint64
}

func NewSlot(c Clock, d Dispatcher) *Slot {
	return &Slot{clock: c, d: d}
}

func (s *Slot) Schedule(after time.Duration, f func()) {
	s.Cancel()
	gen := s.gen
	s.timer = s.clock.AfterFunc(after, func() {
		s.d.Do(func() {
			if s.gen != gen {
				return
			}
			s.timer = nil
			s.gen++
			f()
		})
	})
}

func (s *Slot) Cancel() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

func (s *Slot) Pending() bool {
	return s.timer != nil
}
