// Package scheduler implements the cycle counted event queue of the console.
// Chips register events a number of CPU cycles into the future and are called
// back when the console has advanced far enough.
//
// There is only ever one pending instance of an event. Scheduling an event
// that is already pending replaces it, which is how a chip cancels stale
// events when it is reset.
package scheduler

import (
	"fmt"
	"strings"
)

type pending struct {
	event string
	when  uint64
	fn    func()

	// events that fire on the same cycle are called in the order they were
	// scheduled
	seq uint64
}

// Scheduler is a cycle counted event queue
type Scheduler struct {
	cycles uint64
	seq    uint64

	// sorted by when and then by seq
	events []pending
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type
func NewScheduler() *Scheduler {
	return &Scheduler{
		events: make([]pending, 0, 8),
	}
}

// Reset removes all pending events and sets the cycle counter to zero
func (s *Scheduler) Reset() {
	s.cycles = 0
	s.seq = 0
	s.events = s.events[:0]
}

func (s *Scheduler) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cycles: %d", s.cycles)
	for _, e := range s.events {
		fmt.Fprintf(&b, "\n%s in %d", e.event, e.when-s.cycles)
	}
	return b.String()
}

// Cycles returns the number of cycles since the last reset
func (s *Scheduler) Cycles() uint64 {
	return s.cycles
}

// Schedule the event to fire the specified number of cycles from now. Any
// pending instance of the event is removed first
func (s *Scheduler) Schedule(event string, cycles uint32, fn func()) {
	s.remove(event)

	p := pending{
		event: event,
		when:  s.cycles + uint64(cycles),
		fn:    fn,
		seq:   s.seq,
	}
	s.seq++

	i := len(s.events)
	for i > 0 && s.events[i-1].when > p.when {
		i--
	}
	s.events = append(s.events, pending{})
	copy(s.events[i+1:], s.events[i:])
	s.events[i] = p
}

// Cancel removes the event from the queue. Returns false if the event was not
// pending
func (s *Scheduler) Cancel(event string) bool {
	return s.remove(event)
}

func (s *Scheduler) remove(event string) bool {
	for i := range s.events {
		if s.events[i].event == event {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of cycles until the event fires. The bool value
// is false if the event is not pending
func (s *Scheduler) Pending(event string) (uint64, bool) {
	for _, e := range s.events {
		if e.event == event {
			return e.when - s.cycles, true
		}
	}
	return 0, false
}

// Advance the cycle counter, firing every event that falls due in the order
// that they fall due. The event is acknowledged (removed from the queue)
// before the callback is run so the callback is free to schedule the event
// again
func (s *Scheduler) Advance(cycles uint64) {
	target := s.cycles + cycles
	for len(s.events) > 0 && s.events[0].when <= target {
		e := s.events[0]
		s.events = s.events[1:]
		s.cycles = e.when
		e.fn()
	}
	s.cycles = target
}
