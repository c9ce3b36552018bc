package scheduler_test

import (
	"testing"

	"github.com/jetsetilly/testfalcon/hardware/scheduler"
	"github.com/jetsetilly/testfalcon/test"
)

func TestOrdering(t *testing.T) {
	s := scheduler.NewScheduler()

	var fired []string
	s.Schedule("b", 20, func() { fired = append(fired, "b") })
	s.Schedule("a", 10, func() { fired = append(fired, "a") })
	s.Schedule("c", 20, func() { fired = append(fired, "c") })

	s.Advance(9)
	test.ExpectEquality(t, len(fired), 0)

	s.Advance(1)
	test.DemandEquality(t, len(fired), 1)
	test.ExpectEquality(t, fired[0], "a")

	s.Advance(100)
	test.DemandEquality(t, len(fired), 3)
	test.ExpectEquality(t, fired[1], "b")
	test.ExpectEquality(t, fired[2], "c")
	test.ExpectEquality(t, s.Cycles(), uint64(110))
}

func TestReplace(t *testing.T) {
	s := scheduler.NewScheduler()

	var ct int
	s.Schedule("osc", 10, func() { ct += 1 })
	s.Schedule("osc", 30, func() { ct += 100 })

	n, ok := s.Pending("osc")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, n, uint64(30))

	s.Advance(50)
	test.ExpectEquality(t, ct, 100)

	_, ok = s.Pending("osc")
	test.ExpectFailure(t, ok)
}

func TestRescheduleFromCallback(t *testing.T) {
	s := scheduler.NewScheduler()

	var when []uint64
	var fn func()
	fn = func() {
		when = append(when, s.Cycles())
		s.Schedule("osc", 7, fn)
	}
	s.Schedule("osc", 7, fn)

	s.Advance(30)
	test.DemandEquality(t, len(when), 4)
	test.ExpectEquality(t, when[0], uint64(7))
	test.ExpectEquality(t, when[3], uint64(28))

	n, ok := s.Pending("osc")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, n, uint64(5))
}

func TestCancel(t *testing.T) {
	s := scheduler.NewScheduler()

	var fired bool
	s.Schedule("osc", 10, func() { fired = true })
	test.ExpectSuccess(t, s.Cancel("osc"))
	test.ExpectFailure(t, s.Cancel("osc"))

	s.Advance(20)
	test.ExpectFailure(t, fired)
}
