package logger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jetsetilly/testfalcon/logger"
	"github.com/jetsetilly/testfalcon/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()

	logger.Log(logger.Allow, "tag", "detail")
	logger.Log(logger.Allow, "tag", errors.New("error detail"))
	logger.Logf(logger.Allow, "tag", "formatted %#02x", 0x10)

	var s strings.Builder
	logger.Tail(&s, -1)
	test.ExpectEquality(t, s.String(), "tag: detail\ntag: error detail\ntag: formatted 0x10\n")

	s.Reset()
	logger.Tail(&s, 1)
	test.ExpectEquality(t, s.String(), "tag: formatted 0x10\n")
}

func TestDeniedLogging(t *testing.T) {
	logger.Clear()
	logger.Log(logger.Deny, "tag", "detail")
	logger.Log(nil, "tag", "detail")
	test.ExpectEquality(t, len(logger.Entries()), 0)
}

func TestRepeatedEntries(t *testing.T) {
	logger.Clear()

	for range 5 {
		logger.Log(logger.Allow, "crossbar", "memory fault")
	}
	logger.Log(logger.Allow, "crossbar", "other")

	e := logger.Entries()
	test.DemandEquality(t, len(e), 2)
	test.ExpectEquality(t, e[0].Repeated, 4)
	test.ExpectEquality(t, e[0].String(), "crossbar: memory fault (repeat x5)")
	test.ExpectEquality(t, e[1].Repeated, 0)
}

func TestEcho(t *testing.T) {
	logger.Clear()

	var s strings.Builder
	logger.SetEcho(&s, false)
	defer logger.SetEcho(nil, false)

	logger.Log(logger.Allow, "audio", "no device")
	test.ExpectEquality(t, s.String(), "audio: no device\n")
}
