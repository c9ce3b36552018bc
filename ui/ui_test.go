package ui_test

import (
	"testing"

	"github.com/jetsetilly/testfalcon/test"
	"github.com/jetsetilly/testfalcon/ui"
)

func TestPushMonitor(t *testing.T) {
	u := ui.NewUI()

	u.PushMonitor(ui.Monitor{Left: 1})
	u.PushMonitor(ui.Monitor{Left: 2})

	m := <-u.Monitor
	test.ExpectEquality(t, m.Left, int16(2))

	select {
	case <-u.Monitor:
		t.Errorf("only the most recent monitor update should be pending")
	default:
	}
}
