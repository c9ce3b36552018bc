package debugger

import (
	"strings"
	"testing"

	"github.com/jetsetilly/testfalcon/hardware"
	"github.com/jetsetilly/testfalcon/test"
)

func TestScript(t *testing.T) {
	m, out := newTestDebugger(t)

	err := m.runScript("test", `
poke(0x1000, 0x42)
assert(peek(0x1000) == 0x42)
pokew(0x1002, 0x1234)
assert(peek(0x1002) == 0x12)
assert(peek(0x1003) == 0x34)
step(100)
assert(cycles() == 100)
run(2)
print("cycles", cycles())
`)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m.console.Cycles(), uint64(100+2*hardware.SliceCycles))
	test.ExpectEquality(t, strings.Contains(out.String(), "cycles"), true)

	err = m.runScript("reset", `
reset()
assert(cycles() == 0)
assert(string.find(status(), "cycles: 0") ~= nil)
`)
	test.ExpectSuccess(t, err)
}

func TestScriptCommand(t *testing.T) {
	m, out := newTestDebugger(t)

	err := m.runScript("command", `command("POKE $1000 7")`)
	test.ExpectSuccess(t, err)
	v, err := m.console.Read(0x1000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(7))

	err = m.runScript("quit", `command("QUIT")`)
	test.ExpectFailure(t, err)

	err = m.runScript("quiet", `quiet(true)`)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m.ctx.quiet, false)

	_ = out
}

func TestScriptErrors(t *testing.T) {
	m, _ := newTestDebugger(t)

	// syntax error
	err := m.runScript("syntax", `poke(`)
	test.ExpectFailure(t, err)

	// unmapped address
	err = m.runScript("unmapped", `peek(0x800000)`)
	test.ExpectFailure(t, err)

	err = m.runScript("negative", `step(-1)`)
	test.ExpectFailure(t, err)

	err = m.runScriptFile("/nonexistent/script.lua")
	test.ExpectFailure(t, err)
}
