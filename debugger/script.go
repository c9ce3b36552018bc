package debugger

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/testfalcon/hardware"
	"github.com/jetsetilly/testfalcon/logger"
	lua "github.com/yuin/gopher-lua"
)

// the functions available to a script. addresses and values are numbers
//
//	peek(address)          returns the byte at address
//	poke(address, value)   writes a byte
//	pokew(address, value)  writes a big-endian word
//	step(cycles)           advances the console by a number of cycles
//	run(slices)            advances the console by a number of slices, not in real time
//	reset()                resets the console
//	cycles()               returns the number of cycles since the last reset
//	status()               returns the status of the console as a string
//	command(string)        runs a debugger command
//	quiet(bool)            silences the logging of the chips
//	print(...)             prints the arguments in the script style
func (m *debugger) newScriptState() *lua.LState {
	L := lua.NewState()

	register := func(name string, fn lua.LGFunction) {
		L.SetGlobal(name, L.NewFunction(fn))
	}

	register("peek", func(L *lua.LState) int {
		address := uint32(L.CheckInt64(1))
		v, err := m.console.Read(address)
		if err != nil {
			L.RaiseError("peek: %v", err)
			return 0
		}
		L.Push(lua.LNumber(v))
		return 1
	})

	register("poke", func(L *lua.LState) int {
		address := uint32(L.CheckInt64(1))
		v := L.CheckInt(2)
		err := m.console.Write(address, uint8(v))
		if err != nil {
			L.RaiseError("poke: %v", err)
		}
		return 0
	})

	register("pokew", func(L *lua.LState) int {
		address := uint32(L.CheckInt64(1))
		v := L.CheckInt(2)
		err := m.console.WriteWord(address, uint16(v))
		if err != nil {
			L.RaiseError("pokew: %v", err)
		}
		return 0
	})

	register("step", func(L *lua.LState) int {
		n := L.CheckInt64(1)
		if n < 0 {
			L.ArgError(1, "cycles must not be negative")
			return 0
		}
		m.console.Step(uint64(n))
		return 0
	})

	register("run", func(L *lua.LState) int {
		n := L.OptInt(1, 1)
		if n < 0 {
			L.ArgError(1, "slices must not be negative")
			return 0
		}
		for range n {
			m.console.Step(hardware.SliceCycles)
		}
		return 0
	})

	register("reset", func(L *lua.LState) int {
		m.ctx.Reset()
		m.console.Reset(true)
		return 0
	})

	register("cycles", func(L *lua.LState) int {
		L.Push(lua.LNumber(m.console.Cycles()))
		return 1
	})

	register("status", func(L *lua.LState) int {
		L.Push(lua.LString(m.console.Status()))
		return 1
	})

	register("command", func(L *lua.LState) int {
		cmd := strings.Fields(L.CheckString(1))
		if len(cmd) > 0 {
			switch strings.ToUpper(cmd[0]) {
			case "QUIT", "SCRIPT", "R", "RUN":
				L.ArgError(1, fmt.Sprintf("%s is not available to scripts", cmd[0]))
				return 0
			}
		}
		m.commands(cmd)
		return 0
	})

	register("quiet", func(L *lua.LState) int {
		m.ctx.quiet = L.CheckBool(1)
		return 0
	})

	register("print", func(L *lua.LState) int {
		s := make([]string, L.GetTop())
		for i := range s {
			s[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		m.print(m.styles.script, strings.Join(s, " "))
		return 0
	})

	return L
}

// runScript runs the Lua source. the name is used in error messages
func (m *debugger) runScript(name string, source string) error {
	L := m.newScriptState()
	defer func() {
		L.Close()
		m.ctx.quiet = false
	}()

	fn, err := L.Load(strings.NewReader(source), name)
	if err != nil {
		return fmt.Errorf("script: %w", err)
	}

	L.Push(fn)
	err = L.PCall(0, lua.MultRet, nil)
	if err != nil {
		return fmt.Errorf("script: %w", err)
	}

	logger.Logf(logger.Allow, "script", "%s completed", name)
	return nil
}

// runScriptFile runs the Lua script in the named file
func (m *debugger) runScriptFile(filename string) error {
	L := m.newScriptState()
	defer func() {
		L.Close()
		m.ctx.quiet = false
	}()

	err := L.DoFile(filename)
	if err != nil {
		return fmt.Errorf("script: %w", err)
	}

	logger.Logf(logger.Allow, "script", "%s completed", filename)
	return nil
}
