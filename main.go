package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/jetsetilly/testfalcon/debugger"
	"github.com/jetsetilly/testfalcon/gui"
	"github.com/jetsetilly/testfalcon/gui/ebiten"
	"github.com/jetsetilly/testfalcon/ui"
)

// headless returns true if the arguments ask for audio without the monitor
// window. the flag is also accepted by the debugger so it can remain in the
// argument list
func headless(args []string) bool {
	return slices.Contains(args, "-headless") || slices.Contains(args, "--headless")
}

func main() {
	var endGui chan bool
	var endDebugger chan bool
	var resultGui chan error
	var resultDebugger chan error

	// buffered channels. this means we don't have to worry about the gui closing
	// before the debugger and vice versa
	endGui = make(chan bool, 1)
	endDebugger = make(chan bool, 1)

	// similarly, the result channels are buffered because we don't know the
	// order in which the gui and debugger will end
	resultGui = make(chan error, 1)
	resultDebugger = make(chan error, 1)

	u := ui.NewUI()
	args := os.Args[1:]

	go func() {
		if headless(args) {
			resultGui <- gui.Headless(endGui, u)
		} else {
			resultGui <- ebiten.Launch(endGui, u)
		}
		endDebugger <- true
	}()

	go func() {
		resultDebugger <- debugger.Launch(endDebugger, u, args)
		endGui <- true
	}()

	if err := <-resultGui; err != nil {
		fmt.Printf("*** %s\n", err)
	}
	if err := <-resultDebugger; err != nil {
		fmt.Printf("*** %s\n", err)
	}
}
