package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Help() string
	Go(target string) error
	Home() error
	Screens()
	WhoAmI() error
	Logout(ctx context.Context) error
	Dispatch(ctx context.Context, cmd string, args []string) error
	Settle()
}

// runREPL starts a simple read–eval–print loop for the brokerdesk CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches it: global commands are handled here, everything else goes to
// the current screen. After every command the screen is settled: its banner
// is printed and a pending redirect is followed. The loop exits on EOF, when
// ctx is done, or when the user types "exit" or "quit".
//
// Global commands:
//
//	help              show global and screen commands
//	go <path>         open a screen, e.g. go /customer/dashboard/claim
//	home              open the dashboard of the logged-in user
//	screens           list the screens you may open
//	whoami            show the logged-in user and token expiry
//	logout            end the session
//	exit | quit       leave the program
//
// Errors returned by command handlers are not fatal; handlers flash or
// log their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("bd %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(a.Help())

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Go(args[0])

		case "home":
			_ = a.Home()

		case "screens":
			a.Screens()

		case "whoami":
			_ = a.WhoAmI()

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if err := a.Dispatch(ctx, cmd, args); errors.Is(err, errUnknownCommand) {
				printlnFn("Unknown command:", cmd)
			}
		}
		a.Settle()
	}
}
