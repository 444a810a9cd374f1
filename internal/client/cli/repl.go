package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Dashboard(ctx context.Context) error
	ShowEvent(ctx context.Context, id string) error
	AddEvent(ctx context.Context) error
	EditEvent(ctx context.Context, id string) error
	DeleteEvent(ctx context.Context, id string) error
	AddGuest(ctx context.Context, eventID string) error
	EditGuest(ctx context.Context, eventID, guestID string) error
	DeleteGuest(ctx context.Context, eventID, guestID string) error
	Import(ctx context.Context, eventID, ref string) error
	Overview(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: signup, login, exit"
	helpSignedIn  = "Available commands: events, event <id>, addevent, editevent <id>, delevent <id>, " +
		"addguest <event>, editguest <event> <guest>, delguest <event> <guest>, import <event> <file|url|s3://>, " +
		"overview, whoami, logout, exit"
)

// runREPL starts the read-eval-print loop of the admin console.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Commands that take arguments print their
// usage when arguments are missing. The loop exits on EOF or when the user
// types "exit" or "quit".
//
//	Not logged in:
//	  - help                        show available commands
//	  - signup                      create an admin account
//	  - login                       authenticate
//	  - exit | quit                 leave the program
//
//	Logged in:
//	  - events | dashboard          list events
//	  - event <id>                  show an event and its guests
//	  - addevent                    create an event
//	  - editevent <id>              edit an event
//	  - delevent <id>               delete an event
//	  - addguest <event>            add a guest to an event
//	  - editguest <event> <guest>   edit a guest
//	  - delguest <event> <guest>    delete a guest
//	  - import <event> <ref>        bulk import guests from a spreadsheet
//	  - overview                    admin panel statistics
//	  - whoami                      show the signed-in admin
//	  - logout                      log out
//
// Errors returned by handlers are reported to the user and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("wl> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "signup", "register":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "events", "dashboard", "l":
			cmdErr = a.Dashboard(ctx)

		case "event":
			if len(args) < 1 {
				printlnFn("Usage: event <id>")
				continue
			}
			cmdErr = a.ShowEvent(ctx, args[0])

		case "addevent":
			cmdErr = a.AddEvent(ctx)

		case "editevent":
			if len(args) < 1 {
				printlnFn("Usage: editevent <id>")
				continue
			}
			cmdErr = a.EditEvent(ctx, args[0])

		case "delevent":
			if len(args) < 1 {
				printlnFn("Usage: delevent <id>")
				continue
			}
			cmdErr = a.DeleteEvent(ctx, args[0])

		case "addguest":
			if len(args) < 1 {
				printlnFn("Usage: addguest <event>")
				continue
			}
			cmdErr = a.AddGuest(ctx, args[0])

		case "editguest":
			if len(args) < 2 {
				printlnFn("Usage: editguest <event> <guest>")
				continue
			}
			cmdErr = a.EditGuest(ctx, args[0], args[1])

		case "delguest":
			if len(args) < 2 {
				printlnFn("Usage: delguest <event> <guest>")
				continue
			}
			cmdErr = a.DeleteGuest(ctx, args[0], args[1])

		case "import":
			if len(args) < 1 {
				printlnFn("Usage: import <event> <file|url|s3://bucket/key>")
				continue
			}
			ref := ""
			if len(args) > 1 {
				ref = strings.Join(args[1:], " ")
			}
			cmdErr = a.Import(ctx, args[0], ref)

		case "overview", "admin":
			cmdErr = a.Overview(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describeError(cmdErr))
		}
	}
}
