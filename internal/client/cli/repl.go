package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Register(ctx context.Context) error
	Signup(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Consents(ctx context.Context) error
	Approve(ctx context.Context) error
	Reject(ctx context.Context) error
	ViewDoc(ctx context.Context) error
	Borrowers(ctx context.Context) error
	AddBorrower(ctx context.Context) error
	SetStatus(ctx context.Context) error
	Risk(ctx context.Context) error
	NewLender(ctx context.Context) error
	NewCashloan(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the lenderctl terminal.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands when not logged in: help, login, register, signup, exit/quit.
// Commands when logged in: borrowers, addborrower, setstatus, risk, passwd,
// logout, exit/quit. Administrators additionally get consents, approve,
// reject, viewdoc, newlender, newcashloan.
//
// Role gating happens inside the command handlers, not here: the REPL only
// shapes the help text. Any errors returned by command handlers are ignored
// here; handlers report their own errors. This keeps the loop resilient and
// focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ll> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			switch {
			case !a.isLoggedIn():
				printlnFn("Available commands: login, register, signup, exit")
			case a.isAdmin():
				printlnFn("Available commands: consents, approve, reject, viewdoc, borrowers, addborrower, setstatus, risk, newlender, newcashloan, passwd, logout, exit")
			default:
				printlnFn("Available commands: borrowers, addborrower, setstatus, risk, passwd, logout, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "consents":
			_ = a.Consents(ctx)

		case "approve":
			_ = a.Approve(ctx)

		case "reject":
			_ = a.Reject(ctx)

		case "viewdoc":
			_ = a.ViewDoc(ctx)

		case "b", "borrowers":
			_ = a.Borrowers(ctx)

		case "addborrower":
			_ = a.AddBorrower(ctx)

		case "setstatus":
			_ = a.SetStatus(ctx)

		case "risk":
			_ = a.Risk(ctx)

		case "newlender":
			_ = a.NewLender(ctx)

		case "newcashloan":
			_ = a.NewCashloan(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
