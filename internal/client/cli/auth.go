package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/linkledger/lenderctl/internal/client/account"
	"github.com/linkledger/lenderctl/internal/common"
)

// getSimpleText, getOptionalText and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getOptionalText = GetOptionalText
var getPassword = GetPassword

// Login prompts for credentials and establishes a session. On success the
// prompt reflects the stored email and derived role; on rejection the
// server's message (or a generic fallback) is shown and no session state
// changes.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.sessions.Establish(ctx, email, password)
	if err != nil {
		report(err)
		return err
	}

	printlnFn(fmt.Sprintf("Logged in as %s (%s)", s.Email, s.Role))
	return nil
}

// Logout clears the session triad. Idempotent: logging out while logged out
// is a no-op.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Destroy(ctx); err != nil {
		report(err)
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// Register prompts for the self-registration fields and creates an account.
func (a *App) Register(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	in := account.RegisterInput{FullName: fullName, Email: email, Password: string(password)}
	if err := a.accounts.Register(ctx, in); err != nil {
		report(err)
		return err
	}

	printlnFn("Account created. You can log in now.")
	return nil
}

// Signup files a signup request for operators who cannot self-register.
// A duplicate pending request is informational, not an error.
func (a *App) Signup(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getOptionalText(a.reader, "Enter phone", os.Stdout)
	if err != nil {
		return err
	}
	company, err := getOptionalText(a.reader, "Enter company", os.Stdout)
	if err != nil {
		return err
	}

	in := account.SignupInput{FullName: fullName, Email: email, Phone: phone, Company: company}
	err = a.accounts.RequestSignup(ctx, in)
	if err != nil {
		if msg, ok := conflictNotice(err); ok {
			printlnFn("A signup request for this applicant is already pending.", msg)
			return nil
		}
		report(err)
		return err
	}

	printlnFn("Signup request filed. An administrator will review it.")
	return nil
}

// ChangePassword updates the authenticated operator's password.
func (a *App) ChangePassword(ctx context.Context) error {
	if _, err := a.sessions.Require(); err != nil {
		report(err)
		return err
	}

	printlnFn("Current password:")
	current, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	printlnFn("New password:")
	next, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if err := a.accounts.SetPassword(ctx, string(current), string(next)); err != nil {
		report(err)
		return err
	}

	printlnFn("Password updated.")
	return nil
}
