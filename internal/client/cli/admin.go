package cli

import (
	"context"
	"os"

	"github.com/linkledger/lenderctl/internal/client/account"
	"github.com/linkledger/lenderctl/internal/client/session"
	"github.com/linkledger/lenderctl/internal/common"
)

// NewLender provisions a lender account. Administrators only; the gate runs
// before any prompt is shown.
func (a *App) NewLender(ctx context.Context) error {
	if err := a.sessions.RequireRole(session.RoleAdmin); err != nil {
		report(err)
		return err
	}

	name, err := getSimpleText(a.reader, "Enter lender name", os.Stdout)
	if err != nil {
		return err
	}
	branch, err := getOptionalText(a.reader, "Enter branch", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getOptionalText(a.reader, "Enter phone", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter login email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	in := account.LenderInput{Name: name, Branch: branch, Phone: phone, Email: email, Password: string(password)}
	if err := a.accounts.CreateLender(ctx, in); err != nil {
		report(err)
		return err
	}

	printlnFn("Lender account created.")
	return nil
}

// NewCashloan provisions a cashloan operation. Administrators only.
func (a *App) NewCashloan(ctx context.Context) error {
	if err := a.sessions.RequireRole(session.RoleAdmin); err != nil {
		report(err)
		return err
	}

	name, err := getSimpleText(a.reader, "Enter cashloan name", os.Stdout)
	if err != nil {
		return err
	}
	branch, err := getOptionalText(a.reader, "Enter branch", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getOptionalText(a.reader, "Enter phone", os.Stdout)
	if err != nil {
		return err
	}

	in := account.CashloanInput{Name: name, Branch: branch, Phone: phone}
	if err := a.accounts.CreateCashloan(ctx, in); err != nil {
		report(err)
		return err
	}

	printlnFn("Cashloan created.")
	return nil
}
