package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/linkledger/lenderctl/internal/client/borrower"
	"github.com/linkledger/lenderctl/internal/common"
)

// Borrowers lists the authenticated lender's own roster.
func (a *App) Borrowers(ctx context.Context) error {
	if _, err := a.sessions.Require(); err != nil {
		report(err)
		return err
	}
	return a.refreshBorrowers(ctx)
}

func (a *App) refreshBorrowers(ctx context.Context) error {
	res, err := a.borrowers.ListMine(ctx)
	if err != nil {
		report(err)
		return err
	}
	if !a.borrowers.Current(res.Tag) {
		return nil
	}

	if len(res.Records) == 0 {
		printlnFn("Your roster is empty.")
		return nil
	}
	for _, r := range res.Records {
		date := ""
		switch r.Status {
		case borrower.StatusPaid:
			if r.PaidDate != "" {
				date = "paid " + r.PaidDate
			}
		case borrower.StatusOwing, borrower.StatusOverdue:
			if r.DueDate != "" {
				date = "due " + r.DueDate
			}
		}
		printlnFn(fmt.Sprintf("%s  %s  %s  [%s]  %s",
			r.ID, r.NationalID, r.FullName, statusBadge(r.Status), date))
	}
	return nil
}

// AddBorrower collects the entry fields, validates them locally, and creates
// a roster record. A 409 duplicate is reconciliation, not failure: the
// server's message is shown as a notice and the roster is refreshed anyway.
func (a *App) AddBorrower(ctx context.Context) error {
	if _, err := a.sessions.Require(); err != nil {
		report(err)
		return err
	}

	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	nationalID, err := getSimpleText(a.reader, "Enter national ID (9 digits)", os.Stdout)
	if err != nil {
		return err
	}
	status, err := getSimpleText(a.reader, "Enter status [paid/owing/overdue]", os.Stdout)
	if err != nil {
		return err
	}
	dueDate := ""
	if status == borrower.StatusOwing || status == borrower.StatusOverdue {
		dueDate, err = getOptionalText(a.reader, "Due date (YYYY-MM-DD)", os.Stdout)
		if err != nil {
			return err
		}
	}

	in := borrower.AddInput{FullName: fullName, NationalID: nationalID, Status: status, DueDate: dueDate}
	if err := a.borrowers.Add(ctx, in); err != nil {
		if msg, ok := conflictNotice(err); ok {
			if msg == "" {
				msg = "This borrower is already on your roster."
			}
			printlnFn(msg)
			return a.refreshBorrowers(ctx)
		}
		reportValidation(err)
		return err
	}

	printlnFn("Borrower added.")
	return a.refreshBorrowers(ctx)
}

// SetStatus collects one structured status update, validates it completely,
// and dispatches it in a single request. Only the date matching the target
// status family is ever included; an omitted date is absent from the body.
func (a *App) SetStatus(ctx context.Context) error {
	if _, err := a.sessions.Require(); err != nil {
		report(err)
		return err
	}

	id, err := getSimpleText(a.reader, "Enter borrower record id", os.Stdout)
	if err != nil {
		return err
	}
	status, err := getSimpleText(a.reader, "Enter new status [paid/owing/overdue]", os.Stdout)
	if err != nil {
		return err
	}
	if !borrower.ValidStatus(status) {
		printlnFn("Status must be one of: paid, owing, overdue.")
		return common.ErrInvalidStatus
	}

	update := borrower.StatusUpdate{Status: status}
	switch status {
	case borrower.StatusPaid:
		// Empty answer means "server assigns the paid date now".
		paidDate, err := getOptionalText(a.reader, "Paid date (YYYY-MM-DD)", os.Stdout)
		if err != nil {
			return err
		}
		if paidDate != "" {
			update.PaidDate = &paidDate
		}
	case borrower.StatusOwing, borrower.StatusOverdue:
		// Empty answer means "keep the stored due date".
		dueDate, err := getOptionalText(a.reader, "Due date (YYYY-MM-DD)", os.Stdout)
		if err != nil {
			return err
		}
		if dueDate != "" {
			update.DueDate = &dueDate
		}
	}

	if err := a.borrowers.UpdateStatus(ctx, id, update); err != nil {
		report(err)
		return err
	}

	printlnFn("Status updated.")
	return a.refreshBorrowers(ctx)
}

// reportValidation gives the local validation errors friendlier wording than
// the generic report path.
func reportValidation(err error) {
	switch {
	case errors.Is(err, common.ErrMissingField):
		printlnFn("Full name, national ID and status are all required.")
	case errors.Is(err, common.ErrInvalidNationalID):
		printlnFn("National ID must be exactly 9 digits.")
	case errors.Is(err, common.ErrInvalidStatus):
		printlnFn("Status must be one of: paid, owing, overdue.")
	default:
		report(err)
	}
}
