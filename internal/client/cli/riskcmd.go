package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/linkledger/lenderctl/internal/client/risk"
	"github.com/linkledger/lenderctl/internal/common"
)

// Risk looks one identity key up across all lenders and renders the
// aggregated tier plus the per-lender loan history in server order.
func (a *App) Risk(ctx context.Context) error {
	if _, err := a.sessions.Require(); err != nil {
		report(err)
		return err
	}

	nationalID, err := getSimpleText(a.reader, "Enter national ID", os.Stdout)
	if err != nil {
		return err
	}

	res, err := a.riskView.Query(ctx, nationalID)
	if err != nil {
		if errors.Is(err, common.ErrMissingField) {
			printlnFn("A national ID is required.")
			return err
		}
		report(err)
		return err
	}

	renderRiskReport(res)
	return nil
}

func renderRiskReport(r *risk.Report) {
	printlnFn(fmt.Sprintf("%s: %s", r.FullName, tierStyle(r.Risk).Render(r.RiskLabel)))

	if len(r.ActiveLoans) == 0 {
		printlnFn("No loan records across lenders.")
		return
	}

	for _, loan := range r.ActiveLoans {
		lender := loan.LenderName
		if loan.LenderBranch != "" {
			lender += " / " + loan.LenderBranch
		}
		if loan.LenderPhone != "" {
			lender += " (" + loan.LenderPhone + ")"
		}
		printlnFn(fmt.Sprintf("  %s  [%s]%s", lender, statusBadge(loan.Status), loanDateLine(loan)))
	}
}

// loanDateLine applies the date-visibility rule: the paid date shows only
// for status exactly PAID, the due date only for OWING or OVERDUE, and any
// other status shows no date at all.
func loanDateLine(loan risk.LoanSummary) string {
	switch loan.Status {
	case risk.LoanPaid:
		if loan.PaidDate != "" {
			return "  paid " + loan.PaidDate
		}
	case risk.LoanOwing, risk.LoanOverdue:
		if loan.DueDate != "" {
			return "  due " + loan.DueDate
		}
	}
	return ""
}
