package cli

import (
	"errors"
	"log"

	"github.com/linkledger/lenderctl/internal/client/gateway"
	"github.com/linkledger/lenderctl/internal/common"
)

// report surfaces a command error to the operator according to the error
// taxonomy. A 401 (common.ErrSessionExpired) was already handled by the
// gateway's hook and must not be reported again. Authorization denials keep
// the operator on the current view with a notice.
func report(err error) {
	if err == nil || errors.Is(err, common.ErrSessionExpired) {
		return
	}

	if errors.Is(err, common.ErrNoSession) {
		printlnFn("You are not logged in. Use 'login' first.")
		return
	}
	if errors.Is(err, common.ErrRoleDenied) {
		printlnFn("Access denied: this command requires another role.")
		return
	}

	var forbidden *gateway.ForbiddenError
	if errors.As(err, &forbidden) {
		printlnFn("Access denied:", forbidden.Error())
		return
	}

	var connectivity *gateway.ConnectivityError
	if errors.As(err, &connectivity) {
		printlnFn("Cannot reach the server. Check your connection and try again.")
		return
	}

	log.Printf("error: %v", err)
}

// conflictNotice extracts the server message from a 409 outcome. Callers
// that treat conflicts as reconciliation show it as an informational notice.
func conflictNotice(err error) (string, bool) {
	var conflict *gateway.ConflictError
	if errors.As(err, &conflict) {
		return conflict.Message, true
	}
	return "", false
}
