package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/linkledger/lenderctl/internal/client/consent"
	"github.com/linkledger/lenderctl/internal/client/session"
	"github.com/linkledger/lenderctl/internal/common"
)

// Consents lists consent-disclosure records. Administrators only. The
// operator may narrow by status (default pending) and by an exact 9-digit
// identity key; a malformed key is rejected before any request.
func (a *App) Consents(ctx context.Context) error {
	if err := a.sessions.RequireRole(session.RoleAdmin); err != nil {
		report(err)
		return err
	}

	status, err := getOptionalText(a.reader, "Status filter [pending/approved/rejected]", os.Stdout)
	if err != nil {
		return err
	}
	nationalID, err := getOptionalText(a.reader, "National ID filter (9 digits)", os.Stdout)
	if err != nil {
		return err
	}

	target := consent.StatusPending
	if status != "" {
		target = consent.Status(status)
	}

	return a.listConsents(ctx, target, nationalID)
}

// listConsents fetches a listing with candidate filters and renders it in
// server order. The filters are committed to App state only when the listing
// succeeds: a rejected filter never persists, so a later refresh reuses the
// last filters that actually produced a listing. A late result whose request
// tag was superseded is discarded unrendered.
func (a *App) listConsents(ctx context.Context, status consent.Status, nationalID string) error {
	res, err := a.consents.List(ctx, status, nationalID)
	if err != nil {
		if errors.Is(err, common.ErrInvalidNationalID) {
			printlnFn("National ID filter must be exactly 9 digits.")
			return err
		}
		report(err)
		return err
	}
	if !a.consents.Current(res.Tag) {
		return nil
	}

	a.consentStatus = status
	a.consentIDFilter = nationalID
	a.lastConsents = res.Records
	a.renderConsents()
	return nil
}

// refreshConsents re-fetches with the filters of the last successful listing.
func (a *App) refreshConsents(ctx context.Context) error {
	return a.listConsents(ctx, a.consentStatus, a.consentIDFilter)
}

func (a *App) renderConsents() {
	if len(a.lastConsents) == 0 {
		printlnFn("No consent records match.")
		return
	}
	for _, r := range a.lastConsents {
		doc := "no file"
		if r.HasDocument() {
			doc = r.ConsentFileName
			if doc == "" {
				doc = "file attached"
			}
		}
		printlnFn(fmt.Sprintf("%s  %s  %s  [%s]  %s",
			r.ID, r.NationalID, r.FullName, statusBadge(string(r.ConsentStatus)), doc))
	}
}

// Approve transitions a pending record to approved, with optional notes.
func (a *App) Approve(ctx context.Context) error {
	return a.transitionConsent(ctx, consent.StatusApproved)
}

// Reject transitions a pending record to rejected, with optional notes.
func (a *App) Reject(ctx context.Context) error {
	return a.transitionConsent(ctx, consent.StatusRejected)
}

// transitionConsent drives one pending-to-terminal move. On success the listing
// is always re-fetched; displayed state never diverges from the most recent
// server read. On failure the prior listing stands and the record remains
// actionable.
func (a *App) transitionConsent(ctx context.Context, target consent.Status) error {
	if err := a.sessions.RequireRole(session.RoleAdmin); err != nil {
		report(err)
		return err
	}

	id, err := getSimpleText(a.reader, "Enter consent record id", os.Stdout)
	if err != nil {
		return err
	}
	notes, err := getOptionalText(a.reader, "Notes", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.consents.Transition(ctx, id, target, notes); err != nil {
		report(err)
		return err
	}

	printlnFn(fmt.Sprintf("Record %s %s.", id, target))
	return a.refreshConsents(ctx)
}

// ViewDoc opens the identity document attached to a listed consent record.
// Records without a stored file location expose no viewing path.
func (a *App) ViewDoc(ctx context.Context) error {
	if err := a.sessions.RequireRole(session.RoleAdmin); err != nil {
		report(err)
		return err
	}

	id, err := getSimpleText(a.reader, "Enter consent record id", os.Stdout)
	if err != nil {
		return err
	}

	var record *consent.Record
	for i := range a.lastConsents {
		if a.lastConsents[i].ID == id {
			record = &a.lastConsents[i]
			break
		}
	}
	if record == nil {
		printlnFn("Unknown record id. Run 'consents' first.")
		return nil
	}
	if !record.HasDocument() {
		printlnFn("No file on record for", record.FullName)
		return nil
	}

	if _, err := a.documents.Open(ctx, record.ConsentFileURL); err != nil {
		report(err)
		return err
	}
	return nil
}
