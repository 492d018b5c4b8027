// Package borrower manages a lender's own borrower roster: creation,
// listing, and payment-status transitions.
package borrower

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/linkledger/lenderctl/internal/common"
)

type API interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// ListResult carries the roster in server order plus the request tag of the
// dispatch that produced it.
type ListResult struct {
	Tag     string
	Records []Record
}

type Service struct {
	api API

	mu         sync.Mutex
	currentTag string
}

func NewService(api API) *Service {
	return &Service{api: api}
}

// Add creates a roster entry. All required fields are validated before any
// request. A 409 comes back as *gateway.ConflictError: the caller treats it
// as idempotent reconciliation (informational notice plus refresh), not
// failure.
func (s *Service) Add(ctx context.Context, in AddInput) error {
	if in.FullName == "" || in.NationalID == "" || in.Status == "" {
		return common.ErrMissingField
	}
	if !common.ValidNationalID(in.NationalID) {
		return common.ErrInvalidNationalID
	}
	if !ValidStatus(in.Status) {
		return common.ErrInvalidStatus
	}
	return s.api.Do(ctx, http.MethodPost, "/api/clients", in, nil)
}

// ListMine fetches the authenticated lender's own roster. The client performs
// no additional filtering; server-side ownership scoping is trusted.
func (s *Service) ListMine(ctx context.Context) (ListResult, error) {
	tag := uuid.NewString()
	s.mu.Lock()
	s.currentTag = tag
	s.mu.Unlock()

	var records []Record
	if err := s.api.Do(ctx, http.MethodGet, "/api/clients/mine", nil, &records); err != nil {
		return ListResult{}, err
	}
	return ListResult{Tag: tag, Records: records}, nil
}

// Current reports whether tag identifies the most recent ListMine dispatch.
func (s *Service) Current(tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTag == tag
}

// UpdateStatus applies a fully-validated status update to one record.
// The date field not matching the target status family must be nil; the
// matching one may be nil too, which omits it from the body.
func (s *Service) UpdateStatus(ctx context.Context, id string, update StatusUpdate) error {
	if err := validateUpdate(update); err != nil {
		return err
	}
	return s.api.Do(ctx, http.MethodPatch, "/api/clients/"+id, update, nil)
}

func validateUpdate(update StatusUpdate) error {
	if !ValidStatus(update.Status) {
		return common.ErrInvalidStatus
	}
	switch update.Status {
	case StatusPaid:
		if update.DueDate != nil {
			return common.ErrInvalidStatus
		}
	case StatusOwing, StatusOverdue:
		if update.PaidDate != nil {
			return common.ErrInvalidStatus
		}
	}
	return nil
}
